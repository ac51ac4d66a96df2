package main

import (
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"freshsoda/config"
	"freshsoda/database"
	"freshsoda/loader"
	"freshsoda/logging"
	"freshsoda/shopcache"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := logging.New(os.Getenv("FRESHSODA_DEBUG") != "")
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer logger.Sync()

	logger.Infow("connecting to database", "driver", cfg.DBDriver)
	dbConn, err := sqlx.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatalw("db open error", "error", err)
	}
	defer dbConn.Close()
	if err := dbConn.Ping(); err != nil {
		logger.Fatalw("db ping error", "error", err)
	}

	// A hosted mysql instance is provisioned separately; the embedded sqlite
	// file is created on first run.
	if cfg.DBDriver == "sqlite3" {
		if err := loader.InitDatabase(dbConn); err != nil {
			logger.Fatalw("database initialization failed", "error", err)
		}
		logger.Info("database initialization complete")
	}

	if cfg.CatalogCSVPath != "" {
		if _, err := os.Stat(cfg.CatalogCSVPath); err == nil {
			count, err := loader.LoadProductsCSV(dbConn, cfg.CatalogCSVPath)
			if err != nil {
				logger.Warnw("catalog CSV load failed, continuing with stored catalog",
					"path", cfg.CatalogCSVPath, "error", err)
			} else {
				logger.Infow("catalog loaded", "path", cfg.CatalogCSVPath, "products", count)
			}
		} else {
			logger.Warnw("catalog CSV not found, continuing with stored catalog", "path", cfg.CatalogCSVPath)
		}
	}

	shops := shopcache.NewCached(shopcache.ProviderFunc(func(limit int) ([]string, error) {
		return database.ListShopNames(dbConn, limit)
	}), 30*time.Second)

	mux := http.NewServeMux()
	SetupRoutes(mux, dbConn, shops, logger)

	logger.Infow("starting server", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		logger.Fatalw("server start error", "error", err)
	}
}
