package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"freshsoda/billing"
	"freshsoda/catalog"
	"freshsoda/loader"
	"freshsoda/shopcache"
	"freshsoda/stockload"
	"freshsoda/summary"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB, shops *shopcache.Cached, logger *zap.SugaredLogger) {
	mux.HandleFunc("/api/stockload/save", stockload.SaveStockLoadHandler(dbConn, logger))
	mux.HandleFunc("/api/stockload", stockload.GetStockLoadHandler(dbConn, logger))

	mux.HandleFunc("/api/sales/save", billing.SaveSaleHandler(dbConn, shops, logger))
	mux.HandleFunc("/api/sales/quote", billing.QuoteQuantityHandler(dbConn, logger))
	mux.HandleFunc("/api/stock/remaining", billing.RemainingStockHandler(dbConn, logger))

	mux.HandleFunc("/api/summary", summary.GetSummaryHandler(dbConn, logger))
	mux.HandleFunc("/api/summary/receipt", summary.GetReceiptHandler(dbConn, logger))
	mux.HandleFunc("/api/summary/archive", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			summary.ArchiveSummaryHandler(dbConn, logger)(w, r)
			return
		}
		summary.GetArchivedSummaryHandler(dbConn, logger)(w, r)
	})

	mux.HandleFunc("/api/products", catalog.ListProductsHandler(dbConn, logger))
	mux.HandleFunc("/api/products/", catalog.GetProductHandler(dbConn, logger))
	mux.HandleFunc("/api/shops", catalog.ListShopNamesHandler(shops, logger))
	mux.HandleFunc("/api/catalog/reload", loader.ReloadCatalogHandler(dbConn, logger))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			SaveConfigHandler(logger)(w, r)
			return
		}
		GetConfigHandler()(w, r)
	})
}
