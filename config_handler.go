package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"go.uber.org/zap"

	"freshsoda/config"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// GetConfigHandler returns the current configuration.
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg)
	}
}

// SaveConfigHandler validates and persists new configuration. Driver and DSN
// changes take effect on the next start.
func SaveConfigHandler(logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			writeJSONError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if newCfg.DBDriver != "" && newCfg.DBDriver != "sqlite3" && newCfg.DBDriver != "mysql" {
			writeJSONError(w, "dbDriver must be sqlite3 or mysql", http.StatusBadRequest)
			return
		}
		if newCfg.DefaultPiecesPerBox < 0 {
			writeJSONError(w, "defaultPiecesPerBox must not be negative", http.StatusBadRequest)
			return
		}
		if err := validateFilePath(newCfg.CatalogCSVPath); err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := config.SaveConfig(newCfg); err != nil {
			logger.Errorw("failed to save config", "error", err)
			writeJSONError(w, "failed to save configuration", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "configuration saved"})
	}
}

func validateFilePath(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New("file not found: " + path)
		}
		return errors.New("failed to check path: " + path)
	}
	if info.IsDir() {
		return errors.New("path is a directory, expected a file: " + path)
	}
	return nil
}
