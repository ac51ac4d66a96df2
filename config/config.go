package config

import (
	"encoding/json"
	"os"
	"sync"
)

// Config is the service configuration, persisted as a JSON file next to the
// binary.
type Config struct {
	ListenAddr          string `json:"listenAddr"`
	DBDriver            string `json:"dbDriver"` // "sqlite3" (local) or "mysql" (hosted)
	DBDSN               string `json:"dbDSN"`
	CatalogCSVPath      string `json:"catalogCSVPath"`
	DefaultPiecesPerBox int    `json:"defaultPiecesPerBox"`
	ShopNameLimit       int    `json:"shopNameLimit"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./freshsoda_config.json"

func applyDefaults(c *Config) {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.DBDriver == "" {
		c.DBDriver = "sqlite3"
	}
	if c.DBDSN == "" {
		c.DBDSN = "./freshsoda.db?_journal_mode=WAL&_busy_timeout=5000"
	}
	if c.DefaultPiecesPerBox == 0 {
		c.DefaultPiecesPerBox = 24
	}
	if c.ShopNameLimit == 0 {
		c.ShopNameLimit = 50
	}
}

// LoadConfig reads the config file, falling back to defaults when absent.
func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&cfg)
			return cfg, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&tempCfg)
	cfg = tempCfg
	return cfg, nil
}

// SaveConfig writes the config file and updates the in-memory copy.
func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	applyDefaults(&newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

// GetConfig returns the current in-memory configuration.
func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
