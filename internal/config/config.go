package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	// APIBaseURL is the marketplace API root, e.g. "https://host/api".
	APIBaseURL string

	// ConfigDir holds the session file and the offline listings cache.
	ConfigDir string
}

func Load() (Config, error) {
	cfg := Config{
		APIBaseURL: getEnv("DORMSHARE_API_URL", "http://localhost:5000/api"),
	}

	dir := os.Getenv("DORMSHARE_CONFIG_DIR")
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, err
		}
		dir = filepath.Join(base, "dormshare")
	}
	cfg.ConfigDir = dir

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
