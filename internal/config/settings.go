package config

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

type Config struct {
	Output struct {
		Folder   string `json:"folder"`
		Filename string `json:"filename"`
	} `json:"output"`

	Resolver struct {
		URL            string `json:"url"`
		TimeoutSeconds uint32 `json:"timeout_seconds"`
	} `json:"resolver"`

	AbuseIPDB struct {
		URL            string `json:"url"`
		MaxAgeInDays   uint32 `json:"max_age_in_days"`
		TimeoutSeconds uint32 `json:"timeout_seconds"`
	} `json:"abuseipdb"`

	GeoLite struct {
		DataDir string `json:"data_dir"`
	} `json:"geolite"`
}

const settingsFilePath = "data/settings.json"

//go:embed default_settings.json
var defaultConfig []byte

// ReadSettings loads the settings file, creating it from the embedded
// defaults when missing. Unreadable or malformed settings fall back to the
// defaults so a broken file never blocks a run.
func ReadSettings() Config {
	data, err := os.ReadFile(settingsFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("Settings file not found, creating with default configuration")

			if err := os.MkdirAll(filepath.Dir(settingsFilePath), os.ModePerm); err != nil {
				log.Error("Error creating directory for settings file:", "error", err)
				return defaults()
			}

			if err := os.WriteFile(settingsFilePath, defaultConfig, 0o644); err != nil {
				log.Error("Error writing default settings file:", "error", err)
				return defaults()
			}

			data = defaultConfig
		} else {
			log.Error("Error reading settings file:", "error", err)
			return defaults()
		}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Error("Error unmarshalling settings file:", "error", err)
		return defaults()
	}

	applyDefaults(&cfg)
	log.Debug("Settings file loaded successfully")
	return cfg
}

func (c Config) ResolverTimeout() time.Duration {
	return time.Duration(c.Resolver.TimeoutSeconds) * time.Second
}

func (c Config) LookupTimeout() time.Duration {
	return time.Duration(c.AbuseIPDB.TimeoutSeconds) * time.Second
}

func defaults() Config {
	var cfg Config
	if err := json.Unmarshal(defaultConfig, &cfg); err != nil {
		log.Error("Error unmarshalling embedded default settings:", "error", err)
	}
	applyDefaults(&cfg)
	return cfg
}

// applyDefaults fills fields a partial settings file left empty.
func applyDefaults(cfg *Config) {
	if cfg.Output.Folder == "" {
		cfg.Output.Folder = "./reports"
	}
	if cfg.Output.Filename == "" {
		cfg.Output.Filename = "ip-rep-report.txt"
	}
	if cfg.Resolver.URL == "" {
		cfg.Resolver.URL = "https://api.ipify.org?format=json"
	}
	if cfg.Resolver.TimeoutSeconds == 0 {
		cfg.Resolver.TimeoutSeconds = 5
	}
	if cfg.AbuseIPDB.URL == "" {
		cfg.AbuseIPDB.URL = "https://api.abuseipdb.com/api/v2/check"
	}
	if cfg.AbuseIPDB.MaxAgeInDays == 0 {
		cfg.AbuseIPDB.MaxAgeInDays = 90
	}
	if cfg.AbuseIPDB.TimeoutSeconds == 0 {
		cfg.AbuseIPDB.TimeoutSeconds = 10
	}
	if cfg.GeoLite.DataDir == "" {
		cfg.GeoLite.DataDir = "data/geolite"
	}
}
