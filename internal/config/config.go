// Package config provides configuration loading and validation for the
// career-compass server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the server configuration that can be loaded from a
// JSON file, with environment variables filling any gaps. All fields are
// optional at load time; Validate enforces what serving actually needs.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`

	// Providers
	APIKey        string `json:"api_key,omitempty"`         // Gemini API key
	TTSAPIKey     string `json:"tts_api_key,omitempty"`     // text-to-speech API key
	AdzunaAppID   string `json:"adzuna_app_id,omitempty"`   // job-trends app id
	AdzunaAppKey  string `json:"adzuna_app_key,omitempty"`  // job-trends app key
	AdzunaCountry string `json:"adzuna_country,omitempty"`  // two-letter market code
	GNewsAPIKey   string `json:"gnews_api_key,omitempty"`   // career-news API key
	TrendsLimit   int    `json:"trends_limit,omitempty"`    // histogram size
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a configuration entirely from environment variables.
func FromEnv() *Config {
	return &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		APIKey:        os.Getenv("GEMINI_API_KEY"),
		TTSAPIKey:     os.Getenv("TTS_API_KEY"),
		AdzunaAppID:   os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey:  os.Getenv("ADZUNA_APP_KEY"),
		AdzunaCountry: os.Getenv("ADZUNA_COUNTRY"),
		GNewsAPIKey:   os.Getenv("GNEWS_API_KEY"),
	}
}

// Validate checks that the configuration can actually serve requests.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("config error: Gemini API key is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: database URL is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: port out of range: %d", c.Port)
	}
	if c.TrendsLimit < 0 {
		return fmt.Errorf("config error: trends_limit must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults, typically the environment-derived config.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.TTSAPIKey == "" {
		result.TTSAPIKey = defaults.TTSAPIKey
	}
	if result.AdzunaAppID == "" {
		result.AdzunaAppID = defaults.AdzunaAppID
	}
	if result.AdzunaAppKey == "" {
		result.AdzunaAppKey = defaults.AdzunaAppKey
	}
	if result.AdzunaCountry == "" {
		result.AdzunaCountry = defaults.AdzunaCountry
	}
	if result.GNewsAPIKey == "" {
		result.GNewsAPIKey = defaults.GNewsAPIKey
	}

	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = 8080
		}
	}
	if result.AdzunaCountry == "" {
		result.AdzunaCountry = "in"
	}
	if result.TrendsLimit == 0 {
		if defaults.TrendsLimit > 0 {
			result.TrendsLimit = defaults.TrendsLimit
		} else {
			result.TrendsLimit = 10
		}
	}

	return result
}
