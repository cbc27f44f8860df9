// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional JSON config
// file, and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application. It is
// constructed once at startup and passed down explicitly; nothing reads
// configuration ambiently mid-request.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string

	// WeatherAPIKey is the upstream weather provider credential. May be
	// empty at startup; weather endpoints then fail per-request with a
	// configuration error.
	WeatherAPIKey string

	// WeatherBaseURL overrides the upstream provider API root. Empty selects
	// the provider default.
	WeatherBaseURL string

	// Config is the path to the config file.
	Config string
}

// Parse builds the configuration from command-line flags, then the JSON
// config file if one exists, then environment variable overrides, in that
// order of increasing precedence.
func Parse() *Options {
	options := &Options{}

	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.WeatherAPIKey, "k", "", "weather provider API key")
	flag.StringVar(&options.WeatherBaseURL, "u", "", "weather provider base URL")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	flag.Parse()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if key := os.Getenv("WEATHER_API_KEY"); key != "" {
		options.WeatherAPIKey = key
	}
	if baseURL := os.Getenv("WEATHER_BASE_URL"); baseURL != "" {
		options.WeatherBaseURL = baseURL
	}

	return options
}
