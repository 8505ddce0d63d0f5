// Package config loads application configuration from config files,
// environment variables and defaults, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jonesrussell/pagesense/internal/analyzer"
	"github.com/jonesrussell/pagesense/internal/fetcher"
	"github.com/jonesrussell/pagesense/internal/logger"
)

// Server defaults.
const (
	DefaultServerAddress = ":8080"
	DefaultReadTimeout   = 15 * time.Second
	DefaultWriteTimeout  = 15 * time.Second
	DefaultIdleTimeout   = 60 * time.Second
)

// AppConfig identifies the running application.
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Config is the full application configuration.
type Config struct {
	App      AppConfig
	Logger   logger.Config
	Server   ServerConfig
	Analyzer analyzer.Config
	Fetcher  fetcher.Config
}

// Init sets up Viper: .env loading, environment binding, defaults and
// the optional config file. Both the file and .env are optional; their
// absence only produces a warning.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Load .env before reading config so its variables are visible to
	// AutomaticEnv.
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: .env file not found: %v\n", err)
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config file not found: %v (using defaults and environment variables)\n", err)
	}

	return bindEnvVars()
}

// Load materializes the configuration from Viper's current state.
func Load() *Config {
	cfg := &Config{
		App: AppConfig{
			Name:        viper.GetString("app.name"),
			Version:     viper.GetString("app.version"),
			Environment: viper.GetString("app.environment"),
			Debug:       viper.GetBool("app.debug"),
		},
		Logger: logger.Config{
			Level:            logger.Level(strings.ToLower(viper.GetString("logger.level"))),
			Development:      viper.GetBool("logger.development"),
			Encoding:         viper.GetString("logger.encoding"),
			OutputPaths:      viper.GetStringSlice("logger.output_paths"),
			ErrorOutputPaths: viper.GetStringSlice("logger.error_output_paths"),
		},
		Server: ServerConfig{
			Address:      viper.GetString("server.address"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
			IdleTimeout:  viper.GetDuration("server.idle_timeout"),
		},
		Analyzer: analyzer.Config{
			MinRepeats:       viper.GetInt("analyzer.min_repeats"),
			MaxCandidates:    viper.GetInt("analyzer.max_candidates"),
			MaxItemsPreview:  viper.GetInt("analyzer.max_items_preview"),
			MaxFieldsPerItem: viper.GetInt("analyzer.max_fields_per_item"),
			MinConfidence:    viper.GetFloat64("analyzer.min_confidence"),
			MinAvgFields:     viper.GetFloat64("analyzer.min_avg_fields"),
		},
		Fetcher: fetcher.Config{
			UserAgent:   viper.GetString("fetcher.user_agent"),
			Timeout:     viper.GetDuration("fetcher.timeout"),
			MaxBodySize: viper.GetInt("fetcher.max_body_size"),
		},
	}
	cfg.Analyzer.WithDefaults()
	cfg.Fetcher.WithDefaults()
	return cfg
}

// bindEnvVars maps well-known environment variables to config keys.
func bindEnvVars() error {
	bindings := map[string][]string{
		"app.environment":    {"APP_ENV"},
		"app.debug":          {"APP_DEBUG"},
		"logger.level":       {"LOG_LEVEL"},
		"logger.encoding":    {"LOG_FORMAT"},
		"server.address":     {"SERVER_ADDRESS"},
		"fetcher.user_agent": {"FETCHER_USER_AGENT"},
		"fetcher.timeout":    {"FETCHER_TIMEOUT"},
	}
	for key, envs := range bindings {
		if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

// setDefaults sets production-safe default configuration values.
func setDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        "pagesense",
		"version":     "1.0.0",
		"environment": "production",
		"debug":       false,
	})

	viper.SetDefault("logger", map[string]any{
		"level":        "info",
		"development":  false,
		"encoding":     "json",
		"output_paths": []string{"stdout"},
	})

	viper.SetDefault("server", map[string]any{
		"address":       DefaultServerAddress,
		"read_timeout":  DefaultReadTimeout.String(),
		"write_timeout": DefaultWriteTimeout.String(),
		"idle_timeout":  DefaultIdleTimeout.String(),
	})

	viper.SetDefault("analyzer", map[string]any{
		"min_repeats":         analyzer.DefaultMinRepeats,
		"max_candidates":      analyzer.DefaultMaxCandidates,
		"max_items_preview":   analyzer.DefaultMaxItemsPreview,
		"max_fields_per_item": analyzer.DefaultMaxFieldsPerItem,
		"min_confidence":      analyzer.DefaultMinConfidence,
		"min_avg_fields":      analyzer.DefaultMinAvgFields,
	})

	viper.SetDefault("fetcher", map[string]any{
		"user_agent":    fetcher.DefaultUserAgent,
		"timeout":       fetcher.DefaultTimeout.String(),
		"max_body_size": fetcher.DefaultMaxBodySize,
	})
}
