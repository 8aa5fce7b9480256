package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/joshdurbin/shortcode-service/internal/logger"
	"github.com/joshdurbin/shortcode-service/internal/shortener"
)

// EnvPrefix prefixes every environment override, e.g. SHORTENER_SERVER_PORT
const EnvPrefix = "SHORTENER"

// Config holds the application configuration
type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Metrics   MetricsConfig    `mapstructure:"metrics"`
	Logging   LoggingConfig    `mapstructure:"logging"`
	Shortener shortener.Config `mapstructure:"shortener"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// MetricsConfig holds the prometheus listener configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    string `mapstructure:"port"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Verbose     bool   `mapstructure:"verbose"`
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	Encoding    string `mapstructure:"encoding"`
}

// Logger returns the settings the logger package builds from
func (l LoggingConfig) Logger() logger.Config {
	return logger.Config{
		Development: l.Development,
		Level:       l.Level,
		Encoding:    l.Encoding,
	}
}

// New creates a new config with the given parameters
func New(port string, metrics MetricsConfig, logging LoggingConfig, shortenerConfig shortener.Config) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: port,
		},
		Metrics:   metrics,
		Logging:   logging,
		Shortener: shortenerConfig,
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// flagKeys maps server flag names onto configuration keys
var flagKeys = map[string]string{
	"port":            "server.port",
	"metrics-enabled": "metrics.enabled",
	"metrics-port":    "metrics.port",
	"verbose":         "logging.verbose",
	"log-level":       "logging.level",
	"log-development": "logging.development",
	"log-encoding":    "logging.encoding",
	"code-length":     "shortener.length",
	"code-alphabet":   "shortener.alphabet",
}

// RegisterFlags defines the server flags Load understands
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("port", "p", "8080", "Server port")
	flags.Bool("metrics-enabled", true, "Serve prometheus metrics on a separate port")
	flags.String("metrics-port", "9090", "Metrics port")
	flags.BoolP("verbose", "v", false, "Enable verbose logging (HTTP request and error response bodies)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.Bool("log-development", false, "Use zap's development logger")
	flags.String("log-encoding", "console", "Log encoding (console or json)")
	flags.Int("code-length", shortener.DefaultLength, "Length of generated shortcodes")
	flags.String("code-alphabet", shortener.DefaultAlphabet, "Characters generated shortcodes are drawn from")
	flags.StringP("config", "c", "", "Optional config file (yaml, json or toml)")
}

// Load resolves the configuration from, in increasing priority: flag
// defaults, an optional config file, the environment (a local .env file
// included) and explicitly set flags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// validate validates the configuration values
func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if c.Metrics.Enabled {
		if c.Metrics.Port == "" {
			return fmt.Errorf("metrics port cannot be empty when metrics are enabled")
		}
		if c.Metrics.Port == c.Server.Port {
			return fmt.Errorf("metrics port must differ from server port, both are %s", c.Server.Port)
		}
	}

	if c.Logging.Level != "" {
		if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
			return err
		}
	}

	if c.Logging.Encoding != "" && c.Logging.Encoding != "json" && c.Logging.Encoding != "console" {
		return fmt.Errorf("log encoding must be json or console, got: %s", c.Logging.Encoding)
	}

	if err := c.Shortener.Validate(); err != nil {
		return fmt.Errorf("shortener: %w", err)
	}

	return nil
}
