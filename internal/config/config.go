package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default catalog endpoints
const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
)

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Search  SearchConfig  `mapstructure:"search"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
	Browser BrowserConfig `mapstructure:"browser"`
}

// CatalogConfig holds remote catalog configuration
type CatalogConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`    // 0 = no client timeout
	RateLimit    float64       `mapstructure:"rate_limit"` // requests per second, 0 = unlimited
}

// SearchConfig holds search and listing behaviour
type SearchConfig struct {
	Debounce      time.Duration `mapstructure:"debounce"`
	CategoryLimit int           `mapstructure:"category_limit"` // movies per category row
}

// StorageConfig holds favorites persistence configuration
type StorageConfig struct {
	Path        string        `mapstructure:"path"`
	LockTimeout time.Duration `mapstructure:"lock_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
}

// BrowserConfig holds the command used to open catalog pages
type BrowserConfig struct {
	Command string   `mapstructure:"command"` // empty = auto-detect
	Args    []string `mapstructure:"args"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:      DefaultBaseURL,
			ImageBaseURL: DefaultImageBaseURL,
			Timeout:      30 * time.Second,
			RateLimit:    20,
		},
		Search: SearchConfig{
			Debounce:      500 * time.Millisecond,
			CategoryLimit: 10,
		},
		Storage: StorageConfig{
			Path:        filepath.Join(defaultDataPath(), "favorites.db"),
			LockTimeout: time.Second,
		},
		Logging: LoggingConfig{
			File:   filepath.Join(defaultDataPath(), "flicks.log"),
			Level:  "INFO",
			Format: "json",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "flicks")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "flicks")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "flicks")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "flicks")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return Load(viper.GetViper(), defaultConfigPath(), ".")
}

// Load reads config.yaml from the first matching search path, then applies
// FLICKS_* environment overrides and the TMDB credential fallbacks.
// A .env file in the working directory is loaded into the environment first.
func Load(v *viper.Viper, searchPaths ...string) (*Config, error) {
	// Missing .env is fine; existing variables are never overwritten
	_ = godotenv.Load()

	cfg := DefaultConfig()
	setDefaults(v, cfg)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	// Environment variable overrides (FLICKS_CATALOG_API_KEY, ...)
	v.SetEnvPrefix("FLICKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	applyCredentialFallbacks(cfg)
	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys
// that are absent from the config file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("catalog.base_url", cfg.Catalog.BaseURL)
	v.SetDefault("catalog.api_key", cfg.Catalog.APIKey)
	v.SetDefault("catalog.image_base_url", cfg.Catalog.ImageBaseURL)
	v.SetDefault("catalog.timeout", cfg.Catalog.Timeout)
	v.SetDefault("catalog.rate_limit", cfg.Catalog.RateLimit)

	v.SetDefault("search.debounce", cfg.Search.Debounce)
	v.SetDefault("search.category_limit", cfg.Search.CategoryLimit)

	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("storage.lock_timeout", cfg.Storage.LockTimeout)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	v.SetDefault("browser.command", cfg.Browser.Command)
	v.SetDefault("browser.args", cfg.Browser.Args)
}

// applyCredentialFallbacks fills the catalog credential from the plain TMDB
// variables, including the names used by the web front end's .env files.
func applyCredentialFallbacks(cfg *Config) {
	if cfg.Catalog.APIKey == "" {
		cfg.Catalog.APIKey = firstEnv("TMDB_API_KEY", "NEXT_PUBLIC_TMDB_API_KEY")
	}
	if cfg.Catalog.BaseURL == DefaultBaseURL {
		if u := firstEnv("TMDB_API_BASE_URL", "NEXT_PUBLIC_TMDB_API_BASE_URL"); u != "" {
			cfg.Catalog.BaseURL = u
		}
	}
	cfg.Catalog.BaseURL = strings.TrimRight(cfg.Catalog.BaseURL, "/")
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// SaveConfig saves the current configuration to the default config file
func SaveConfig(cfg *Config) error {
	return Save(viper.GetViper(), cfg, defaultConfigPath())
}

// Save writes cfg as config.yaml into dir
func Save(v *viper.Viper, cfg *Config, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("catalog.base_url", cfg.Catalog.BaseURL)
	v.Set("catalog.api_key", cfg.Catalog.APIKey)
	v.Set("catalog.image_base_url", cfg.Catalog.ImageBaseURL)
	v.Set("catalog.timeout", cfg.Catalog.Timeout.String())
	v.Set("catalog.rate_limit", cfg.Catalog.RateLimit)

	v.Set("search.debounce", cfg.Search.Debounce.String())
	v.Set("search.category_limit", cfg.Search.CategoryLimit)

	v.Set("storage.path", cfg.Storage.Path)
	v.Set("storage.lock_timeout", cfg.Storage.LockTimeout.String())

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.format", cfg.Logging.Format)

	v.Set("browser.command", cfg.Browser.Command)
	v.Set("browser.args", cfg.Browser.Args)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if a catalog API key is set
func (c *Config) IsConfigured() bool {
	return c.Catalog.APIKey != ""
}

// GetDataPath returns the data directory path
func GetDataPath() string {
	return defaultDataPath()
}
