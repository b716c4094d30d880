package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Autosave  AutosaveConfig  `mapstructure:"autosave"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	SecretKey   string `mapstructure:"secret_key"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RateLimitConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Store       string `mapstructure:"store"` // "memory" or "redis"
	Window      string `mapstructure:"window"`
	MaxRequests int    `mapstructure:"max_requests"`

	// Routes holds per-route-prefix overrides, decoded from free-form
	// yaml maps (see DecodeRouteLimits).
	Routes map[string]interface{} `mapstructure:"routes"`
}

type AutosaveConfig struct {
	Debounce string `mapstructure:"debounce"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}

	setDefaultValues()

	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	if globalConfig.Server.Port == 0 {
		globalConfig.Server.Port = 8080
	}
	if globalConfig.Server.MetricsPort == 0 {
		globalConfig.Server.MetricsPort = 9090
	}
	if globalConfig.Database.SSLMode == "" {
		globalConfig.Database.SSLMode = "disable"
	}
	if globalConfig.RateLimit.Store == "" {
		globalConfig.RateLimit.Store = "memory"
	}
	if globalConfig.RateLimit.Window == "" {
		globalConfig.RateLimit.Window = "1m"
	}
	if globalConfig.RateLimit.MaxRequests == 0 {
		globalConfig.RateLimit.MaxRequests = 100
	}
	if globalConfig.Autosave.Debounce == "" {
		globalConfig.Autosave.Debounce = "2s"
	}
}

func GetConfig() *Config {
	return &globalConfig
}

func (c *RateLimitConfig) ParsedWindow() (time.Duration, error) {
	window, err := time.ParseDuration(c.Window)
	if err != nil {
		return 0, fmt.Errorf("invalid rate limit window %q: %w", c.Window, err)
	}
	if window <= 0 {
		return 0, fmt.Errorf("rate limit window must be positive")
	}
	return window, nil
}

func (c *AutosaveConfig) ParsedDebounce() (time.Duration, error) {
	debounce, err := time.ParseDuration(c.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid autosave debounce %q: %w", c.Debounce, err)
	}
	return debounce, nil
}
