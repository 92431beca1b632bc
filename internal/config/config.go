package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the console
type Config struct {
	API    APIConfig
	App    AppConfig
	Logger LoggerConfig
}

// APIConfig holds configuration for the remote users API
type APIConfig struct {
	BaseURL        string `mapstructure:"API_BASE_URL"`
	TimeoutSeconds int    `mapstructure:"API_TIMEOUT_SECONDS"`
	UserAgent      string `mapstructure:"API_USER_AGENT"`
}

// AppConfig holds configuration for the console session
type AppConfig struct {
	Environment string `mapstructure:"APP_ENV"`
	Prompt      string `mapstructure:"CONSOLE_PROMPT"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level          string `mapstructure:"LOG_LEVEL"`
	Format         string `mapstructure:"LOG_FORMAT"`
	OutputPath     string `mapstructure:"LOG_OUTPUT_PATH"`
	EnableSampling bool   `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName    string `mapstructure:"SERVICE_NAME"`
	ServiceVersion string `mapstructure:"SERVICE_VERSION"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app") // Look for app.env
	v.SetConfigType("env")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if we have env vars
	}

	// APP_ENV may come from the environment or app.env, so these defaults
	// can only be chosen once both are loaded
	setLoggerDefaults(v)

	var config Config

	config.API.BaseURL = v.GetString("API_BASE_URL")
	config.API.TimeoutSeconds = v.GetInt("API_TIMEOUT_SECONDS")
	config.API.UserAgent = v.GetString("API_USER_AGENT")

	config.App.Environment = v.GetString("APP_ENV")
	config.App.Prompt = v.GetString("CONSOLE_PROMPT")

	config.Logger.Level = v.GetString("LOG_LEVEL")
	config.Logger.Format = v.GetString("LOG_FORMAT")
	config.Logger.OutputPath = v.GetString("LOG_OUTPUT_PATH")
	config.Logger.EnableSampling = v.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = v.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = v.GetString("SERVICE_VERSION")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_BASE_URL", "http://localhost:8080/api/v1/users")
	v.SetDefault("API_TIMEOUT_SECONDS", 10)
	v.SetDefault("API_USER_AGENT", "user-console/1.0")

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("CONSOLE_PROMPT", "users> ")

	// stdout belongs to the console session
	v.SetDefault("LOG_OUTPUT_PATH", "user-console.log")
	v.SetDefault("SERVICE_NAME", "user-console")
	v.SetDefault("SERVICE_VERSION", "1.0.0")
}

// setLoggerDefaults picks level, format and sampling defaults for APP_ENV
func setLoggerDefaults(v *viper.Viper) {
	if v.GetString("APP_ENV") == "production" {
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "json")
		v.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		v.SetDefault("LOG_LEVEL", "debug")
		v.SetDefault("LOG_FORMAT", "console")
		v.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
}

// Validate checks that the configuration can be used to reach the API
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API_BASE_URL %q: %w", c.API.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API_BASE_URL %q: scheme must be http or https", c.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q: missing host", c.API.BaseURL)
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("API_TIMEOUT_SECONDS must be positive, got %d", c.API.TimeoutSeconds)
	}
	return nil
}

// Timeout returns the per-request timeout for the API client
func (c *APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
