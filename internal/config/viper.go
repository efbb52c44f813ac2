// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/spendlens/internal/logging"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// AIConfig holds the optional Gemini model settings.
type AIConfig struct {
	Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
	Model             string `mapstructure:"model" yaml:"model"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	EntitiesEnabled   bool   `mapstructure:"entities_enabled" yaml:"entities_enabled"`
	APIKey            string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

// CategoriesConfig points at the keyword table and the optional training samples.
type CategoriesConfig struct {
	File         string `mapstructure:"file" yaml:"file"`
	TrainingFile string `mapstructure:"training_file" yaml:"training_file"`
}

// ExtractionConfig bounds accepted expenses.
type ExtractionConfig struct {
	MaxAmount   float64 `mapstructure:"max_amount" yaml:"max_amount"`
	Concurrency int     `mapstructure:"concurrency" yaml:"concurrency"`
}

// AnomalyConfig tunes the outlier tests.
type AnomalyConfig struct {
	MinHistory    int     `mapstructure:"min_history" yaml:"min_history"`
	ZThreshold    float64 `mapstructure:"z_threshold" yaml:"z_threshold"`
	IQRMultiplier float64 `mapstructure:"iqr_multiplier" yaml:"iqr_multiplier"`
}

// ForecastConfig tunes the forecast engine.
type ForecastConfig struct {
	MonthsAhead       int `mapstructure:"months_ahead" yaml:"months_ahead"`
	ARIMAMinPoints    int `mapstructure:"arima_min_points" yaml:"arima_min_points"`
	FitTimeoutSeconds int `mapstructure:"fit_timeout_seconds" yaml:"fit_timeout_seconds"`
}

// BudgetConfig tunes the optimizer and the monthly alerts.
type BudgetConfig struct {
	MaxReductionPct float64 `mapstructure:"max_reduction_pct" yaml:"max_reduction_pct"`
	WarningPercent  float64 `mapstructure:"warning_percent" yaml:"warning_percent"`
	MonthlyTotal    float64 `mapstructure:"monthly_total" yaml:"monthly_total"`
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
}

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	AI         AIConfig         `mapstructure:"ai" yaml:"ai"`
	Categories CategoriesConfig `mapstructure:"categories" yaml:"categories"`
	Extraction ExtractionConfig `mapstructure:"extraction" yaml:"extraction"`
	Anomaly    AnomalyConfig    `mapstructure:"anomaly" yaml:"anomaly"`
	Forecast   ForecastConfig   `mapstructure:"forecast" yaml:"forecast"`
	Budget     BudgetConfig     `mapstructure:"budget" yaml:"budget"`
	Display    DisplayConfig    `mapstructure:"display" yaml:"display"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return load("")
}

// InitializeConfigFromFile loads configuration with an explicit config file
// instead of the search path. Defaults and environment variables still apply.
func InitializeConfigFromFile(path string) (*Config, error) {
	return load(path)
}

func load(explicitFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if explicitFile != "" {
		v.SetConfigFile(explicitFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.spendlens")
		v.AddConfigPath(".spendlens")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("SPENDLENS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if explicitFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", explicitFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. API key always comes from the unprefixed variable
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.requests_per_minute", 10)
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.entities_enabled", false)

	v.SetDefault("categories.file", "")
	v.SetDefault("categories.training_file", "")

	v.SetDefault("extraction.max_amount", 100000)
	v.SetDefault("extraction.concurrency", 4)

	v.SetDefault("anomaly.min_history", 5)
	v.SetDefault("anomaly.z_threshold", 3.0)
	v.SetDefault("anomaly.iqr_multiplier", 1.5)

	v.SetDefault("forecast.months_ahead", 3)
	v.SetDefault("forecast.arima_min_points", 6)
	v.SetDefault("forecast.fit_timeout_seconds", 10)

	v.SetDefault("budget.max_reduction_pct", 0.3)
	v.SetDefault("budget.warning_percent", 80)
	v.SetDefault("budget.monthly_total", 0)

	v.SetDefault("display.currency_symbol", "₹")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.RequestsPerMinute < 1 || config.AI.RequestsPerMinute > 1000 {
			return fmt.Errorf("ai.requests_per_minute must be between 1 and 1000, got: %d", config.AI.RequestsPerMinute)
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	if config.Extraction.MaxAmount <= 0 {
		return fmt.Errorf("extraction.max_amount must be positive, got: %v", config.Extraction.MaxAmount)
	}

	if config.Extraction.Concurrency < 1 {
		return fmt.Errorf("extraction.concurrency must be at least 1, got: %d", config.Extraction.Concurrency)
	}

	if config.Anomaly.MinHistory < 2 {
		return fmt.Errorf("anomaly.min_history must be at least 2, got: %d", config.Anomaly.MinHistory)
	}

	if config.Anomaly.ZThreshold <= 0 || config.Anomaly.IQRMultiplier <= 0 {
		return fmt.Errorf("anomaly.z_threshold and anomaly.iqr_multiplier must be positive")
	}

	if config.Forecast.MonthsAhead < 1 || config.Forecast.MonthsAhead > 60 {
		return fmt.Errorf("forecast.months_ahead must be between 1 and 60, got: %d", config.Forecast.MonthsAhead)
	}

	if config.Forecast.ARIMAMinPoints < 4 {
		return fmt.Errorf("forecast.arima_min_points must be at least 4, got: %d", config.Forecast.ARIMAMinPoints)
	}

	if config.Forecast.FitTimeoutSeconds < 0 {
		return fmt.Errorf("forecast.fit_timeout_seconds must not be negative, got: %d", config.Forecast.FitTimeoutSeconds)
	}

	if config.Budget.MaxReductionPct < 0 || config.Budget.MaxReductionPct > 1 {
		return fmt.Errorf("budget.max_reduction_pct must be between 0.0 and 1.0, got: %v", config.Budget.MaxReductionPct)
	}

	if config.Budget.WarningPercent <= 0 || config.Budget.WarningPercent > 100 {
		return fmt.Errorf("budget.warning_percent must be between 0 and 100, got: %v", config.Budget.WarningPercent)
	}

	if config.Budget.MonthlyTotal < 0 {
		return fmt.Errorf("budget.monthly_total must not be negative, got: %v", config.Budget.MonthlyTotal)
	}

	return nil
}

// MaxAmount returns the expense ceiling as a decimal.
func (c *Config) MaxAmount() decimal.Decimal {
	return decimal.NewFromFloat(c.Extraction.MaxAmount)
}

// MaxReduction returns the optimizer's reduction cap as a decimal.
func (c *Config) MaxReduction() decimal.Decimal {
	return decimal.NewFromFloat(c.Budget.MaxReductionPct)
}

// FitTimeout returns the forecast fit bound; zero disables it.
func (c *Config) FitTimeout() time.Duration {
	return time.Duration(c.Forecast.FitTimeoutSeconds) * time.Second
}

// AITimeout returns the per-request bound for model calls.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// ConfigureLoggingFromConfig builds the application logger from the Config struct
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(config.Log.Level), strings.ToLower(config.Log.Format))
}
