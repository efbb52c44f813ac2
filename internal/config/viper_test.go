package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.False(t, config.AI.Enabled)
	assert.Equal(t, "gemini-2.0-flash", config.AI.Model)
	assert.Equal(t, 10, config.AI.RequestsPerMinute)
	assert.Equal(t, 30, config.AI.TimeoutSeconds)
	assert.Equal(t, "", config.Categories.File)
	assert.Equal(t, 100000.0, config.Extraction.MaxAmount)
	assert.Equal(t, 4, config.Extraction.Concurrency)
	assert.Equal(t, 5, config.Anomaly.MinHistory)
	assert.Equal(t, 3.0, config.Anomaly.ZThreshold)
	assert.Equal(t, 1.5, config.Anomaly.IQRMultiplier)
	assert.Equal(t, 3, config.Forecast.MonthsAhead)
	assert.Equal(t, 6, config.Forecast.ARIMAMinPoints)
	assert.Equal(t, 10*time.Second, config.FitTimeout())
	assert.Equal(t, 0.3, config.Budget.MaxReductionPct)
	assert.Equal(t, "0.3", config.MaxReduction().String())
	assert.Equal(t, "100000", config.MaxAmount().String())
	assert.Equal(t, 80.0, config.Budget.WarningPercent)
	assert.Equal(t, "₹", config.Display.CurrencySymbol)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)

	testEnvVars := map[string]string{
		"SPENDLENS_LOG_LEVEL":                "debug",
		"SPENDLENS_LOG_FORMAT":               "json",
		"SPENDLENS_AI_ENABLED":               "true",
		"SPENDLENS_AI_MODEL":                 "gemini-1.5-pro",
		"SPENDLENS_AI_REQUESTS_PER_MINUTE":   "15",
		"SPENDLENS_EXTRACTION_MAX_AMOUNT":    "5000",
		"SPENDLENS_ANOMALY_MIN_HISTORY":      "8",
		"SPENDLENS_BUDGET_MAX_REDUCTION_PCT": "0.5",
		"SPENDLENS_DISPLAY_CURRENCY_SYMBOL":  "$",
		"GEMINI_API_KEY":                     "test-api-key",
	}

	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.True(t, config.AI.Enabled)
	assert.Equal(t, "gemini-1.5-pro", config.AI.Model)
	assert.Equal(t, 15, config.AI.RequestsPerMinute)
	assert.Equal(t, 5000.0, config.Extraction.MaxAmount)
	assert.Equal(t, 8, config.Anomaly.MinHistory)
	assert.Equal(t, 0.5, config.Budget.MaxReductionPct)
	assert.Equal(t, "$", config.Display.CurrencySymbol)
	assert.Equal(t, "test-api-key", config.AI.APIKey)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
  format: "json"
categories:
  file: "categories.yaml"
  training_file: "training.csv"
forecast:
  months_ahead: 6
  fit_timeout_seconds: 0
budget:
  max_reduction_pct: 0.3
  monthly_total: 25000
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "categories.yaml", config.Categories.File)
	assert.Equal(t, "training.csv", config.Categories.TrainingFile)
	assert.Equal(t, 6, config.Forecast.MonthsAhead)
	assert.Equal(t, time.Duration(0), config.FitTimeout())
	assert.Equal(t, 0.3, config.Budget.MaxReductionPct)
	assert.Equal(t, 25000.0, config.Budget.MonthlyTotal)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
anomaly:
  z_threshold: 2.5
ai:
  requests_per_minute: 20
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))

	t.Setenv("SPENDLENS_LOG_LEVEL", "error")
	t.Setenv("SPENDLENS_AI_REQUESTS_PER_MINUTE", "25")
	t.Setenv("GEMINI_API_KEY", "env-api-key")
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, 2.5, config.Anomaly.ZThreshold)
	assert.Equal(t, 25, config.AI.RequestsPerMinute)
	assert.Equal(t, "env-api-key", config.AI.APIKey)
}

func TestInitializeConfigFromFile(t *testing.T) {
	clearTestEnvVars(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extraction:\n  max_amount: 250\n"), 0644))

	config, err := InitializeConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 250.0, config.Extraction.MaxAmount)

	_, err = InitializeConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "invalid" },
			expectError:  "invalid log format",
		},
		{
			name: "AI enabled without API key",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = ""
			},
			expectError: "GEMINI_API_KEY required when AI is enabled",
		},
		{
			name: "invalid requests per minute",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = "test-key"
				c.AI.RequestsPerMinute = 0
			},
			expectError: "ai.requests_per_minute must be between 1 and 1000",
		},
		{
			name: "invalid timeout seconds",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = "test-key"
				c.AI.TimeoutSeconds = 0
			},
			expectError: "ai.timeout_seconds must be between 1 and 300",
		},
		{
			name:         "non-positive max amount",
			modifyConfig: func(c *Config) { c.Extraction.MaxAmount = 0 },
			expectError:  "extraction.max_amount must be positive",
		},
		{
			name:         "min history too small",
			modifyConfig: func(c *Config) { c.Anomaly.MinHistory = 1 },
			expectError:  "anomaly.min_history must be at least 2",
		},
		{
			name:         "months ahead out of range",
			modifyConfig: func(c *Config) { c.Forecast.MonthsAhead = 0 },
			expectError:  "forecast.months_ahead must be between 1 and 60",
		},
		{
			name:         "reduction above one",
			modifyConfig: func(c *Config) { c.Budget.MaxReductionPct = 1.5 },
			expectError:  "budget.max_reduction_pct must be between 0.0 and 1.0",
		},
		{
			name:         "negative monthly total",
			modifyConfig: func(c *Config) { c.Budget.MonthlyTotal = -1 },
			expectError:  "budget.monthly_total must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestValidateConfig_Valid(t *testing.T) {
	assert.NoError(t, validateConfig(validConfig()))
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		t.Run(format, func(t *testing.T) {
			config := validConfig()
			config.Log.Format = format
			logger := ConfigureLoggingFromConfig(config)
			assert.NotNil(t, logger)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	const key = "SPENDLENS_DOTENV_PROBE"
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))

	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, ".env"), []byte(key+"=loaded\n"), 0600))
	chdir(t, tempDir)

	loaded, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", loaded)
	assert.Equal(t, "loaded", os.Getenv(key))
}

func validConfig() *Config {
	return &Config{
		Log:        LogConfig{Level: "info", Format: "text"},
		AI:         AIConfig{RequestsPerMinute: 10, TimeoutSeconds: 30},
		Extraction: ExtractionConfig{MaxAmount: 100000, Concurrency: 4},
		Anomaly:    AnomalyConfig{MinHistory: 5, ZThreshold: 3, IQRMultiplier: 1.5},
		Forecast:   ForecastConfig{MonthsAhead: 3, ARIMAMinPoints: 6, FitTimeoutSeconds: 10},
		Budget:     BudgetConfig{MaxReductionPct: 0.2, WarningPercent: 80},
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
}

// clearTestEnvVars blanks every variable the loader reads; empty values are
// treated as unset by viper. HOME is isolated so a user config is never picked up.
func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"SPENDLENS_LOG_LEVEL",
		"SPENDLENS_LOG_FORMAT",
		"SPENDLENS_AI_ENABLED",
		"SPENDLENS_AI_MODEL",
		"SPENDLENS_AI_REQUESTS_PER_MINUTE",
		"SPENDLENS_AI_TIMEOUT_SECONDS",
		"SPENDLENS_AI_ENTITIES_ENABLED",
		"SPENDLENS_CATEGORIES_FILE",
		"SPENDLENS_CATEGORIES_TRAINING_FILE",
		"SPENDLENS_EXTRACTION_MAX_AMOUNT",
		"SPENDLENS_EXTRACTION_CONCURRENCY",
		"SPENDLENS_ANOMALY_MIN_HISTORY",
		"SPENDLENS_ANOMALY_Z_THRESHOLD",
		"SPENDLENS_ANOMALY_IQR_MULTIPLIER",
		"SPENDLENS_FORECAST_MONTHS_AHEAD",
		"SPENDLENS_FORECAST_ARIMA_MIN_POINTS",
		"SPENDLENS_FORECAST_FIT_TIMEOUT_SECONDS",
		"SPENDLENS_BUDGET_MAX_REDUCTION_PCT",
		"SPENDLENS_BUDGET_WARNING_PERCENT",
		"SPENDLENS_BUDGET_MONTHLY_TOTAL",
		"SPENDLENS_DISPLAY_CURRENCY_SYMBOL",
		"GEMINI_API_KEY",
	}

	for _, envVar := range envVars {
		t.Setenv(envVar, "")
	}
	t.Setenv("HOME", t.TempDir())
}
