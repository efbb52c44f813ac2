// Package root contains the root command for the application
package root

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/spendlens/internal/config"
	"fjacquet/spendlens/internal/container"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/report"
	"fjacquet/spendlens/internal/validation"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags shared by every command
type CommonFlags struct {
	ConfigFile string
	Format     string
	LogLevel   string
	LogFormat  string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.GetLogger()

	// AppContainer holds the dependencies built for the running command
	AppContainer *container.Container

	// SharedFlags are accessible to all commands
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "spendlens",
		Short: "Turn free-text spending notes into expenses and analyse your budget.",
		Long: `spendlens extracts structured expenses from free text and bank statements,
flags unusual spending, forecasts monthly totals and suggests budget reallocations.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to spendlens!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}
)

// Init initializes the root command flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default: search $HOME/.spendlens, .spendlens, .)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", report.FormatJSON, "Output format: json or yaml")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format override (text, json)")
}

func setup(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidOutputFormat(SharedFlags.Format); err != nil {
		return err
	}
	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(SharedFlags.LogLevel)
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = strings.ToLower(SharedFlags.LogFormat)
	}

	c, err := container.NewContainer(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	AppContainer = c
	Log = c.GetLogger()
	return nil
}

func loadConfig() (*config.Config, error) {
	if SharedFlags.ConfigFile != "" {
		if err := validation.IsValidPath(SharedFlags.ConfigFile); err != nil {
			return nil, err
		}
		if info, err := os.Stat(SharedFlags.ConfigFile); err == nil {
			if err := validation.IsValidFilePermissions(info.Mode().Perm()); err != nil {
				Log.Warn("Config file is readable by other users",
					logging.Field{Key: logging.FieldInputFile, Value: SharedFlags.ConfigFile})
			}
		}
		return config.InitializeConfigFromFile(SharedFlags.ConfigFile)
	}
	return config.InitializeConfig()
}

func teardown(cmd *cobra.Command, args []string) error {
	if AppContainer == nil {
		return nil
	}
	err := AppContainer.Close()
	AppContainer = nil
	return err
}

// GetContainer returns the container built for the running command.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return AppContainer, nil
}

// Render writes v to the command output in the selected format.
func Render(cmd *cobra.Command, v interface{}) error {
	g, err := report.NewGenerator(SharedFlags.Format, Log)
	if err != nil {
		return err
	}
	return g.Write(cmd.OutOrStdout(), v)
}
