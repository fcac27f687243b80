package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/imishinist/logger-dev/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "logger-dev",
	Short: "Development server for the FTC logger UI",
	Long: `A local development server for the FTC logger web UI.
Serves the UI assets and forwards /logger/api/* to a robot controller, or
answers the API from run files on disk when started with --fake.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (YAML)")
	rootCmd.PersistentFlags().String("runs-dir", "", "Directory holding <run>.jsonl files (overrides LOGGER_RUNS_DIR)")
	rootCmd.PersistentFlags().String("robot", "", "Robot controller base URL, scheme://host:port (overrides LOGGER_ROBOT)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug/info/warn/error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text/json)")
	viper.BindPFlag("runs_dir", rootCmd.PersistentFlags().Lookup("runs-dir"))
	viper.BindPFlag("robot", rootCmd.PersistentFlags().Lookup("robot"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	// A local .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		checkError(fmt.Errorf("failed to load .env: %w", err))
	}

	// Environment variables
	viper.SetEnvPrefix("LOGGER")
	viper.AutomaticEnv()

	// Set defaults
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			checkError(fmt.Errorf("failed to read config file %s: %w", cfgFile, err))
		}
	}
}

// loadConfig reads and validates the configuration for a command.
func loadConfig() (*config.Config, error) {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func checkError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
