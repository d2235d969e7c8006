// Package cmd provides the CLI commands for rating-engine.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rating-engine/core/rating"
	"rating-engine/internal/config"
	"rating-engine/internal/logging"
)

// Version is the engine version reported by the CLI and the server
const Version = "1.0.0"

var (
	cfgFile   string
	ratesFile string
	verbose   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rating-engine",
	Short: "Quote insurance premiums from revenue, state and business type",
	Long: `rating-engine computes an annual insurance premium from a business's
revenue, its US state and its business category using fixed rate tables.

Examples:
  rating-engine quote --revenue 50000 --state CA --business retail
  rating-engine quote --format json -r 80000 -s GA -b technology
  rating-engine rates
  rating-engine serve --addr :8080`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON)")
	rootCmd.PersistentFlags().StringVar(&ratesFile, "rates", "", "rate table override (.yaml, .yml, .hcl or .json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	cfg, err := config.LoadWithEnv(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if ratesFile != "" {
		cfg.Rating.RatesFile = ratesFile
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Warn("Keeping default logger", zap.Error(err), zap.String("output", cfg.Logging.Output))
	}
}

// newService builds the rating service from the active configuration.
func newService() (*rating.Service, error) {
	table, err := rating.LoadTableOrDefault(config.Get().Rating.RatesFile)
	if err != nil {
		return nil, err
	}
	return rating.NewService(table, rating.WithLogger(logging.Named("rating"))), nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rating-engine version %s\n", Version)
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(config.Get())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write a default configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Default().Save(args[0]); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
		return nil
	},
}
