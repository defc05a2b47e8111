// cmd/storefront/main.go
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/logging"
)

var (
	// Global flags
	envFile  string
	logLevel string

	cfg    *config.Config
	logger *logrus.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "MLM storefront gateway",
	Long: `storefront serves the member storefront API: a persistent shopping cart
in front of the MLM backend, plus proxies for auth, products, orders,
wallet, KYC, finance and bonuses.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment from this file before .env")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cartCmd)
}

// setup loads configuration and the logger unless a test already did
func setup(cmd *cobra.Command) error {
	if cfg != nil {
		return nil
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Logging.Level = logLevel
	}

	cfg = loaded
	logger = logging.NewWithOutput(cfg, cmd.ErrOrStderr())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
