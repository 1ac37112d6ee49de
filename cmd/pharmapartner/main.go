// Command pharmapartner classifies pharmacy accounts into partnership tiers
// from transactional sales extracts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scattaneo/pharmapartner/internal/cli"
	"github.com/scattaneo/pharmapartner/internal/common"
	"github.com/scattaneo/pharmapartner/internal/model"
	"github.com/scattaneo/pharmapartner/internal/storage"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "pharmapartner",
		Short: "Pharmacy partnership tier analyzer",
		Long: `pharmapartner ingests pharmacy sales extracts, aggregates revenue per
account, classifies each pharmacy into a partnership tier (Silver, Gold,
Platinum) by configurable thresholds, and exports the resulting tables.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/pharmapartner/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "run store database path (default: in-memory, session-scoped)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	_ = viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(runsCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/pharmapartner", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PHARMAPARTNER")
	viper.AutomaticEnv()

	defaults := model.DefaultThresholds()
	viper.SetDefault("database.path", storage.InMemoryDSN)
	viper.SetDefault("thresholds.silver_min", defaults.SilverMin)
	viper.SetDefault("thresholds.gold_min", defaults.GoldMin)
	viper.SetDefault("thresholds.gold_max", defaults.GoldMax)
	viper.SetDefault("thresholds.platinum_min", defaults.PlatinumMin)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if err := common.SetupLogger(viper.GetString("logging.level"), viper.GetString("logging.format")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("pharmapartner %s\n", version)
		},
	}
}
