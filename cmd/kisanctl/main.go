package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/i-m-samarth-cs/kisan-connect/internal/config"
	"github.com/i-m-samarth-cs/kisan-connect/internal/gateway"
	"github.com/i-m-samarth-cs/kisan-connect/internal/logging"
	"github.com/i-m-samarth-cs/kisan-connect/internal/server"
)

var (
	cfg    config.Config
	logger *zap.Logger

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "kisanctl",
	Short:         "KisanConnect operations CLI",
	Long:          `Maintenance commands for the KisanConnect backend: schema migration, demo seeding, listing export and offline assistant checks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		level := "warn"
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(cfg.GoEnv, level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(migrateCmd, seedCmd, exportCmd, chatCmd, translateCmd)
}

// openBackend は設定済みのバックエンドにつなぐ（未設定ならエラー）
func openBackend(ctx context.Context) (*gateway.Gateway, func() error, error) {
	if !cfg.IsBackendConfigured() {
		return nil, nil, gateway.ErrNotConfigured
	}
	return server.OpenGateway(ctx, cfg, logger)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
