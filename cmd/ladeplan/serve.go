package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lkoehler/ladeplan/internal/common"
	"github.com/lkoehler/ladeplan/internal/export"
	"github.com/lkoehler/ladeplan/internal/extract"
	"github.com/lkoehler/ladeplan/internal/pipeline"
	"github.com/lkoehler/ladeplan/internal/server"
	"github.com/lkoehler/ladeplan/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("config.invalid", "err", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := session.NewStore(cfg.Session.TTL, cfg.Session.JanitorInterval, logger)
	defer store.Close()

	processor := pipeline.NewProcessor(extract.NewPDFExtractor(logger), logger)
	exporter := export.NewService(logger)
	srv := server.New(cfg, processor, store, exporter, logger)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server.failed", "err", err)
		return err
	}
	return nil
}
