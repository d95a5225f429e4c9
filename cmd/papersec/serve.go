package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/papersec/httpapi"
	"github.com/hazyhaar/papersec/runlog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the extraction HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		extractor := newExtractor(cfg, logger)

		var runs *runlog.Store
		if cfg.RunLogPath != "" {
			runs, err = runlog.Open(cfg.RunLogPath, logger)
			if err != nil {
				return err
			}
			defer runs.Close()
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		api := httpapi.New(extractor, runs, logger)
		srv := &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           api.Router(),
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      5 * time.Minute, // model escalation can be slow
			IdleTimeout:       60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server starting", "addr", cfg.ListenAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}
		logger.Info("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
		logger.Info("server stopped")
		return nil
	},
}
