package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mantonx/cinevault/internal/config"
	"github.com/mantonx/cinevault/internal/logger"
	"github.com/mantonx/cinevault/internal/server"
)

const shutdownTimeout = 5 * time.Second

func NewServeCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Migrate, seed and start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), watch)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "reload the config file when it changes")

	return cmd
}

func runServe(ctx context.Context, watch bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := config.Get()
	log := logger.Root()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	if cfg.Seed.Enabled {
		if err := runSeed(ctx, db, cfg, logger.Named("seed")); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
	}

	srv, err := server.New(cfg, db, log)
	if err != nil {
		return err
	}

	if watch {
		go func() {
			if err := config.GetConfigManager().Watch(ctx); err != nil {
				log.Warn("config watch disabled", "error", err)
			}
		}()
	}

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Handle graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case <-sigChan:
			log.Info("shutting down gracefully")
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error", "error", err)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("module shutdown error", "error", err)
		}
		cancel()
	}()

	log.Info("server starting", "addr", httpSrv.Addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancel()
		<-done
		return fmt.Errorf("failed to start server: %w", err)
	}

	<-done
	log.Info("server stopped")
	return nil
}
