package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	_ "eventagenda/docs"
	"eventagenda/internal/repository/postgres"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the agenda HTTP and websocket API",
		Long: `Run the agenda API until SIGINT or SIGTERM.

With REDIS_URL set, change events are published on Redis so that every
instance behind a load balancer refreshes its websocket subscribers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply the database schema before serving")
	return cmd
}

func runServe(ctx context.Context, migrate bool) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if migrate {
		if err := postgres.Migrate(ctx, a.db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		a.logger.Info("database schema applied")
	}

	if a.bus != nil {
		if err := a.bus.Listen(ctx, a.hub); err != nil {
			return fmt.Errorf("listen for agenda changes: %w", err)
		}
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           a.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", srv.Addr, "env", a.cfg.Environment, "selection_store", a.cfg.SelectionStore)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	// Hijacked websocket connections are not tracked by Shutdown.
	a.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
