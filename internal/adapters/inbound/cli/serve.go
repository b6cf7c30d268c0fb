package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ordercraft/ordercraft/internal/adapters/inbound/httpapi"
	"github.com/ordercraft/ordercraft/internal/adapters/outbound/notify"
	"github.com/ordercraft/ordercraft/internal/application"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the order wizard as a JSON HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(flags)
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			if addr == "" {
				addr = e.cfg.HTTP.Addr
			}

			deps := e.deps
			deps.Notifier = notify.NewLog(e.logger)
			sessions := application.NewSessionManager(deps, e.logger, e.wizardOptions()...)
			defer sessions.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           httpapi.NewRouter(sessions, e.logger.Named("http"), e.cfg.HTTP.AllowedOrigins),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				e.logger.Info("http server listening", zap.String("addr", addr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("http server: %w", err)
			case <-ctx.Done():
			}

			e.logger.Info("shutting down http server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides http.addr)")
	return cmd
}
