package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nagarniyantran/civicnav/internal/cli"
	civichttp "github.com/nagarniyantran/civicnav/pkg/adapters/http"
	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/locale"
	"github.com/nagarniyantran/civicnav/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves stored navigation sessions as a JSON API over HTTP, with SSE streams of state changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer deps.stack.Close()

		if cmd.Flags().Changed("addr") {
			deps.cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("metrics") {
			deps.cfg.Metrics, _ = cmd.Flags().GetBool("metrics")
		}

		hooks := []domain.LifecycleHooks{observability.LoggingHooks(deps.logger)}
		serverOpts := []civichttp.Option{
			civichttp.WithLogger(deps.logger),
			civichttp.WithBackend(deps.stack.Backend),
			civichttp.WithLocaleMatcher(locale.NewMatcher(domain.Language(deps.cfg.DefaultLanguage))),
		}
		if deps.cfg.Metrics {
			metrics := observability.NewMetrics()
			hooks = append(hooks, metrics.Hooks())
			serverOpts = append(serverOpts, civichttp.WithMetrics(metrics))
		}

		manager := deps.stack.NewManager(deps.logger, hooks...)
		handler := civichttp.NewHandler(manager, serverOpts...)

		srv := &http.Server{
			Addr:              deps.cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			deps.logger.Info("Starting CivicNav Server", "address", srv.Addr, "store", deps.cfg.Store.Driver)
			serverErrors <- srv.ListenAndServe()
		}()

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-sigCtx.Done():
			deps.logger.Info("Start shutdown", "signal", sigCtx.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				deps.logger.Warn("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			deps.logger.Info("CivicNav Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics on /metrics")
}
