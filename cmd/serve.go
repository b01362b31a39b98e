package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"pagesmith/internal/api"
	"pagesmith/internal/api/handler/v1handler"
	"pagesmith/internal/builder"
	"pagesmith/internal/config"
	"pagesmith/internal/worker"
	"pagesmith/pkg/evaluator/httpeval"
	"pagesmith/pkg/logger"
	"pagesmith/pkg/pagecheck"
	"pagesmith/pkg/pagecheck/chromecheck"
	"pagesmith/pkg/pagecheck/htmlprobe"
	"pagesmith/pkg/publisher/ghpages"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(ctx, deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// getChecker creates the live page checker selected by the configuration, or
// nil when verification is disabled.
func getChecker(ctx context.Context, cfg *config.Config) pagecheck.Checker {
	switch cfg.Verifier.Mode {
	case "", "html":
		return htmlprobe.New(&http.Client{Timeout: cfg.Verifier.RequestTimeout})
	case "chrome":
		return chromecheck.New(chromecheck.Options{
			ExecPath: cfg.Verifier.ChromePath,
			Timeout:  cfg.Verifier.RequestTimeout,
		})
	case "off":
		return nil
	default:
		logger.Fatal(ctx, "unknown verifier mode", zap.String("mode", cfg.Verifier.Mode))

		return nil
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			bldr := builder.New(strg,
				getGenerator(ctx, cfg),
				ghpages.New(&http.Client{Timeout: cfg.GitHub.RequestTimeout}, cfg.GitHub.Token, ghpages.Options{
					APIBase:      cfg.GitHub.APIBase,
					Owner:        cfg.GitHub.Owner,
					PollInterval: cfg.GitHub.PagesPollInterval,
					PollAttempts: uint64(cfg.GitHub.PagesPollAttempts), //nolint: gosec
				}),
				httpeval.New(&http.Client{Timeout: cfg.Evaluator.RequestTimeout}, httpeval.Options{
					RetryBase:  cfg.Evaluator.RetryBase,
					MaxRetries: uint64(cfg.Evaluator.MaxRetries), //nolint: gosec
				}),
				getChecker(ctx, cfg),
				builder.NewOptions(cfg))

			riverClient, err := worker.Start(ctx, strg.Pool, bldr, worker.NewOptions(cfg))
			if err != nil {
				logger.Fatal(ctx, "could not start background workers", zap.Error(err))
			}

			stopWebserver := setupServer(ctx, cfg, api.Deps{
				Deps:        v1handler.Deps{Builder: bldr},
				RiverClient: riverClient,
				DBPool:      strg.Pool,
			})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			logger.Info(shutdownCtx, "stopping background workers...")
			if err := riverClient.Stop(shutdownCtx); err != nil {
				logger.Error(shutdownCtx, "could not stop river queue client", zap.Error(err))
			}

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
