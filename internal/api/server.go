// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the pagesmith service.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"pagesmith/internal/api/handler/v1handler"
	"pagesmith/internal/config"
	"pagesmith/pkg/controller"
	"pagesmith/pkg/demopage"
	"pagesmith/pkg/logger"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riverqueue/river"
	"github.com/swaggest/swgui/v5emb"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"riverqueue.com/riverui"
)

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// SecHandlerOptions configures the security handler (authn/authz) for v1 endpoints.
	SecHandlerOptions *v1handler.SecHandlerOptions
	// HandlerOptions configures the v1 handlers, including the webhook secret.
	HandlerOptions *v1handler.Options

	// DemoTitle is the heading of the demo page served at the root path.
	DemoTitle string

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions constructs an Options value from the provided application configuration.
// It maps HTTP server-related settings from config.Config to the Options used by the API server.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SecHandlerOptions: v1handler.NewSecHandlerOptions(cfg),
		HandlerOptions:    v1handler.NewOptions(cfg),

		DemoTitle: cfg.Generator.Title,

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

type Deps struct {
	v1handler.Deps

	// RiverClient and DBPool power the embedded job queue UI; the UI is not
	// mounted when either is nil.
	RiverClient *river.Client[pgx.Tx]
	DBPool      *pgxpool.Pool
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - OpenTelemetry metrics exporter (Prometheus) registered as the global meter provider
// - Runtime OpenAPI document (/specs/v1.yaml) and Swagger UI (/v1/docs/)
// - The demo page at the root path and the task webhook next to it
// - v1 build endpoints guarded by bearer auth
// - The River job queue UI (/riverui/)
// - pprof endpoints for profiling
// It also wraps the router with CORS and logging middlewares and applies a request timeout.
func NewServer(ctx context.Context, deps Deps, opts Options) (*http.Server, error) {
	router := chi.NewMux()

	// prometheus metrics server
	router.Handle(opts.MetricsPath, promhttp.Handler())

	// otel
	exp, err := otelprom.New(otelprom.WithRegisterer(prometheus.DefaultRegisterer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)))

	// demo page
	router.Get("/", demopage.Handler(opts.DemoTitle, ""))

	// liveness
	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// v1 api; the OpenAPI document is generated at runtime and served at
	// /specs/v1.yaml, browsable through the swagger playground
	humaCfg := huma.DefaultConfig("Pagesmith API", "1.0.0")
	humaCfg.OpenAPIPath = "/specs/v1"
	humaCfg.DocsPath = ""
	humaCfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}
	v1API := humachi.New(router, humaCfg)

	router.Handle("/v1/docs/*", v5emb.New(
		"Pagesmith",
		"/specs/v1.yaml",
		"/v1/docs/",
	))

	secHandler, err := v1handler.NewSecHandler(opts.SecHandlerOptions)
	if err != nil {
		return nil, fmt.Errorf("could not create sec handler: %w", err)
	}
	v1handler.New(deps.Deps, opts.HandlerOptions).Register(v1API, secHandler)

	// job queue ui
	if deps.RiverClient != nil && deps.DBPool != nil {
		uiServer, err := riverui.NewServer(&riverui.ServerOpts{
			Client: deps.RiverClient,
			DB:     deps.DBPool,
			Logger: slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
			Prefix: "/riverui",
		})
		if err != nil {
			return nil, fmt.Errorf("could not create river ui server: %w", err)
		}
		go func() {
			if err := uiServer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error(ctx, "river ui stopped", zap.Error(err))
			}
		}()
		router.Handle("/riverui", uiServer)
		router.Handle("/riverui/*", uiServer)
	}

	// pprof
	router.Handle("/debug/pprof/*", controller.PprofMux())

	// otel http server instrumentation
	handler := otelhttp.NewHandler(router, "http.server")

	// cors
	handler = controller.WithCORS(handler)

	// logger
	handler = controller.WithLogger(handler)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           http.TimeoutHandler(handler, opts.RequestTimeout, `{"error":"request timed out"}`),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
