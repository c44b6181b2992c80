// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the account service.
package api

import (
	"accounts/internal/api/handler/v1handler"
	"accounts/internal/config"
	"accounts/pkg/controller"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
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
	// CORSOrigins are the browser origins allowed to call the API.
	CORSOrigins []string
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		CORSOrigins:       cfg.HTTP.CORSOrigins,
	}
}

type Deps struct {
	v1handler.Deps
}

// NewMeterProvider returns a meter provider whose instruments are exported
// through the default Prometheus registerer, and so served on MetricsPath.
func NewMeterProvider() (*sdkmetric.MeterProvider, error) {
	return NewMeterProviderWith(prometheus.DefaultRegisterer)
}

// NewMeterProviderWith is NewMeterProvider with an explicit registerer.
func NewMeterProviderWith(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// NewHandler returns the root handler of the API. It serves:
// - Prometheus metrics endpoint (MetricsPath)
// - Embedded OpenAPI v1 spec and Swagger UI
// - v1 API routes
// - pprof endpoints for profiling
// It also wraps the mux with CORS and logging middlewares and applies a request timeout.
func NewHandler(deps Deps, opts Options) http.Handler {
	mux := http.NewServeMux()

	// prometheus metrics server
	mux.Handle(opts.MetricsPath, promhttp.Handler())

	// v1 specs file
	mux.HandleFunc("/specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// v1 api swagger playground
	mux.Handle("/v1/docs/", v5emb.New(
		"Accounts Service",
		"/specs/v1.yaml",
		"/v1/docs/",
	))
	// v1 api
	mux.Handle("/v1/", http.StripPrefix("/v1", v1handler.New(deps.Deps).Routes()))

	// pprof
	mux.Handle("/debug/pprof/", controller.PprofMux())

	// cors
	handler := controller.WithCORS(opts.CORSOrigins)(mux)

	// logger
	handler = controller.WithLogger(handler)

	return http.TimeoutHandler(handler, opts.RequestTimeout, `{"error":"request timed out","code":"TIMEOUT"}`)
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
func NewServer(deps Deps, opts Options) *http.Server {
	return &http.Server{
		Addr:              opts.Addr,
		Handler:           NewHandler(deps, opts),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}
}
