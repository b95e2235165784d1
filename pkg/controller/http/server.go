package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/tigerline/pkg/domain/interfaces"
	"github.com/m-mizutani/tigerline/pkg/usecase"
)

type config struct {
	addr     string
	useCache bool
}

// Option is a functional option for Server configuration.
type Option func(*config)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithCache enables the download cache for dataset retrievals made on
// behalf of HTTP requests.
func WithCache(enabled bool) Option {
	return func(c *config) {
		c.useCache = enabled
	}
}

// Server exposes the dataset catalog and the geocoding client over HTTP.
type Server struct {
	*http.Server
}

// NewServer builds the HTTP server and its routes.
func NewServer(
	ctx context.Context,
	catalog *usecase.Tiger,
	geocoder interfaces.Geocoder,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr: "localhost:8080",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)

	geo := &geocodeHandler{geocoder: geocoder}
	fips := &fipsHandler{catalog: catalog, useCache: cfg.useCache}
	prefetch := &prefetchHandler{catalog: catalog, useCache: cfg.useCache}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/geocode", geo.Geocode)
		r.Get("/lookup", geo.Lookup)
		r.Get("/fips/state/{state}", fips.State)
		r.Get("/fips/county/{state}/{county}", fips.County)
		r.Post("/prefetch/{geography}", prefetch.Handle)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
