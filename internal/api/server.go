package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/apiembed/apiembed/internal/api/router"
	"github.com/apiembed/apiembed/internal/config"
	"github.com/apiembed/apiembed/internal/service"
	"github.com/apiembed/apiembed/internal/telemetry"
	"github.com/apiembed/apiembed/internal/view"
)

// Server serves the embed page and the JSON endpoints
type Server struct {
	embed   service.EmbedService
	humaAPI huma.API
	server  *http.Server
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, embed service.EmbedService, renderer *view.Renderer, metrics *telemetry.Metrics) *Server {
	mux := http.NewServeMux()

	api := router.NewHumaAPI(cfg, embed, renderer, mux, metrics)

	return &Server{
		embed:   embed,
		humaAPI: api,
		server: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router.Handler(mux),
			ReadHeaderTimeout: 10 * time.Second,
			// embeds wait on an outbound fetch before writing
			WriteTimeout: cfg.FetchTimeout() + 20*time.Second,
			IdleTimeout:  2 * time.Minute,
		},
	}
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// API returns the Huma API, mainly for OpenAPI inspection
//
//nolint:ireturn // huma.API is the library's own abstraction
func (s *Server) API() huma.API {
	return s.humaAPI
}

// Start begins listening for incoming HTTP requests
func (s *Server) Start() error {
	log.Printf("HTTP server starting on %s (%d targets)", s.server.Addr, s.embed.Registry().Len())
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
