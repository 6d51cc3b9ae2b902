// Package router contains API routing logic
package router

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	v0 "github.com/apiembed/apiembed/internal/api/handlers/v0"
	"github.com/apiembed/apiembed/internal/config"
	"github.com/apiembed/apiembed/internal/service"
	"github.com/apiembed/apiembed/internal/telemetry"
	"github.com/apiembed/apiembed/internal/view"
)

// NewHumaAPI creates a Huma API on mux with every endpoint registered
//
//nolint:ireturn // huma.API is the library's own abstraction
func NewHumaAPI(cfg *config.Config, embed service.EmbedService, renderer *view.Renderer, mux *http.ServeMux, metrics *telemetry.Metrics) huma.API {
	humaConfig := huma.DefaultConfig("API Embed", cfg.Version)
	humaConfig.Info.Description = "Render code snippets for API descriptions in any language"

	api := humago.New(mux, humaConfig)

	api.UseMiddleware(MetricTelemetryMiddleware(metrics,
		WithSkipPaths("/health", "/metrics", "/ping", "/docs"),
	))

	RegisterV0Routes(api, cfg, embed, renderer, metrics)

	mux.Handle("GET /metrics", metrics.PrometheusHandler())
	mux.Handle("GET /favicon.ico", v0.FaviconHandler())

	swagger := v0.SwaggerHandler("/openapi.json")
	mux.Handle("GET /swagger", swagger)
	mux.Handle("GET /swagger/", swagger)

	return api
}

// RegisterV0Routes registers the version 0 endpoints
func RegisterV0Routes(api huma.API, cfg *config.Config, embed service.EmbedService, renderer *view.Renderer, metrics *telemetry.Metrics) {
	v0.RegisterHealthEndpoint(api, embed)
	v0.RegisterPingEndpoint(api, cfg.Version)
	v0.RegisterTargetsEndpoint(api, embed)
	v0.RegisterEmbedEndpoint(api, embed, renderer, metrics)
}

// Handler wraps the mux with the middleware applied to every response
func Handler(mux http.Handler) http.Handler {
	return AccessLog(CORS(Compress(mux)))
}
