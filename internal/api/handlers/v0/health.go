// Package v0 contains API handlers for version 0 of the API
package v0

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/apiembed/apiembed/internal/service"
)

// HealthBody represents the health check response body
type HealthBody struct {
	Status  string `json:"status" example:"ok" doc:"Health status"`
	Targets int    `json:"targets" example:"8" doc:"Number of registered snippet targets"`
}

// RegisterHealthEndpoint registers the health check endpoint
func RegisterHealthEndpoint(api huma.API, embed service.EmbedService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Check the health status of the API",
		Tags:        []string{"health"},
	}, func(_ context.Context, _ *struct{}) (*Response[HealthBody], error) {
		return &Response[HealthBody]{
			Body: HealthBody{
				Status:  "ok",
				Targets: embed.Registry().Len(),
			},
		}, nil
	})
}
