package v0

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/apiembed/apiembed/internal/service"
	"github.com/apiembed/apiembed/pkg/snippet"
)

// RegisterTargetsEndpoint registers the raw target listing endpoint
func RegisterTargetsEndpoint(api huma.API, embed service.EmbedService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-targets",
		Method:      http.MethodGet,
		Path:        "/targets",
		Summary:     "List snippet targets",
		Description: "Get every available target with its clients, as reported by the snippet library",
		Tags:        []string{"targets"},
	}, func(_ context.Context, _ *struct{}) (*Response[[]snippet.Target], error) {
		return &Response[[]snippet.Target]{
			Body: embed.Targets(),
		}, nil
	})
}
