package v0

import (
	"bytes"
	"context"
	"log"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/apiembed/apiembed/internal/apierror"
	"github.com/apiembed/apiembed/internal/service"
	"github.com/apiembed/apiembed/internal/telemetry"
	"github.com/apiembed/apiembed/internal/view"
)

// EmbedInput represents the input for the embed page
type EmbedInput struct {
	Source  string `query:"source" doc:"Percent-encoded URL of a HAR request, HAR log or OpenAPI document"`
	Targets string `query:"targets" default:"all" doc:"Comma-separated target selection, e.g. shell:curl,node,go" example:"all"`

	path string
}

// Resolve records the request path. The root pattern also matches every
// unregistered path below it.
func (i *EmbedInput) Resolve(ctx huma.Context) []error {
	i.path = ctx.URL().Path
	return nil
}

// RegisterEmbedEndpoint registers the HTML embed page. Request failures are
// rendered in-page with status 200.
func RegisterEmbedEndpoint(api huma.API, embed service.EmbedService, renderer *view.Renderer, metrics *telemetry.Metrics) {
	huma.Register(api, huma.Operation{
		OperationID: "embed",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Render code snippets",
		Description: "Fetch an API description and render code snippets for the selected targets as HTML. " +
			"Errors are rendered in the page and never change the status code.",
		Tags: []string{"embed"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Rendered snippets or error page",
				Content:     map[string]*huma.MediaType{"text/html": {}},
			},
		},
	}, func(ctx context.Context, input *EmbedInput) (*HTMLResponse, error) {
		if input.path != "" && input.path != "/" {
			return nil, huma.Error404NotFound("Not Found")
		}

		output, err := embed.Generate(ctx, input.Source, input.Targets)
		if err != nil {
			return renderError(ctx, renderer, metrics, err)
		}

		for target, result := range output {
			if result.Clients == nil {
				metrics.RecordSnippet(ctx, target, "")
				continue
			}
			for client := range result.Clients {
				metrics.RecordSnippet(ctx, target, client)
			}
		}

		var buf bytes.Buffer
		if err := renderer.Main(&buf, view.NewMainPage(output, embed.Registry())); err != nil {
			return renderError(ctx, renderer, metrics, apierror.Internal(err))
		}
		return htmlResponse(buf.Bytes()), nil
	})
}

func renderError(ctx context.Context, renderer *view.Renderer, metrics *telemetry.Metrics, err error) (*HTMLResponse, error) {
	apiErr := apierror.As(err)
	metrics.RecordFailure(ctx, apiErr.Kind.String())
	if !apiErr.IsClientError() {
		log.Printf("embed request failed: %v", err)
	}

	var buf bytes.Buffer
	if rerr := renderer.Error(&buf, view.NewErrorPage(apiErr)); rerr != nil {
		log.Printf("failed to render error page: %v", rerr)
		return nil, huma.Error500InternalServerError("Failed to render error page", rerr)
	}
	return htmlResponse(buf.Bytes()), nil
}
