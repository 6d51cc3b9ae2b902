package v0

import (
	"net/http"

	_ "github.com/swaggo/files"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SwaggerHandler returns a handler that serves the Swagger UI over the
// generated OpenAPI document
func SwaggerHandler(specURL string) http.HandlerFunc {
	handler := httpSwagger.Handler(
		httpSwagger.URL(specURL),
		httpSwagger.DeepLinking(true),
	)

	return func(w http.ResponseWriter, r *http.Request) {
		// When accessed directly, redirect to the UI path
		if r.URL.Path == "/swagger" {
			http.Redirect(w, r, "/swagger/", http.StatusFound)
			return
		}

		handler.ServeHTTP(w, r)
	}
}
