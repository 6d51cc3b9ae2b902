package v0_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v0 "github.com/apiembed/apiembed/internal/api/handlers/v0"
	"github.com/apiembed/apiembed/internal/service"
	"github.com/apiembed/apiembed/pkg/snippet"
)

func TestTargetsEndpoint(t *testing.T) {
	mux := http.NewServeMux()
	api := humago.New(mux, huma.DefaultConfig("Test API", "1.0.0"))

	v0.RegisterTargetsEndpoint(api, service.NewFakeEmbedService())

	req := httptest.NewRequest(http.MethodGet, "/targets", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var listing []snippet.Target
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, snippet.AvailableTargets(), listing)

	// clientless targets carry no clients key
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	for _, target := range raw {
		if target["key"] == "go" {
			assert.NotContains(t, target, "clients")
		}
	}
}
