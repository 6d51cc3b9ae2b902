package v0_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	v0 "github.com/apiembed/apiembed/internal/api/handlers/v0"
	"github.com/apiembed/apiembed/internal/view"
)

func TestFaviconHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/favicon.ico", nil)
	w := httptest.NewRecorder()

	v0.FaviconHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/x-icon", w.Header().Get("Content-Type"))
	assert.Equal(t, view.Favicon(), w.Body.Bytes())
}

func TestSwaggerHandler_Redirect(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/swagger", nil)
	w := httptest.NewRecorder()

	v0.SwaggerHandler("/openapi.json").ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/swagger/", w.Header().Get("Location"))
}
