package v0

import (
	"bytes"
	"net/http"
	"time"

	"github.com/apiembed/apiembed/internal/view"
)

// FaviconHandler serves the bundled favicon
func FaviconHandler() http.HandlerFunc {
	icon := view.Favicon()
	modified := time.Now()

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/x-icon")
		http.ServeContent(w, r, "favicon.ico", modified, bytes.NewReader(icon))
	}
}
