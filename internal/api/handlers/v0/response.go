package v0

// Response is a generic wrapper for Huma responses
// Usage: Response[HealthBody] instead of HealthOutput
type Response[T any] struct {
	Body T
}

// HTMLResponse carries a rendered page
type HTMLResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

func htmlResponse(body []byte) *HTMLResponse {
	return &HTMLResponse{
		ContentType: "text/html; charset=utf-8",
		Body:        body,
	}
}
