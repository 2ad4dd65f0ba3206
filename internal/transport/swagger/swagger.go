// Package swagger serves the interactive API browser backed by the
// OpenAPI document mounted at the server root.
package swagger

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Handler renders the swagger UI. The OpenAPI document itself is served
// separately at /openapi.yml so the UI and the document stay in sync.
func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.yml"),
		httpSwagger.DocExpansion("list"),
	)
}
