package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers all URL shortener routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler, healthHandler *HealthHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "shorten-url",
		Method:        http.MethodPost,
		Path:          "/shorten",
		Summary:       "Create short URL",
		Description:   "Creates a short code for the given URL. Submitting the same URL again returns the existing record.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusCreated,
	}, urlHandler.Shorten)

	huma.Get(api, "/", urlHandler.Index)

	huma.Get(api, "/health", healthHandler.Check)

	// Registered last so static paths take precedence over the wildcard.
	huma.Register(api, huma.Operation{
		OperationID: "redirect-short-url",
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the original URL associated with the short code.",
		Tags:        []string{"URLs"},
	}, urlHandler.Redirect)
}
