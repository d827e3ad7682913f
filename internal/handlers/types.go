package handlers

import "time"

// ShortenRequest is the request body for creating a short URL.
type ShortenRequest struct {
	Body struct {
		URL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"url"`
	}
}

// ShortenResponse is the response for a created (or deduplicated) short URL.
type ShortenResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		ID        string    `doc:"Record identifier"     example:"8c2b6f9e-0b1a-4f52-9c0d-3f8b7e2d4a61" json:"id"`
		LongURL   string    `doc:"The original URL"      example:"https://example.com/very/long/path"    json:"longUrl"`
		ShortCode string    `doc:"The short code"        example:"aZ3k"                                  json:"shortCode"`
		ShortURL  string    `doc:"The full short URL"    example:"http://localhost:8888/aZ3k"            json:"shortUrl"`
		CreatedAt time.Time `doc:"Creation timestamp"    json:"createdAt"`
	}
}

// RedirectRequest is the request for resolving a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"aZ3k" path:"code"`
}

// RedirectResponse redirects the client to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}

// IndexResponse is the informational response for the root path.
type IndexResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}
