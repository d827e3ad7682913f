package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/castilhos/url-shortener/internal/shortener"
	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// URLHandler handles URL shortening operations.
type URLHandler struct {
	service        *shortener.Service
	baseURL        string
	redirectStatus int
	logger         *zap.Logger
}

// NewURLHandler creates a new URL handler. When permanentRedirects is set,
// resolved codes answer with 301 instead of the default 302.
func NewURLHandler(service *shortener.Service, baseURL string, permanentRedirects bool, logger *zap.Logger) *URLHandler {
	redirectStatus := http.StatusFound
	if permanentRedirects {
		redirectStatus = http.StatusMovedPermanently
	}

	return &URLHandler{
		service:        service,
		baseURL:        baseURL,
		redirectStatus: redirectStatus,
		logger:         logger,
	}
}

func (h *URLHandler) Shorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	longURL, err := validateLongURL(req.Body.URL)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("url must be an absolute http or https URL")
	}

	record, err := h.service.Shorten(ctx, longURL)
	if err != nil {
		h.logger.Error("failed to shorten url", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to shorten url")
	}

	shortURL := fmt.Sprintf("%s/%s", h.baseURL, record.ShortCode)

	resp := &ShortenResponse{}
	resp.Headers.Location = shortURL
	resp.Body.ID = record.ID
	resp.Body.LongURL = record.LongURL
	resp.Body.ShortCode = record.ShortCode
	resp.Body.ShortURL = shortURL
	resp.Body.CreatedAt = record.CreatedAt

	return resp, nil
}

func (h *URLHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	longURL, err := h.service.Resolve(ctx, req.Code)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short url not found")
		}

		h.logger.Error("failed to resolve short code",
			zap.String("short_code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to resolve short code")
	}

	resp := &RedirectResponse{
		Status: h.redirectStatus,
	}
	resp.Headers.Location = longURL

	return resp, nil
}

func (h *URLHandler) Index(_ context.Context, _ *struct{}) (*IndexResponse, error) {
	resp := &IndexResponse{}
	resp.Body.Message = fmt.Sprintf("URL shortener. POST %s/shorten to create a short link.", h.baseURL)

	return resp, nil
}

// validateLongURL rejects anything that is not an absolute http(s) URL
// before it reaches the core.
func validateLongURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errors.New("not an absolute http(s) url")
	}

	return u.String(), nil
}
