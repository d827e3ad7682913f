package handlers_test

import (
	"context"
	"errors"

	"github.com/castilhos/url-shortener/internal/shortener"
)

var errBrokenRepo = errors.New("store unavailable")

// brokenRepo fails every operation, simulating an unreachable store.
type brokenRepo struct{}

func (brokenRepo) FindByLongURL(_ context.Context, _ string) (*shortener.URLRecord, error) {
	return nil, errBrokenRepo
}

func (brokenRepo) FindByShortCode(_ context.Context, _ string) (*shortener.URLRecord, error) {
	return nil, errBrokenRepo
}

func (brokenRepo) Insert(_ context.Context, _ *shortener.URLRecord) error {
	return errBrokenRepo
}
