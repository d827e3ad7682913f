package shortener

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no record exists for a short code or long URL.
	ErrNotFound = errors.New("url not found")

	// ErrDuplicateCode is returned by Repository.Insert when the short code is taken.
	ErrDuplicateCode = errors.New("short code already exists")

	// ErrDuplicateURL is returned by Repository.Insert when the long URL is taken.
	ErrDuplicateURL = errors.New("long url already exists")

	// ErrCodeSpaceExhausted is returned when the insert retry budget runs out
	// without finding a free short code.
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique short code")
)

// URLRecord is a short code bound to a long URL. Records are immutable once
// created; there is no update or delete path.
type URLRecord struct {
	ID        string
	LongURL   string
	ShortCode string
	CreatedAt time.Time
}
