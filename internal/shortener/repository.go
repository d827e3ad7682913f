package shortener

import "context"

// Repository is the system of record for URL mappings. Both long_url and
// short_code are unique; implementations must enforce both constraints
// themselves (not check-then-insert) so concurrent writers cannot slip
// duplicates past the application.
type Repository interface {
	// FindByLongURL returns the record for a long URL, or ErrNotFound.
	FindByLongURL(ctx context.Context, longURL string) (*URLRecord, error)

	// FindByShortCode returns the record for a short code, or ErrNotFound.
	FindByShortCode(ctx context.Context, code string) (*URLRecord, error)

	// Insert persists a new record. Returns ErrDuplicateURL or
	// ErrDuplicateCode on the corresponding uniqueness violation.
	Insert(ctx context.Context, record *URLRecord) error
}
