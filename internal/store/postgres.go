package store

import (
	"context"
	"errors"
	"strings"

	"github.com/castilhos/url-shortener/internal/shortener"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

const schema = `
	CREATE TABLE IF NOT EXISTS urls (
		id         text        PRIMARY KEY,
		long_url   text        NOT NULL,
		short_code text        NOT NULL,
		created_at timestamptz NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS urls_long_url_key ON urls (long_url);
	CREATE UNIQUE INDEX IF NOT EXISTS urls_short_code_key ON urls (short_code);
`

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
// Uniqueness of long_url and short_code is enforced by the database, so
// concurrent writers cannot race past an application-level check.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed URL repository.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the urls table and its unique indexes if missing.
// Safe to run on every startup; migrations/001_create_urls.sql carries the
// same DDL for external migration tooling.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schema)

	return err
}

func (p *PostgresStore) FindByLongURL(ctx context.Context, longURL string) (*shortener.URLRecord, error) {
	query := `
		SELECT id, long_url, short_code, created_at
		FROM urls
		WHERE long_url = $1
	`

	return p.findOne(ctx, query, longURL)
}

func (p *PostgresStore) FindByShortCode(ctx context.Context, code string) (*shortener.URLRecord, error) {
	query := `
		SELECT id, long_url, short_code, created_at
		FROM urls
		WHERE short_code = $1
	`

	return p.findOne(ctx, query, code)
}

func (p *PostgresStore) Insert(ctx context.Context, record *shortener.URLRecord) error {
	query := `
		INSERT INTO urls (id, long_url, short_code, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := p.pool.Exec(ctx, query,
		record.ID,
		record.LongURL,
		record.ShortCode,
		record.CreatedAt,
	)
	if err != nil {
		return mapInsertError(err)
	}

	return nil
}

func (p *PostgresStore) findOne(ctx context.Context, query, arg string) (*shortener.URLRecord, error) {
	var record shortener.URLRecord

	err := p.pool.QueryRow(ctx, query, arg).Scan(
		&record.ID,
		&record.LongURL,
		&record.ShortCode,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &record, nil
}

// mapInsertError translates a unique violation into the domain error for
// whichever constraint was hit, so the write path can tell a code
// collision (retry with a new code) from a lost dedup race (re-read).
func mapInsertError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}

	switch {
	case strings.Contains(pgErr.ConstraintName, "short_code"):
		return shortener.ErrDuplicateCode
	case strings.Contains(pgErr.ConstraintName, "long_url"):
		return shortener.ErrDuplicateURL
	}

	return err
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)
