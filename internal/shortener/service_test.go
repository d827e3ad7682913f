package shortener_test

import (
	"context"
	"errors"
	"testing"

	"github.com/castilhos/url-shortener/internal/shortener"
	"github.com/castilhos/url-shortener/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testURL = "https://example.com/very/long/path"

var errStoreDown = errors.New("store down")

// mapCache is an in-memory shortener.Cache recording writes.
type mapCache struct {
	entries map[string]string
	stores  int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]string)}
}

func (c *mapCache) Lookup(_ context.Context, code string) shortener.Lookup {
	if value, ok := c.entries[code]; ok {
		return shortener.Hit(value)
	}

	return shortener.Miss()
}

func (c *mapCache) Store(_ context.Context, code, longURL string) {
	c.entries[code] = longURL
	c.stores++
}

// downCache simulates an unreachable cache.
type downCache struct{}

func (downCache) Lookup(_ context.Context, _ string) shortener.Lookup {
	return shortener.Fault(errors.New("connection refused"))
}

func (downCache) Store(_ context.Context, _, _ string) {}

// spyRepo counts repository reads on top of a real repository.
type spyRepo struct {
	shortener.Repository
	findByShortCodeCalls int
}

func (s *spyRepo) FindByShortCode(ctx context.Context, code string) (*shortener.URLRecord, error) {
	s.findByShortCodeCalls++

	return s.Repository.FindByShortCode(ctx, code)
}

// collidingRepo fails the first N inserts with a short code collision.
type collidingRepo struct {
	*store.MemoryStore
	failures int
	inserts  int
}

func (r *collidingRepo) Insert(ctx context.Context, record *shortener.URLRecord) error {
	r.inserts++
	if r.inserts <= r.failures {
		return shortener.ErrDuplicateCode
	}

	return r.MemoryStore.Insert(ctx, record)
}

// racingRepo simulates losing the dedup race: the probe misses, the insert
// hits the long_url constraint, and the re-read finds the winner's record.
type racingRepo struct {
	winner *shortener.URLRecord
	finds  int
}

func (r *racingRepo) FindByLongURL(_ context.Context, _ string) (*shortener.URLRecord, error) {
	r.finds++
	if r.finds == 1 {
		return nil, shortener.ErrNotFound
	}

	return r.winner, nil
}

func (r *racingRepo) FindByShortCode(_ context.Context, _ string) (*shortener.URLRecord, error) {
	return nil, shortener.ErrNotFound
}

func (r *racingRepo) Insert(_ context.Context, _ *shortener.URLRecord) error {
	return shortener.ErrDuplicateURL
}

// failingRepo returns a fixed error from every operation.
type failingRepo struct {
	err error
}

func (r *failingRepo) FindByLongURL(_ context.Context, _ string) (*shortener.URLRecord, error) {
	return nil, r.err
}

func (r *failingRepo) FindByShortCode(_ context.Context, _ string) (*shortener.URLRecord, error) {
	return nil, r.err
}

func (r *failingRepo) Insert(_ context.Context, _ *shortener.URLRecord) error {
	return r.err
}

func newTestService(t *testing.T, repo shortener.Repository, cache shortener.Cache) *shortener.Service {
	t.Helper()

	gen, err := shortener.NewGenerator()
	require.NoError(t, err)

	return shortener.NewService(repo, cache, gen.Generate, zap.NewNop())
}

func TestService_Shorten(t *testing.T) {
	t.Run("creates a record with generated code", func(t *testing.T) {
		service := newTestService(t, store.NewMemoryStore(), newMapCache())

		record, err := service.Shorten(context.Background(), testURL)

		require.NoError(t, err)
		assert.NotEmpty(t, record.ID)
		assert.NotEmpty(t, record.ShortCode)
		assert.Equal(t, testURL, record.LongURL)
		assert.False(t, record.CreatedAt.IsZero())
	})

	t.Run("is idempotent for the same long url", func(t *testing.T) {
		service := newTestService(t, store.NewMemoryStore(), newMapCache())

		first, err1 := service.Shorten(context.Background(), testURL)
		second, err2 := service.Shorten(context.Background(), testURL)

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, first.ShortCode, second.ShortCode)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("distinct urls get distinct codes", func(t *testing.T) {
		service := newTestService(t, store.NewMemoryStore(), newMapCache())

		codes := make(map[string]bool)

		for _, u := range []string{
			"https://example.com/a",
			"https://example.com/b",
			"https://example.com/c",
		} {
			record, err := service.Shorten(context.Background(), u)
			require.NoError(t, err)

			assert.False(t, codes[record.ShortCode], "code %q issued twice", record.ShortCode)
			codes[record.ShortCode] = true
		}
	})

	t.Run("retries on short code collision", func(t *testing.T) {
		repo := &collidingRepo{MemoryStore: store.NewMemoryStore(), failures: 3}
		service := newTestService(t, repo, newMapCache())

		record, err := service.Shorten(context.Background(), testURL)

		require.NoError(t, err)
		assert.NotEmpty(t, record.ShortCode)
		assert.Equal(t, 4, repo.inserts)
	})

	t.Run("fails after exhausting the retry budget", func(t *testing.T) {
		repo := &collidingRepo{MemoryStore: store.NewMemoryStore(), failures: 100}
		service := newTestService(t, repo, newMapCache())

		record, err := service.Shorten(context.Background(), testURL)

		assert.Nil(t, record)
		assert.ErrorIs(t, err, shortener.ErrCodeSpaceExhausted)
		assert.Equal(t, 4, repo.inserts)
	})

	t.Run("returns the winner's record after losing the dedup race", func(t *testing.T) {
		winner := &shortener.URLRecord{
			ID:        "winner-id",
			LongURL:   testURL,
			ShortCode: "aZ3k",
		}
		service := newTestService(t, &racingRepo{winner: winner}, newMapCache())

		record, err := service.Shorten(context.Background(), testURL)

		require.NoError(t, err)
		assert.Equal(t, winner, record)
	})

	t.Run("surfaces store errors", func(t *testing.T) {
		service := newTestService(t, &failingRepo{err: errStoreDown}, newMapCache())

		record, err := service.Shorten(context.Background(), testURL)

		assert.Nil(t, record)
		assert.ErrorIs(t, err, errStoreDown)
	})
}

func TestService_Resolve(t *testing.T) {
	t.Run("round trip returns the original url", func(t *testing.T) {
		service := newTestService(t, store.NewMemoryStore(), newMapCache())

		record, err := service.Shorten(context.Background(), testURL)
		require.NoError(t, err)

		longURL, err := service.Resolve(context.Background(), record.ShortCode)

		require.NoError(t, err)
		assert.Equal(t, testURL, longURL)
	})

	t.Run("populates the cache on miss and skips the store on hit", func(t *testing.T) {
		repo := &spyRepo{Repository: store.NewMemoryStore()}
		cache := newMapCache()
		service := newTestService(t, repo, cache)

		record, err := service.Shorten(context.Background(), testURL)
		require.NoError(t, err)

		first, err := service.Resolve(context.Background(), record.ShortCode)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.findByShortCodeCalls)
		assert.Equal(t, 1, cache.stores)

		second, err := service.Resolve(context.Background(), record.ShortCode)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, repo.findByShortCodeCalls, "warm resolve must not query the store")
	})

	t.Run("resolves through an unavailable cache", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		cold := newTestService(t, memStore, newMapCache())

		record, err := cold.Shorten(context.Background(), testURL)
		require.NoError(t, err)

		degraded := newTestService(t, memStore, downCache{})

		longURL, err := degraded.Resolve(context.Background(), record.ShortCode)

		require.NoError(t, err)
		assert.Equal(t, testURL, longURL)
	})

	t.Run("returns ErrNotFound for unknown codes", func(t *testing.T) {
		service := newTestService(t, store.NewMemoryStore(), newMapCache())

		longURL, err := service.Resolve(context.Background(), "doesnotexist")

		assert.Empty(t, longURL)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("surfaces store errors", func(t *testing.T) {
		service := newTestService(t, &failingRepo{err: errStoreDown}, newMapCache())

		longURL, err := service.Resolve(context.Background(), "aZ3k")

		assert.Empty(t, longURL)
		assert.ErrorIs(t, err, errStoreDown)
	})
}
