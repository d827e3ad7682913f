package shortener

import "context"

// LookupStatus classifies the outcome of a cache lookup.
type LookupStatus int

const (
	// LookupHit means the cache held a value for the code.
	LookupHit LookupStatus = iota
	// LookupMiss means the cache had no entry for the code.
	LookupMiss
	// LookupError means the cache could not be reached. Callers treat it
	// as a miss; the variant exists so the fault stays observable.
	LookupError
)

// Lookup is the result of a cache lookup.
type Lookup struct {
	Status LookupStatus
	Value  string
	Err    error
}

// Hit builds a successful lookup result.
func Hit(value string) Lookup {
	return Lookup{Status: LookupHit, Value: value}
}

// Miss builds an empty lookup result.
func Miss() Lookup {
	return Lookup{Status: LookupMiss}
}

// Fault builds a failed lookup result carrying the underlying error.
func Fault(err error) Lookup {
	return Lookup{Status: LookupError, Err: err}
}

// Cache is a best-effort short_code -> long_url lookup cache. It is a
// latency optimization, never a correctness dependency: Lookup cannot fail
// the caller and Store has no error to surface.
type Cache interface {
	Lookup(ctx context.Context, code string) Lookup
	Store(ctx context.Context, code, longURL string)
}
