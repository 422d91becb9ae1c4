package repository

import (
	"context"
	"time"
)

// PopulateFunc loads the value for a key on cache miss.
type PopulateFunc func(ctx context.Context) ([]byte, error)

// ResultCache is a get-or-populate cache for single-shot ranking results.
//
// Contract: on a miss the populate function executes at most once per key even
// under concurrent callers (single-flight); on a hit it does not execute at
// all. A failing cache backend is treated as a miss — the populate result is
// returned directly and the failure never surfaces to the caller. Entries are
// never invalidated by content mutation; staleness is bounded only by the TTL.
type ResultCache interface {
	GetOrPopulate(ctx context.Context, key string, ttl time.Duration, populate PopulateFunc) ([]byte, error)
}
