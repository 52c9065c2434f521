// Package portal holds the client-side state of the booking portal: cached
// reads with staleness windows, appointment mutations, the auth session and
// route guarding.
package portal

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/glowbook/salon-booking/internal/client"
)

// readRetries is how many times a failed read is repeated.
const readRetries = 1

type entry[T any] struct {
	value     T
	fetchedAt time.Time
}

// query caches read results per key. A value younger than stale is served
// without calling fetch; concurrent misses for one key share a single call.
type query[T any] struct {
	mu      sync.Mutex
	stale   time.Duration
	now     func() time.Time
	group   singleflight.Group
	entries map[string]entry[T]
	errs    map[string]error
	loading map[string]int
	// gen moves on every reset or invalidate. A fetch started under an
	// older generation does not write its result back.
	gen uint64
}

func newQuery[T any](stale time.Duration, now func() time.Time) *query[T] {
	return &query[T]{
		stale:   stale,
		now:     now,
		entries: map[string]entry[T]{},
		errs:    map[string]error{},
		loading: map[string]int{},
	}
}

// get returns the cached value for key or fetches it. Concurrent misses
// share one fetch; each caller stops waiting when its own ctx is done.
func (q *query[T]) get(ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := q.fresh(key); ok {
		return v, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := q.group.DoChan(key, func() (any, error) {
		// Another caller may have filled the entry while we waited.
		if v, ok := q.fresh(key); ok {
			return v, nil
		}
		gen := q.generation()
		q.setLoading(key, true)
		defer q.setLoading(key, false)

		v, err := withRetry(shared, fetch)
		q.mu.Lock()
		defer q.mu.Unlock()
		if q.gen != gen {
			return v, err
		}
		if err != nil {
			q.errs[key] = err
			return v, err
		}
		delete(q.errs, key)
		q.entries[key] = entry[T]{value: v, fetchedAt: q.now()}
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (q *query[T]) generation() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.gen
}

func (q *query[T]) fresh(key string) (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.entries[key]
	if !ok || q.now().Sub(e.fetchedAt) >= q.stale {
		var zero T
		return zero, false
	}
	return e.value, true
}

// peek returns whatever is cached for key, fresh or not.
func (q *query[T]) peek(key string) (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.entries[key]
	return e.value, ok
}

// set stores v as freshly fetched.
func (q *query[T]) set(key string, v T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries[key] = entry[T]{value: v, fetchedAt: q.now()}
	delete(q.errs, key)
}

// update rewrites a cached value in place, keeping its fetch time. It
// reports false when key is not cached or fn declines the change.
func (q *query[T]) update(key string, fn func(T) (T, bool)) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.entries[key]
	if !ok {
		return false
	}
	next, ok := fn(e.value)
	if !ok {
		return false
	}
	e.value = next
	q.entries[key] = e
	return true
}

func (q *query[T]) err(key string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.errs[key]
}

func (q *query[T]) isLoading(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.loading[key] > 0
}

func (q *query[T]) setLoading(key string, v bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if v {
		q.loading[key]++
		return
	}
	if q.loading[key]--; q.loading[key] <= 0 {
		delete(q.loading, key)
	}
}

func (q *query[T]) invalidate(key string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.gen++
	q.group.Forget(key)
	delete(q.entries, key)
	delete(q.errs, key)
}

func (q *query[T]) reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.gen++
	for key := range q.loading {
		q.group.Forget(key)
	}
	q.entries = map[string]entry[T]{}
	q.errs = map[string]error{}
}

// withRetry runs fetch and repeats it up to readRetries times for errors a
// second attempt could fix.
func withRetry[T any](ctx context.Context, fetch func(context.Context) (T, error)) (T, error) {
	var (
		v   T
		err error
	)
	for attempt := 0; attempt <= readRetries; attempt++ {
		v, err = fetch(ctx)
		if err == nil || !retryable(ctx, err) {
			return v, err
		}
	}
	return v, err
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	return !errors.Is(err, client.ErrNotFound) && !errors.Is(err, client.ErrUnauthenticated)
}
