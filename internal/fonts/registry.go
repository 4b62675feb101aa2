// Package fonts provisions the font files each locale needs.
//
// A Registry fetches every font variant at most once per process. Concurrent
// requests for the same variant share one in-flight fetch, and successful
// loads are cached for the registry's lifetime. Failed loads are not cached,
// so a later render retries.
package fonts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/font/opentype"
	"golang.org/x/sync/singleflight"

	"github.com/alnah/go-docpdf/internal/observability"
	"github.com/alnah/go-docpdf/internal/script"
)

// DefaultTimeout bounds one font fetch.
const DefaultTimeout = 30 * time.Second

// LoadError reports a font variant that could not be fetched or decoded.
type LoadError struct {
	Key    string
	Family string
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading font %s (%s) from %s: %v", e.Key, e.Family, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Registry loads and caches font variants.
type Registry struct {
	table   Table
	fetcher Fetcher
	timeout time.Duration
	logger  *zap.Logger
	metrics *observability.Metrics

	mu    sync.RWMutex
	cache map[string][]byte
	group singleflight.Group
}

// Option configures a Registry.
type Option func(*Registry)

// WithTable replaces the source table.
func WithTable(t Table) Option {
	return func(r *Registry) {
		if len(t) > 0 {
			r.table = t
		}
	}
}

// WithFetcher replaces the fetcher (tests use this to stay offline).
func WithFetcher(f Fetcher) Option {
	return func(r *Registry) {
		if f != nil {
			r.fetcher = f
		}
	}
}

// WithTimeout bounds each fetch.
func WithTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// NewRegistry creates a registry with the default source table.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		table:   DefaultTable(),
		fetcher: NewSourceFetcher(),
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
		cache:   make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prepare loads every variant of the locale's bundle and returns them ready
// to register on a PDF. The first load error is returned as *LoadError.
func (r *Registry) Prepare(ctx context.Context, locale string) (*Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, bundle := r.table.Lookup(locale)
	set := &Set{
		Key:       key,
		Primary:   bundle.Primary,
		Secondary: bundle.Secondary,
		Direction: script.DirectionFor(locale),
		styles:    make(map[string]map[string]bool),
	}

	for _, v := range bundle.Variants {
		data, err := r.load(ctx, v)
		if err != nil {
			return nil, err
		}
		set.add(v, data)
	}
	return set, nil
}

// Cached reports whether the variant key is in the cache.
func (r *Registry) Cached(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.cache[key]
	return ok
}

// Table returns the registry's source table.
func (r *Registry) Table() Table {
	return r.table
}

func (r *Registry) cached(key string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.cache[key]
	return data, ok
}

// load returns the variant bytes, joining an in-flight fetch when there is
// one. The fetch itself is detached from ctx so that one caller giving up
// does not fail the others; the caller still stops waiting on ctx.Done.
func (r *Registry) load(ctx context.Context, v Variant) ([]byte, error) {
	if data, ok := r.cached(v.Key); ok {
		return data, nil
	}

	ch := r.group.DoChan(v.Key, func() (any, error) {
		if data, ok := r.cached(v.Key); ok {
			return data, nil
		}

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		start := time.Now()
		data, err := r.fetcher.Fetch(fetchCtx, v.Source)
		if err == nil {
			_, err = opentype.Parse(data)
			if err != nil {
				err = fmt.Errorf("decoding font: %w", err)
			}
		}
		r.metrics.ObserveFontFetch(v.Family, err)
		if err != nil {
			r.logger.Warn("font load failed",
				zap.String("key", v.Key), zap.String("source", v.Source), zap.Error(err))
			return nil, &LoadError{Key: v.Key, Family: v.Family, Source: v.Source, Err: err}
		}

		r.mu.Lock()
		r.cache[v.Key] = data
		r.mu.Unlock()

		r.logger.Debug("font loaded",
			zap.String("key", v.Key), zap.Int("bytes", len(data)), zap.Duration("elapsed", time.Since(start)))
		return data, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
