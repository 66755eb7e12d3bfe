// Package store loads a collection of records from one source and answers
// queries over it.
//
// A Store is populated at most once: Load runs fetch, extract, filter, parse
// and sort, and publishes the result only when every step succeeds. Queries
// return clones, never references into the store.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/heartmarshall/learnsets/internal/domain"
	"github.com/heartmarshall/learnsets/internal/source"
	"github.com/heartmarshall/learnsets/pkg/ctxutil"
)

// Parser turns one raw item into a record. seq is fresh for every load attempt.
type Parser[T any] func(item domain.RawItem, seq *domain.Sequence) (T, error)

type options struct {
	filter   func(domain.RawItem) bool
	sorters  []Sorter
	logger   *slog.Logger
	onLoaded []func(name string)
}

// Option configures a Store.
type Option func(*options)

// WithFilter drops raw items for which keep returns false, before parsing.
func WithFilter(keep func(domain.RawItem) bool) Option {
	return func(o *options) { o.filter = keep }
}

// WithSorters sets the sort keys applied after parsing.
func WithSorters(sorters ...Sorter) Option {
	return func(o *options) { o.sorters = append(o.sorters, sorters...) }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// OnLoaded registers fn to run after a successful load, with the store's name.
func OnLoaded(fn func(name string)) Option {
	return func(o *options) { o.onLoaded = append(o.onLoaded, fn) }
}

// Store owns the records loaded from one source.
type Store[T domain.Entity[T]] struct {
	name      string
	desc      source.Descriptor
	fetcher   source.Fetcher
	extractor source.Extractor
	parse     Parser[T]
	filter    func(domain.RawItem) bool
	sorters   []Sorter
	onLoaded  []func(string)
	log       *slog.Logger

	loadMu sync.Mutex // serializes Load

	mu      sync.RWMutex
	records []T
	loaded  bool
}

// New creates an unloaded Store. Sorter fields are checked against the record
// kind, so a typo fails here rather than sorting silently.
func New[T domain.Entity[T]](name string, desc source.Descriptor, fetcher source.Fetcher, parse Parser[T], opts ...Option) (*Store[T], error) {
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("store %s: %w", name, err)
	}
	if fetcher == nil || parse == nil {
		return nil, fmt.Errorf("%w: store %s: fetcher and parser are required", domain.ErrValidation, name)
	}
	extractor, err := source.NewExtractor(desc)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", name, err)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	var zero T
	for _, s := range o.sorters {
		if _, ok := zero.Field(s.Field); !ok {
			return nil, fmt.Errorf("store %s: sorter: %w", name, domain.UnknownFieldError(name, s.Field))
		}
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store[T]{
		name:      name,
		desc:      desc,
		fetcher:   fetcher,
		extractor: extractor,
		parse:     parse,
		filter:    o.filter,
		sorters:   o.sorters,
		onLoaded:  o.onLoaded,
		log:       logger.With("component", "store", slog.String("store", name)),
	}, nil
}

func (s *Store[T]) Name() string { return s.name }

// IsLoaded reports whether a load has completed successfully.
func (s *Store[T]) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Len returns the number of loaded records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Load fetches and parses the source. A failed load leaves the store empty
// and unloaded; it is not retried. Loading a loaded store is a no-op.
func (s *Store[T]) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.IsLoaded() {
		return nil
	}

	start := time.Now()
	log := s.log.With(slog.String("load_id", ctxutil.LoadIDString(ctx)))

	data, err := s.fetcher.Fetch(ctx, s.desc.Location)
	if err != nil {
		log.ErrorContext(ctx, "store fetch failed", slog.String("location", s.desc.Location), slog.String("error", err.Error()))
		return fmt.Errorf("%w: store %s: fetch %s: %w", domain.ErrLoad, s.name, s.desc.Location, err)
	}

	items, err := s.extractor.Extract(data)
	if err != nil {
		log.ErrorContext(ctx, "store extract failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: store %s: %w", domain.ErrLoad, s.name, err)
	}

	records, skipped, err := s.build(items)
	if err != nil {
		log.ErrorContext(ctx, "store parse failed", slog.String("error", err.Error()))
		return fmt.Errorf("store %s: %w", s.name, err)
	}

	s.mu.Lock()
	s.records = records
	s.loaded = true
	s.mu.Unlock()

	log.InfoContext(ctx, "store loaded",
		slog.Int("records", len(records)),
		slog.Int("filtered", skipped),
		slog.Duration("duration", time.Since(start)),
	)

	for _, fn := range s.onLoaded {
		fn(s.name)
	}
	return nil
}

// Start runs Load in the background. The channel yields its result, then closes.
func (s *Store[T]) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- s.Load(ctx)
	}()
	return done
}

// build filters, parses and sorts raw items. Any parse error aborts the build.
func (s *Store[T]) build(items []domain.RawItem) ([]T, int, error) {
	seq := domain.NewSequence(1)
	records := make([]T, 0, len(items))
	skipped := 0

	for i, item := range items {
		if s.filter != nil && !s.filter(item) {
			skipped++
			continue
		}
		rec, err := s.parse(item, seq)
		if err != nil {
			return nil, skipped, fmt.Errorf("item %d: %w", i, err)
		}
		records = append(records, rec)
	}

	if len(s.sorters) > 0 {
		slices.SortStableFunc(records, compareRecords[T](s.sorters))
	}
	return records, skipped, nil
}

// RetrieveAll returns every record in store order.
func (s *Store[T]) RetrieveAll() []T {
	return s.collect(func(T) bool { return true })
}

// RetrieveByID returns records whose ID equals id. Duplicate ids are passed through.
func (s *Store[T]) RetrieveByID(id string) []T {
	return s.collect(func(r T) bool { return r.RecordID() == id })
}

// RetrieveByName returns records named name, or, with partial, every record
// whose name contains name. Matching is case-sensitive.
func (s *Store[T]) RetrieveByName(name string, partial bool) []T {
	if partial {
		return s.collect(func(r T) bool { return strings.Contains(r.RecordName(), name) })
	}
	return s.collect(func(r T) bool { return r.RecordName() == name })
}

func (s *Store[T]) RetrieveByIndex(index uint32) []T {
	return s.collect(func(r T) bool { return r.RecordIndex() == index })
}

// RetrieveBy returns records whose field equals value. Numbers compare by
// value across numeric types. An unknown field or a value of the wrong kind
// is an error, never an empty match.
func (s *Store[T]) RetrieveBy(field string, value any) ([]T, error) {
	var zero T
	fv, ok := zero.Field(field)
	if !ok {
		return nil, domain.UnknownFieldError(s.name, field)
	}
	if !sameKind(fv, value) {
		return nil, fmt.Errorf("%w: field %q of %s compares %s, got %T", domain.ErrValidation, field, s.name, kindOf(fv), value)
	}
	return s.collect(func(r T) bool {
		v, _ := r.Field(field)
		return equalValues(v, value)
	}), nil
}

// collect clones the matching records into a new slice. Never returns nil.
func (s *Store[T]) collect(match func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0)
	for _, r := range s.records {
		if match(r) {
			out = append(out, r.Clone())
		}
	}
	return out
}
