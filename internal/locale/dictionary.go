// Package locale resolves localization keys to display text in one language.
package locale

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/heartmarshall/learnsets/internal/domain"
	"github.com/heartmarshall/learnsets/internal/source"
	"github.com/heartmarshall/learnsets/pkg/ctxutil"
)

// DefaultLanguage is used when a dictionary is created without a language.
const DefaultLanguage = "English"

// Option configures a Dictionary.
type Option func(*Dictionary)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dictionary) { d.log = logger }
}

// OnLoaded registers fn to run after a successful load, with the dictionary's name.
func OnLoaded(fn func(name string)) Option {
	return func(d *Dictionary) { d.onLoaded = append(d.onLoaded, fn) }
}

// Dictionary maps keys to text in one language of a delimited language table.
// The first row lists the columns: the key column, then one column per language.
type Dictionary struct {
	name     string
	desc     source.Descriptor
	language string
	fetcher  source.Fetcher
	log      *slog.Logger
	onLoaded []func(string)

	loadMu sync.Mutex

	mu        sync.RWMutex
	table     map[string]string
	languages []string
	loaded    bool
}

// New creates an unloaded Dictionary. The descriptor must be delimited; its
// header flag is ignored since language tables always carry one.
func New(name string, desc source.Descriptor, language string, fetcher source.Fetcher, opts ...Option) (*Dictionary, error) {
	if desc.Format != source.FormatDelimited {
		return nil, fmt.Errorf("%w: dictionary %s: format must be %q, got %q", domain.ErrValidation, name, source.FormatDelimited, desc.Format)
	}
	if desc.Delimiter == 0 {
		desc.Delimiter = source.DefaultDelimiter
	}
	desc.HasHeader = true
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", name, err)
	}
	if fetcher == nil {
		return nil, fmt.Errorf("%w: dictionary %s: fetcher is required", domain.ErrValidation, name)
	}
	if language == "" {
		language = DefaultLanguage
	}

	d := &Dictionary{
		name:     name,
		desc:     desc,
		language: language,
		fetcher:  fetcher,
		log:      slog.Default(),
		table:    map[string]string{},
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.With("component", "dictionary", slog.String("dictionary", name), slog.String("language", language))
	return d, nil
}

func (d *Dictionary) Name() string     { return d.name }
func (d *Dictionary) Language() string { return d.language }

// IsLoaded reports whether a load has completed successfully.
func (d *Dictionary) IsLoaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

// Len returns the number of keys in the table.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.table)
}

// Languages returns the language columns found in the header row.
func (d *Dictionary) Languages() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.languages)
}

// Lookup returns the text stored under key. A miss, including a lookup
// before loading, reports false and is not an error.
func (d *Dictionary) Lookup(key string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.table[key]
	return v, ok
}

// Load fetches and builds the table. A failed load leaves the dictionary
// empty and unloaded. Loading a loaded dictionary is a no-op.
func (d *Dictionary) Load(ctx context.Context) error {
	d.loadMu.Lock()
	defer d.loadMu.Unlock()

	if d.IsLoaded() {
		return nil
	}

	start := time.Now()
	log := d.log.With(slog.String("load_id", ctxutil.LoadIDString(ctx)))

	data, err := d.fetcher.Fetch(ctx, d.desc.Location)
	if err != nil {
		log.ErrorContext(ctx, "dictionary fetch failed", slog.String("location", d.desc.Location), slog.String("error", err.Error()))
		return fmt.Errorf("%w: dictionary %s: fetch %s: %w", domain.ErrLoad, d.name, d.desc.Location, err)
	}

	table, languages, err := d.build(data)
	if err != nil {
		log.ErrorContext(ctx, "dictionary build failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: dictionary %s: %w", domain.ErrLoad, d.name, err)
	}

	d.mu.Lock()
	d.table = table
	d.languages = languages
	d.loaded = true
	d.mu.Unlock()

	log.InfoContext(ctx, "dictionary loaded",
		slog.Int("keys", len(table)),
		slog.Duration("duration", time.Since(start)),
	)

	for _, fn := range d.onLoaded {
		fn(d.name)
	}
	return nil
}

// Start runs Load in the background. The channel yields its result, then closes.
func (d *Dictionary) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- d.Load(ctx)
	}()
	return done
}

func (d *Dictionary) build(data []byte) (map[string]string, []string, error) {
	extractor := source.DelimitedExtractor{Delimiter: d.desc.Delimiter, HasHeader: true}

	header := extractor.Header(data)
	if len(header) == 0 {
		return nil, nil, fmt.Errorf("empty language table")
	}
	languages := slices.Clone(header[1:])
	if !slices.Contains(languages, d.language) {
		return nil, nil, fmt.Errorf("%w %q, table has %v", domain.ErrUnknownLanguage, d.language, languages)
	}

	rows, err := extractor.Extract(data)
	if err != nil {
		return nil, nil, err
	}

	keyColumn := header[0]
	table := make(map[string]string, len(rows))
	for _, row := range rows {
		key, ok := row.Get(keyColumn)
		if !ok {
			continue
		}
		text, ok := row.Get(d.language)
		if !ok {
			continue
		}
		table[key] = text
	}
	return table, languages, nil
}
