// Package catalog wires the game-master stores and language dictionaries
// behind one readiness barrier and answers learnset queries once every
// source has loaded.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/learnsets/internal/config"
	"github.com/heartmarshall/learnsets/internal/domain"
	"github.com/heartmarshall/learnsets/internal/locale"
	"github.com/heartmarshall/learnsets/internal/readiness"
	"github.com/heartmarshall/learnsets/internal/source"
	"github.com/heartmarshall/learnsets/internal/store"
	"github.com/heartmarshall/learnsets/pkg/ctxutil"
)

// Source names tracked by the readiness barrier.
const (
	SourceMoves        = "moves"
	SourcePokemon      = "pokemon"
	SourceTexts        = "texts"
	SourceMoveNames    = "move_names"
	SourcePokemonNames = "pokemon_names"
)

// loadable is anything the catalog can load in the background.
type loadable interface {
	Name() string
	Load(ctx context.Context) error
}

// Catalog owns every source of the application.
type Catalog struct {
	Moves        *store.Store[domain.Move]
	Pokemon      *store.Store[domain.Pokemon]
	Texts        *store.Store[domain.LanguageVariable] // nil when no general text table is configured
	MoveNames    *locale.Dictionary
	PokemonNames *locale.Dictionary

	language      string
	maxConcurrent int
	barrier       *readiness.Barrier
	sources       []loadable
	log           *slog.Logger
}

// New builds an unloaded catalog from the sources configuration.
func New(cfg config.SourcesConfig, fetcher source.Fetcher, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "catalog")

	c := &Catalog{
		language:      cfg.Language,
		maxConcurrent: cfg.MaxConcurrent,
		barrier:       readiness.New(),
		log:           log,
	}
	if c.maxConcurrent <= 0 {
		c.maxConcurrent = 1
	}
	if c.language == "" {
		c.language = locale.DefaultLanguage
	}

	markReady := func(name string) {
		if err := c.barrier.MarkReady(name); err != nil {
			log.Error("mark source ready", slog.String("source", name), slog.String("error", err.Error()))
		}
	}

	moveSorters, err := store.ParseSorters(cfg.MoveSorters)
	if err != nil {
		return nil, fmt.Errorf("catalog: move sorters: %w", err)
	}
	pokemonSorters, err := store.ParseSorters(cfg.PokemonSorters)
	if err != nil {
		return nil, fmt.Errorf("catalog: pokemon sorters: %w", err)
	}

	gameMaster := source.JSON(cfg.GameMasterPath, cfg.RootProperty)

	c.Moves, err = store.New[domain.Move](SourceMoves, gameMaster, fetcher, domain.ParseMove,
		store.WithFilter(domain.MatchTemplateID(domain.MovePattern)),
		store.WithSorters(moveSorters...),
		store.WithLogger(logger),
		store.OnLoaded(markReady),
	)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	c.Pokemon, err = store.New[domain.Pokemon](SourcePokemon, gameMaster, fetcher, domain.ParsePokemon,
		store.WithFilter(domain.MatchTemplateID(domain.PokemonPattern)),
		store.WithSorters(pokemonSorters...),
		store.WithLogger(logger),
		store.OnLoaded(markReady),
	)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	c.MoveNames, err = locale.New(SourceMoveNames, source.Delimited(cfg.MoveNamesPath, cfg.Delimiter, true),
		cfg.Language, fetcher, locale.WithLogger(logger), locale.OnLoaded(markReady))
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	c.PokemonNames, err = locale.New(SourcePokemonNames, source.Delimited(cfg.PokemonNamesPath, cfg.Delimiter, true),
		cfg.Language, fetcher, locale.WithLogger(logger), locale.OnLoaded(markReady))
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	c.sources = []loadable{c.Moves, c.Pokemon, c.MoveNames, c.PokemonNames}

	if cfg.GeneralTextsPath != "" {
		c.Texts, err = store.New[domain.LanguageVariable](SourceTexts, source.Delimited(cfg.GeneralTextsPath, cfg.Delimiter, true),
			fetcher, domain.LanguageVariableParser(cfg.KeyColumn),
			store.WithLogger(logger),
			store.OnLoaded(markReady),
		)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		c.sources = append(c.sources, c.Texts)
	}

	// Every source is registered before any load starts.
	for _, s := range c.sources {
		if err := c.barrier.Register(s.Name()); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
	}

	return c, nil
}

// Load loads every source concurrently, at most MaxConcurrent at a time.
// Sources load independently: one failure does not cancel the others, and
// every failure is reported in the joined error.
func (c *Catalog) Load(ctx context.Context) error {
	loadID := uuid.New()
	ctx = ctxutil.WithLoadID(ctx, loadID)
	start := time.Now()

	c.log.InfoContext(ctx, "catalog load started",
		slog.String("load_id", loadID.String()),
		slog.Int("sources", len(c.sources)),
	)

	var (
		mu   sync.Mutex
		errs []error
	)
	g := new(errgroup.Group)
	g.SetLimit(c.maxConcurrent)

	for _, s := range c.sources {
		g.Go(func() error {
			if err := s.Load(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.log.ErrorContext(ctx, "catalog load failed",
			slog.String("load_id", loadID.String()),
			slog.Int("failed", len(errs)),
			slog.Any("pending", c.barrier.Pending()),
		)
		return errors.Join(errs...)
	}

	c.log.InfoContext(ctx, "catalog loaded",
		slog.String("load_id", loadID.String()),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// Start runs Load in the background. The channel yields its result, then closes.
func (c *Catalog) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- c.Load(ctx)
	}()
	return done
}

// AllReady reports whether every source has loaded.
func (c *Catalog) AllReady() bool { return c.barrier.AllReady() }

// OnReady registers fn to run once, when every source has loaded.
func (c *Catalog) OnReady(fn func()) { c.barrier.OnAllReady(fn) }

// Ready returns a channel closed when every source has loaded.
func (c *Catalog) Ready() <-chan struct{} { return c.barrier.Done() }

// Wait blocks until every source has loaded or ctx is done.
func (c *Catalog) Wait(ctx context.Context) error { return c.barrier.Wait(ctx) }

// Status reports per-source readiness.
func (c *Catalog) Status() map[string]bool { return c.barrier.Status() }

// Language is the language used for display names.
func (c *Catalog) Language() string { return c.language }

// MoveDisplayName resolves the localized name of m.
func (c *Catalog) MoveDisplayName(m domain.Move) (string, bool) {
	return c.MoveNames.Lookup(m.NameKey())
}

// PokemonDisplayName resolves the localized name of p.
func (c *Catalog) PokemonDisplayName(p domain.Pokemon) (string, bool) {
	return c.PokemonNames.Lookup(p.NameKey())
}

// Text resolves a key of the general text table in the catalog language.
func (c *Catalog) Text(key string) (string, bool) {
	if c.Texts == nil {
		return "", false
	}
	for _, v := range c.Texts.RetrieveByID(key) {
		if text, ok := v.Text(c.language); ok {
			return text, true
		}
	}
	return "", false
}
