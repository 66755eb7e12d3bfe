package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/learnsets/internal/domain"
	"github.com/heartmarshall/learnsets/internal/store"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// LearnsetMove is a move a Pokémon can learn, with its display name.
type LearnsetMove struct {
	Move        domain.Move
	DisplayName string
}

// Learnset lists the fast and charged moves of one Pokémon.
type Learnset struct {
	Pokemon      domain.Pokemon
	DisplayName  string
	FastMoves    []LearnsetMove
	ChargedMoves []LearnsetMove
	// Missing holds move names the Pokémon references but the move store lacks.
	Missing []string
}

// Learnset resolves the moves of the Pokémon named name (exact match).
// It fails with domain.ErrNotReady until every source has loaded.
func (c *Catalog) Learnset(ctx context.Context, name string) (*Learnset, error) {
	if !c.AllReady() {
		return nil, fmt.Errorf("learnset %s: %w (pending %v)", name, domain.ErrNotReady, c.barrier.Pending())
	}

	found := c.Pokemon.RetrieveByName(name, false)
	if len(found) == 0 {
		return nil, fmt.Errorf("learnset: pokemon %s: %w", name, domain.ErrNotFound)
	}
	p := found[0]

	loader := newMoveLoader(c.Moves)

	ls := &Learnset{
		Pokemon:     p,
		DisplayName: p.Name,
	}
	if dn, ok := c.PokemonDisplayName(p); ok {
		ls.DisplayName = dn
	}

	var err error
	ls.FastMoves, err = c.resolveMoves(ctx, loader, p.FastMoves, ls)
	if err != nil {
		return nil, fmt.Errorf("learnset %s: fast moves: %w", name, err)
	}
	ls.ChargedMoves, err = c.resolveMoves(ctx, loader, p.ChargedMoves, ls)
	if err != nil {
		return nil, fmt.Errorf("learnset %s: charged moves: %w", name, err)
	}

	c.log.DebugContext(ctx, "learnset resolved",
		slog.String("pokemon", p.Name),
		slog.Int("fast", len(ls.FastMoves)),
		slog.Int("charged", len(ls.ChargedMoves)),
		slog.Int("missing", len(ls.Missing)),
	)
	return ls, nil
}

func (c *Catalog) resolveMoves(ctx context.Context, loader *dataloader.Loader[string, domain.Move], names []string, ls *Learnset) ([]LearnsetMove, error) {
	moves, errs := loader.LoadMany(ctx, names)()

	out := make([]LearnsetMove, 0, len(names))
	for i, m := range moves {
		if errs != nil && errs[i] != nil {
			if errors.Is(errs[i], domain.ErrNotFound) {
				ls.Missing = append(ls.Missing, names[i])
				continue
			}
			return nil, errs[i]
		}
		dn, ok := c.MoveDisplayName(m)
		if !ok {
			dn = m.Name
		}
		out = append(out, LearnsetMove{Move: m, DisplayName: dn})
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Move loader
// ---------------------------------------------------------------------------

// newMoveLoader creates a per-query loader resolving move names against moves.
// Results are cached for the lifetime of the loader.
func newMoveLoader(moves *store.Store[domain.Move]) *dataloader.Loader[string, domain.Move] {
	return dataloader.NewBatchedLoader(
		newMovesBatchFn(moves),
		dataloader.WithWait[string, domain.Move](wait),
		dataloader.WithBatchCapacity[string, domain.Move](maxBatch),
	)
}

// newMovesBatchFn looks each name up exactly, falling back to the first
// partial match.
func newMovesBatchFn(moves *store.Store[domain.Move]) dataloader.BatchFunc[string, domain.Move] {
	return func(_ context.Context, keys []string) []*dataloader.Result[domain.Move] {
		results := make([]*dataloader.Result[domain.Move], len(keys))
		for i, key := range keys {
			found := moves.RetrieveByName(key, false)
			if len(found) == 0 {
				found = moves.RetrieveByName(key, true)
			}
			if len(found) == 0 {
				results[i] = &dataloader.Result[domain.Move]{Error: fmt.Errorf("move %s: %w", key, domain.ErrNotFound)}
				continue
			}
			results[i] = &dataloader.Result[domain.Move]{Data: found[0]}
		}
		return results
	}
}
