package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/learnsets/internal/catalog"
	"github.com/heartmarshall/learnsets/internal/domain"
)

type learnsetService interface {
	Learnset(ctx context.Context, name string) (*catalog.Learnset, error)
	Language() string
}

// LearnsetHandler serves learnset queries.
type LearnsetHandler struct {
	catalog learnsetService
	log     *slog.Logger
}

// NewLearnsetHandler creates a LearnsetHandler.
func NewLearnsetHandler(c learnsetService, logger *slog.Logger) *LearnsetHandler {
	return &LearnsetHandler{
		catalog: c,
		log:     logger.With("handler", "learnset"),
	}
}

// LearnsetResponse is the JSON body of a learnset.
type LearnsetResponse struct {
	Pokemon      string         `json:"pokemon"`
	DisplayName  string         `json:"display_name"`
	Language     string         `json:"language"`
	Type1        string         `json:"type1"`
	Type2        string         `json:"type2,omitempty"`
	FastMoves    []MoveResponse `json:"fast_moves"`
	ChargedMoves []MoveResponse `json:"charged_moves"`
	Missing      []string       `json:"missing,omitempty"`
}

// MoveResponse is one move of a learnset.
type MoveResponse struct {
	Name            string  `json:"name"`
	DisplayName     string  `json:"display_name"`
	Type            string  `json:"type"`
	Power           float64 `json:"power"`
	DurationMs      int     `json:"duration_ms"`
	Energy          int     `json:"energy"`
	DamagePerSecond float64 `json:"dps"`
	EnergyPerSecond float64 `json:"eps"`
}

// Get returns the learnset of one Pokémon.
// GET /learnsets/{name}
func (h *LearnsetHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "pokemon name is required")
		return
	}

	ls, err := h.catalog.Learnset(r.Context(), name)
	switch {
	case errors.Is(err, domain.ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, "catalog is loading")
		return
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "pokemon not found")
		return
	case err != nil:
		h.log.ErrorContext(r.Context(), "resolve learnset",
			slog.String("pokemon", name),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, LearnsetResponse{
		Pokemon:      ls.Pokemon.Name,
		DisplayName:  ls.DisplayName,
		Language:     h.catalog.Language(),
		Type1:        ls.Pokemon.Type1,
		Type2:        ls.Pokemon.Type2,
		FastMoves:    toMoveResponses(ls.FastMoves),
		ChargedMoves: toMoveResponses(ls.ChargedMoves),
		Missing:      ls.Missing,
	})
}

func toMoveResponses(moves []catalog.LearnsetMove) []MoveResponse {
	out := make([]MoveResponse, 0, len(moves))
	for _, lm := range moves {
		out = append(out, MoveResponse{
			Name:            lm.Move.Name,
			DisplayName:     lm.DisplayName,
			Type:            lm.Move.Type,
			Power:           lm.Move.Power,
			DurationMs:      lm.Move.DurationMs,
			Energy:          lm.Move.Energy,
			DamagePerSecond: lm.Move.DamagePerSecond(),
			EnergyPerSecond: lm.Move.EnergyPerSecond(),
		})
	}
	return out
}
