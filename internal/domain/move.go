package domain

import "strings"

const moveKind = "move"

// Move is a move template from the game master.
type Move struct {
	Model
	Type       string  `json:"type"`
	Power      float64 `json:"power"`
	DurationMs int     `json:"durationMs"`
	Energy     int     `json:"energy"`
}

// gameMasterMove mirrors the game-master item shape (only fields we need).
type gameMasterMove struct {
	TemplateID   string `json:"templateId"`
	MoveSettings *struct {
		MovementID  string  `json:"movementId"`
		PokemonType string  `json:"pokemonType"`
		Power       float64 `json:"power"`
		DurationMs  int     `json:"durationMs"`
		EnergyDelta int     `json:"energyDelta"`
	} `json:"moveSettings"`
}

// ParseMove converts a game-master item into a Move. The index comes from
// the templateId, so the sequence is not used.
func ParseMove(item RawItem, _ *Sequence) (Move, error) {
	var raw gameMasterMove
	if err := item.Decode(&raw); err != nil {
		return Move{}, NewParseError(moveKind, "", "", err.Error())
	}

	index, err := indexFromID(moveKind, MovePattern, raw.TemplateID)
	if err != nil {
		return Move{}, err
	}
	if raw.MoveSettings == nil {
		return Move{}, NewParseError(moveKind, raw.TemplateID, "moveSettings", "missing")
	}
	if raw.MoveSettings.MovementID == "" {
		return Move{}, NewParseError(moveKind, raw.TemplateID, "moveSettings.movementId", "missing")
	}

	s := raw.MoveSettings
	return Move{
		Model:      Model{ID: raw.TemplateID, Name: s.MovementID, Index: index},
		Type:       s.PokemonType,
		Power:      s.Power,
		DurationMs: s.DurationMs,
		Energy:     s.EnergyDelta,
	}, nil
}

// DamagePerSecond returns power per second of animation. Zero duration yields 0.
func (m Move) DamagePerSecond() float64 {
	if m.DurationMs <= 0 {
		return 0
	}
	return m.Power / (float64(m.DurationMs) / 1000.0)
}

// EnergyPerSecond returns energy delta per second of animation. Zero duration yields 0.
func (m Move) EnergyPerSecond() float64 {
	if m.DurationMs <= 0 {
		return 0
	}
	return float64(m.Energy) / (float64(m.DurationMs) / 1000.0)
}

// IsFast reports whether the move is a fast (quick) move.
func (m Move) IsFast() bool {
	return strings.Contains(m.Name, "_FAST")
}

// NameKey returns the language-table key of the move's display name.
func (m Move) NameKey() string {
	return MoveNameKey(m.Index)
}

func (m Move) Field(name string) (any, bool) {
	switch name {
	case "type":
		return m.Type, true
	case "power":
		return m.Power, true
	case "duration", "durationMs":
		return m.DurationMs, true
	case "energy":
		return m.Energy, true
	}
	return m.Model.field(name)
}

func (m Move) Clone() Move { return m }
