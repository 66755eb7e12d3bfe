package domain

import "slices"

const pokemonKind = "pokemon"

// Pokemon is a Pokémon template from the game master.
type Pokemon struct {
	Model
	Type1           string   `json:"type1"`
	Type2           string   `json:"type2,omitempty"`
	HeightM         float64  `json:"heightM"`
	WeightKg        float64  `json:"weightKg"`
	Stamina         int      `json:"stamina"`
	Attack          int      `json:"attack"`
	Defense         int      `json:"defense"`
	CaptureRate     float64  `json:"captureRate"`
	FleeRate        float64  `json:"fleeRate"`
	FastMoves       []string `json:"fastMoves"`
	ChargedMoves    []string `json:"chargedMoves"`
	BuddyDistanceKm float64  `json:"buddyDistanceKm"`
	BuddySize       string   `json:"buddySize,omitempty"`
	EvolvesFrom     string   `json:"evolvesFrom,omitempty"`
	Family          string   `json:"family"`
}

type gameMasterPokemon struct {
	TemplateID      string `json:"templateId"`
	PokemonSettings *struct {
		PokemonID       string  `json:"pokemonId"`
		Type            string  `json:"type"`
		Type2           string  `json:"type2"`
		PokedexHeightM  float64 `json:"pokedexHeightM"`
		PokedexWeightKg float64 `json:"pokedexWeightKg"`
		Stats           *struct {
			BaseStamina int `json:"baseStamina"`
			BaseAttack  int `json:"baseAttack"`
			BaseDefense int `json:"baseDefense"`
		} `json:"stats"`
		Encounter *struct {
			BaseCaptureRate float64 `json:"baseCaptureRate"`
			BaseFleeRate    float64 `json:"baseFleeRate"`
		} `json:"encounter"`
		QuickMoves      []string `json:"quickMoves"`
		CinematicMoves  []string `json:"cinematicMoves"`
		KmBuddyDistance float64  `json:"kmBuddyDistance"`
		BuddySize       string   `json:"buddySize"`
		ParentPokemonID string   `json:"parentPokemonId"`
		FamilyID        string   `json:"familyId"`
	} `json:"pokemonSettings"`
}

// ParsePokemon converts a game-master item into a Pokemon.
// pokemonSettings, pokemonId and stats are required; encounter is optional.
func ParsePokemon(item RawItem, _ *Sequence) (Pokemon, error) {
	var raw gameMasterPokemon
	if err := item.Decode(&raw); err != nil {
		return Pokemon{}, NewParseError(pokemonKind, "", "", err.Error())
	}

	index, err := indexFromID(pokemonKind, PokemonPattern, raw.TemplateID)
	if err != nil {
		return Pokemon{}, err
	}
	s := raw.PokemonSettings
	if s == nil {
		return Pokemon{}, NewParseError(pokemonKind, raw.TemplateID, "pokemonSettings", "missing")
	}
	if s.PokemonID == "" {
		return Pokemon{}, NewParseError(pokemonKind, raw.TemplateID, "pokemonSettings.pokemonId", "missing")
	}
	if s.Stats == nil {
		return Pokemon{}, NewParseError(pokemonKind, raw.TemplateID, "pokemonSettings.stats", "missing")
	}

	p := Pokemon{
		Model:           Model{ID: raw.TemplateID, Name: s.PokemonID, Index: index},
		Type1:           s.Type,
		Type2:           s.Type2,
		HeightM:         s.PokedexHeightM,
		WeightKg:        s.PokedexWeightKg,
		Stamina:         s.Stats.BaseStamina,
		Attack:          s.Stats.BaseAttack,
		Defense:         s.Stats.BaseDefense,
		FastMoves:       slices.Clone(s.QuickMoves),
		ChargedMoves:    slices.Clone(s.CinematicMoves),
		BuddyDistanceKm: s.KmBuddyDistance,
		BuddySize:       s.BuddySize,
		EvolvesFrom:     s.ParentPokemonID,
		Family:          s.FamilyID,
	}
	if s.Encounter != nil {
		p.CaptureRate = s.Encounter.BaseCaptureRate
		p.FleeRate = s.Encounter.BaseFleeRate
	}
	return p, nil
}

// NameKey returns the language-table key of the Pokémon's display name.
func (p Pokemon) NameKey() string {
	return PokemonNameKey(p.Index)
}

func (p Pokemon) Field(name string) (any, bool) {
	switch name {
	case "type1":
		return p.Type1, true
	case "type2":
		return p.Type2, true
	case "height":
		return p.HeightM, true
	case "weight":
		return p.WeightKg, true
	case "stamina":
		return p.Stamina, true
	case "attack":
		return p.Attack, true
	case "defense":
		return p.Defense, true
	case "captureRate":
		return p.CaptureRate, true
	case "fleeRate":
		return p.FleeRate, true
	case "buddyDistance":
		return p.BuddyDistanceKm, true
	case "buddySize":
		return p.BuddySize, true
	case "evolvesFrom":
		return p.EvolvesFrom, true
	case "family":
		return p.Family, true
	}
	return p.Model.field(name)
}

// Clone returns a copy that shares no slices with p.
func (p Pokemon) Clone() Pokemon {
	p.FastMoves = slices.Clone(p.FastMoves)
	p.ChargedMoves = slices.Clone(p.ChargedMoves)
	return p
}
