// Package domain holds the record kinds parsed from game-master sources,
// their parsers and the localization key convention.
// Pure values: no I/O, no package-level mutable state.
package domain

import (
	"regexp"
	"strconv"
)

// RawItem is one unparsed item produced by a source extractor:
// a JSON object or a delimited-text row.
type RawItem interface {
	// Get returns the scalar value at path as a string.
	// JSON items accept gjson paths ("moveSettings.power"); rows accept column names.
	Get(path string) (string, bool)
	// Decode unmarshals the whole item into v.
	Decode(v any) error
}

// Record is the query surface every record kind exposes to stores.
type Record interface {
	RecordID() string
	RecordName() string
	RecordIndex() uint32
	// Field returns the value of a named field, or false if the kind has no such field.
	Field(name string) (any, bool)
}

// Entity is a Record that can deep-copy itself. Stores hand out clones only.
type Entity[T any] interface {
	Record
	Clone() T
}

// Model carries the fields shared by every record kind.
type Model struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Index uint32 `json:"index"`
}

func (m Model) RecordID() string    { return m.ID }
func (m Model) RecordName() string  { return m.Name }
func (m Model) RecordIndex() uint32 { return m.Index }

// field resolves the shared field names.
func (m Model) field(name string) (any, bool) {
	switch name {
	case "id":
		return m.ID, true
	case "name":
		return m.Name, true
	case "index":
		return m.Index, true
	}
	return nil, false
}

// Identifier patterns: PREFIX####_KIND_SUFFIX.
var (
	MovePattern    = regexp.MustCompile(`^V(\d{4})_MOVE_\w+$`)
	PokemonPattern = regexp.MustCompile(`^V(\d{4})_POKEMON_\w+$`)
)

// MatchTemplateID returns a filter predicate that accepts raw items whose
// templateId matches pattern. Items without a templateId are rejected.
func MatchTemplateID(pattern *regexp.Regexp) func(RawItem) bool {
	return func(item RawItem) bool {
		id, ok := item.Get("templateId")
		return ok && pattern.MatchString(id)
	}
}

// indexFromID extracts the numeric index captured by pattern.
func indexFromID(kind string, pattern *regexp.Regexp, id string) (uint32, error) {
	m := pattern.FindStringSubmatch(id)
	if m == nil {
		return 0, NewParseError(kind, id, "templateId", "does not match "+pattern.String())
	}
	n, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return 0, NewParseError(kind, id, "templateId", err.Error())
	}
	return uint32(n), nil
}
