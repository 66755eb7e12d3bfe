package domain

import "maps"

const languageKind = "language_variable"

// DefaultKeyColumn is the header of the key column in the game's language tables.
const DefaultKeyColumn = "Key"

// LanguageVariable is one row of a language table: a key and its text per language.
type LanguageVariable struct {
	Model
	Texts map[string]string `json:"texts"`
}

// LanguageVariableParser returns a parser for language-table rows whose key
// lives in keyColumn. Language tables have no numeric identifier, so every
// successful parse takes its index from seq.
func LanguageVariableParser(keyColumn string) func(RawItem, *Sequence) (LanguageVariable, error) {
	if keyColumn == "" {
		keyColumn = DefaultKeyColumn
	}
	return func(item RawItem, seq *Sequence) (LanguageVariable, error) {
		var cols map[string]string
		if err := item.Decode(&cols); err != nil {
			return LanguageVariable{}, NewParseError(languageKind, "", "", err.Error())
		}
		key := cols[keyColumn]
		if key == "" {
			return LanguageVariable{}, NewParseError(languageKind, "", keyColumn, "missing")
		}
		delete(cols, keyColumn)

		return LanguageVariable{
			Model: Model{ID: key, Name: key, Index: seq.Next()},
			Texts: cols,
		}, nil
	}
}

// Text returns the variable's text in language.
func (v LanguageVariable) Text(language string) (string, bool) {
	s, ok := v.Texts[language]
	return s, ok
}

func (v LanguageVariable) Field(name string) (any, bool) {
	if name == "key" {
		return v.ID, true
	}
	return v.Model.field(name)
}

func (v LanguageVariable) Clone() LanguageVariable {
	v.Texts = maps.Clone(v.Texts)
	return v
}
