package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validate performs business-rule validation on the loaded configuration and
// fills the derived fields. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Enabled && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if err := c.Sources.validate(); err != nil {
		return fmt.Errorf("sources: %w", err)
	}

	return nil
}

func (s *SourcesConfig) validate() error {
	if s.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	for name, v := range map[string]string{
		"game_master_path":   s.GameMasterPath,
		"move_names_path":    s.MoveNamesPath,
		"pokemon_names_path": s.PokemonNamesPath,
		"language":           s.Language,
		"key_column":         s.KeyColumn,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	if s.MaxConcurrent <= 0 {
		return fmt.Errorf("max_concurrent must be > 0 (got %d)", s.MaxConcurrent)
	}
	if s.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be > 0 (got %s)", s.FetchTimeout)
	}

	delim, err := ParseDelimiter(s.DelimiterRaw)
	if err != nil {
		return fmt.Errorf("delimiter: %w", err)
	}
	s.Delimiter = delim

	s.MoveSorters = SplitList(s.MoveSortersRaw)
	s.PokemonSorters = SplitList(s.PokemonSortersRaw)

	return nil
}

// ParseDelimiter accepts a single character or one of the names
// "tab", "comma", "semicolon", "pipe". An empty string means tab.
func ParseDelimiter(raw string) (rune, error) {
	switch strings.ToLower(raw) {
	case "", "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	}
	if utf8.RuneCountInString(raw) != 1 {
		return 0, fmt.Errorf("must be a single character or a known name (got %q)", raw)
	}
	r, _ := utf8.DecodeRuneInString(raw)
	if r == '\n' || r == '"' {
		return 0, fmt.Errorf("%q cannot be used as a delimiter", r)
	}
	return r, nil
}

// SplitList splits a comma-separated list, dropping empty entries.
// An empty string returns a nil slice.
func SplitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
