package domain

import (
	"strconv"
	"strings"
)

const (
	// KeyWidth is the digit width used by the game's language tables.
	KeyWidth = 4

	MoveNamePrefix    = "move_name"
	PokemonNamePrefix = "pokemon_name"
)

// FormatKey builds a localization key: prefix + "_" + index zero-padded to width digits.
//
// An index wider than width keeps only its rightmost width digits
// (12345 with width 4 yields "2345"), matching how the language tables were
// generated. A width of zero or less disables both padding and truncation.
func FormatKey(prefix string, width int, index uint32) string {
	digits := strconv.FormatUint(uint64(index), 10)
	if width > 0 {
		if len(digits) < width {
			digits = strings.Repeat("0", width-len(digits)) + digits
		} else if len(digits) > width {
			digits = digits[len(digits)-width:]
		}
	}
	return prefix + "_" + digits
}

// MoveNameKey returns the language-table key of a move's display name.
func MoveNameKey(index uint32) string {
	return FormatKey(MoveNamePrefix, KeyWidth, index)
}

// PokemonNameKey returns the language-table key of a Pokémon's display name.
func PokemonNameKey(index uint32) string {
	return FormatKey(PokemonNamePrefix, KeyWidth, index)
}
