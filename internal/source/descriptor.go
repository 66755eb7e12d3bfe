// Package source describes where record data lives, fetches its bytes and
// splits them into raw items for parsing.
package source

import (
	"fmt"

	"github.com/heartmarshall/learnsets/internal/domain"
)

// Format selects the extraction strategy for a source.
type Format string

const (
	FormatJSON      Format = "json"
	FormatDelimited Format = "delimited"
)

// DefaultDelimiter separates fields in language tables.
const DefaultDelimiter = '\t'

// Descriptor tells a store or dictionary where its data is and how to read it.
type Descriptor struct {
	Location string
	Format   Format

	// RootProperty is a gjson path to the item array (JSON only). Empty means
	// the document itself is the array.
	RootProperty string

	// Delimiter and HasHeader apply to delimited text only.
	Delimiter rune
	HasHeader bool
}

// JSON returns a descriptor for a JSON document whose items live under root.
func JSON(location, root string) Descriptor {
	return Descriptor{Location: location, Format: FormatJSON, RootProperty: root}
}

// Delimited returns a descriptor for delimited text. A zero delimiter means tab.
func Delimited(location string, delimiter rune, hasHeader bool) Descriptor {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return Descriptor{Location: location, Format: FormatDelimited, Delimiter: delimiter, HasHeader: hasHeader}
}

// Validate checks the descriptor for obvious misconfiguration.
func (d Descriptor) Validate() error {
	if d.Location == "" {
		return fmt.Errorf("%w: source location is required", domain.ErrValidation)
	}
	switch d.Format {
	case FormatJSON:
	case FormatDelimited:
		if d.Delimiter == 0 || d.Delimiter == '\n' || d.Delimiter == '"' {
			return fmt.Errorf("%w: invalid delimiter %q", domain.ErrValidation, d.Delimiter)
		}
	default:
		return fmt.Errorf("%w: unknown source format %q", domain.ErrValidation, d.Format)
	}
	return nil
}
