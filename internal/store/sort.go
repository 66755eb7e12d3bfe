package store

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/heartmarshall/learnsets/internal/domain"
)

// Direction is the order of one sort key.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sorter is one key of a multi-key sort.
type Sorter struct {
	Field     string
	Direction Direction
}

// ParseSorter reads "field", "field:asc" or "field:desc".
func ParseSorter(s string) (Sorter, error) {
	field, dir, _ := strings.Cut(strings.TrimSpace(s), ":")
	if field == "" {
		return Sorter{}, fmt.Errorf("%w: empty sort field in %q", domain.ErrValidation, s)
	}
	switch Direction(strings.ToLower(dir)) {
	case "", Asc:
		return Sorter{Field: field, Direction: Asc}, nil
	case Desc:
		return Sorter{Field: field, Direction: Desc}, nil
	default:
		return Sorter{}, fmt.Errorf("%w: unknown sort direction %q", domain.ErrValidation, dir)
	}
}

// ParseSorters parses every entry with ParseSorter.
func ParseSorters(specs []string) ([]Sorter, error) {
	sorters := make([]Sorter, 0, len(specs))
	for _, s := range specs {
		if strings.TrimSpace(s) == "" {
			continue
		}
		sorter, err := ParseSorter(s)
		if err != nil {
			return nil, err
		}
		sorters = append(sorters, sorter)
	}
	return sorters, nil
}

// compareRecords applies sorters in order; ties fall through to the next key.
func compareRecords[T domain.Record](sorters []Sorter) func(a, b T) int {
	return func(a, b T) int {
		for _, s := range sorters {
			av, _ := a.Field(s.Field)
			bv, _ := b.Field(s.Field)
			c := compareValues(av, bv)
			if s.Direction == Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	}
}

// compareValues orders numbers numerically, strings lexicographically and
// false before true. Values of different kinds compare equal.
func compareValues(a, b any) int {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
		return 0
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
		return 0
	}

	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB {
		return cmp.Compare(fa, fb)
	}
	return 0
}

// equalValues reports whether a field value equals a query value.
// Numbers match across numeric types.
func equalValues(field, value any) bool {
	if fa, ok := toFloat(field); ok {
		fb, ok := toFloat(value)
		return ok && fa == fb
	}
	return field == value
}

// sameKind reports whether two values belong to the same comparison kind.
func sameKind(a, b any) bool {
	return kindOf(a) == kindOf(b)
}

func kindOf(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "bool"
	}
	if _, ok := toFloat(v); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
