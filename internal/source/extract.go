package source

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/learnsets/internal/domain"
)

// Extractor splits fetched bytes into raw items.
type Extractor interface {
	Extract(data []byte) ([]domain.RawItem, error)
}

// NewExtractor returns the extraction strategy for d.Format.
func NewExtractor(d Descriptor) (Extractor, error) {
	switch d.Format {
	case FormatJSON:
		return JSONExtractor{Root: d.RootProperty}, nil
	case FormatDelimited:
		delim := d.Delimiter
		if delim == 0 {
			delim = DefaultDelimiter
		}
		return DelimitedExtractor{Delimiter: delim, HasHeader: d.HasHeader}, nil
	default:
		return nil, fmt.Errorf("%w: unknown source format %q", domain.ErrValidation, d.Format)
	}
}

// JSONExtractor reads an item array from a JSON document, either at Root or
// at the top level.
type JSONExtractor struct {
	Root string
}

func (e JSONExtractor) Extract(data []byte) ([]domain.RawItem, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("extract json: invalid document")
	}

	doc := gjson.ParseBytes(data)
	if e.Root != "" {
		doc = gjson.GetBytes(data, e.Root)
		if !doc.Exists() {
			return nil, fmt.Errorf("extract json: root property %q not found", e.Root)
		}
	}
	if !doc.IsArray() {
		return nil, fmt.Errorf("extract json: expected an array, got %s", doc.Type)
	}

	values := doc.Array()
	items := make([]domain.RawItem, 0, len(values))
	for _, v := range values {
		items = append(items, JSONItem(v.Raw))
	}
	return items, nil
}

// DelimitedExtractor reads rows of delimited text.
//
// Lines are split on "\n" with a trailing "\r" dropped; blank lines are
// skipped. With HasHeader the first line names the columns; otherwise
// columns are named field_0, field_1, ... by position. Headers and values
// are passed through TrimQuotes. Values past the header width are dropped.
type DelimitedExtractor struct {
	Delimiter rune
	HasHeader bool
}

func (e DelimitedExtractor) Extract(data []byte) ([]domain.RawItem, error) {
	var header []string
	var items []domain.RawItem

	for line := range e.lines(data) {
		fields := e.split(line)
		if e.HasHeader && header == nil {
			header = fields
			continue
		}

		columns := header
		if !e.HasHeader {
			columns = positionalColumns(len(fields))
		}
		values := make(map[string]string, len(columns))
		for i, name := range columns {
			if i >= len(fields) {
				break
			}
			values[name] = fields[i]
		}
		items = append(items, NewRow(columns, values))
	}

	if items == nil {
		items = []domain.RawItem{}
	}
	return items, nil
}

// Header returns the trimmed column names of the first non-blank line.
func (e DelimitedExtractor) Header(data []byte) []string {
	for line := range e.lines(data) {
		return e.split(line)
	}
	return nil
}

// lines yields the non-blank lines of data without line terminators.
func (e DelimitedExtractor) lines(data []byte) iter.Seq[string] {
	text := strings.TrimPrefix(string(data), "\ufeff")
	return func(yield func(string) bool) {
		for line := range strings.SplitSeq(text, "\n") {
			line = strings.TrimSuffix(line, "\r")
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

func (e DelimitedExtractor) split(line string) []string {
	delim := e.Delimiter
	if delim == 0 {
		delim = DefaultDelimiter
	}
	fields := strings.Split(line, string(delim))
	for i := range fields {
		fields[i] = TrimQuotes(fields[i])
	}
	return fields
}

func positionalColumns(n int) []string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = "field_" + strconv.Itoa(i)
	}
	return cols
}
