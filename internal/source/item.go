package source

import (
	"maps"
	"slices"

	json "github.com/goccy/go-json"
	"github.com/go-viper/mapstructure/v2"
	"github.com/tidwall/gjson"
)

// JSONItem is one raw JSON value taken from a document's item array.
type JSONItem []byte

// Get resolves a gjson path inside the item.
func (i JSONItem) Get(path string) (string, bool) {
	r := gjson.GetBytes(i, path)
	if !r.Exists() {
		return "", false
	}
	return r.String(), true
}

// Decode unmarshals the item into v using its json tags.
func (i JSONItem) Decode(v any) error {
	return json.Unmarshal(i, v)
}

// Row is one data line of delimited text, keyed by column name.
type Row struct {
	columns []string
	values  map[string]string
}

// NewRow builds a row from column names and values keyed by those names.
func NewRow(columns []string, values map[string]string) Row {
	return Row{columns: columns, values: values}
}

func (r Row) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Decode copies the row into v. Values are weakly typed, so "42" decodes
// into an int field and a map[string]string receives every column.
func (r Row) Decode(v any) error {
	return mapstructure.WeakDecode(maps.Clone(r.values), v)
}

// Columns returns the row's column names in source order.
func (r Row) Columns() []string {
	return slices.Clone(r.columns)
}

// Len reports how many columns hold a value in this row.
func (r Row) Len() int {
	return len(r.values)
}

// TrimQuotes strips one surrounding pair of double quotes. Embedded quotes
// and delimiters are not unescaped.
func TrimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
