package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- JSON ---

func TestJSONExtractor_RootProperty(t *testing.T) {
	t.Parallel()

	data := []byte(`{"items":[{"templateId":"V0001_KIND_X"},{"templateId":"BAD"}]}`)

	items, err := JSONExtractor{Root: "items"}.Extract(data)
	require.NoError(t, err)
	require.Len(t, items, 2)

	id, ok := items[0].Get("templateId")
	assert.True(t, ok)
	assert.Equal(t, "V0001_KIND_X", id)

	id, ok = items[1].Get("templateId")
	assert.True(t, ok)
	assert.Equal(t, "BAD", id)
}

func TestJSONExtractor_BareArray(t *testing.T) {
	t.Parallel()

	items, err := JSONExtractor{}.Extract([]byte(`[{"a":1},{"a":2},{"a":3}]`))
	require.NoError(t, err)
	require.Len(t, items, 3)

	v, ok := items[2].Get("a")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestJSONExtractor_NestedPath(t *testing.T) {
	t.Parallel()

	items, err := JSONExtractor{Root: "data.list"}.Extract([]byte(`{"data":{"list":[{"x":{"y":"deep"}}]}}`))
	require.NoError(t, err)
	require.Len(t, items, 1)

	v, ok := items[0].Get("x.y")
	assert.True(t, ok)
	assert.Equal(t, "deep", v)

	_, ok = items[0].Get("x.missing")
	assert.False(t, ok)
}

func TestJSONExtractor_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		root string
		data string
	}{
		{"invalid json", "", `{"items":[`},
		{"missing root", "items", `{"other":[]}`},
		{"root not array", "items", `{"items":{"a":1}}`},
		{"document not array", "", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := JSONExtractor{Root: tt.root}.Extract([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestJSONItem_Decode(t *testing.T) {
	t.Parallel()

	var v struct {
		TemplateID string `json:"templateId"`
		Settings   struct {
			Power float64 `json:"power"`
		} `json:"moveSettings"`
	}
	err := JSONItem(`{"templateId":"V0013_MOVE_WRAP","moveSettings":{"power":60.5}}`).Decode(&v)
	require.NoError(t, err)
	assert.Equal(t, "V0013_MOVE_WRAP", v.TemplateID)
	assert.InDelta(t, 60.5, v.Settings.Power, 1e-9)
}

// --- Delimited ---

func TestDelimitedExtractor_Header(t *testing.T) {
	t.Parallel()

	data := []byte("Key\tEnglish\tFrench\r\ngreeting\tHello\tBonjour\r\n\r\nfarewell\tBye\tAu revoir\n")

	items, err := DelimitedExtractor{Delimiter: '\t', HasHeader: true}.Extract(data)
	require.NoError(t, err)
	require.Len(t, items, 2)

	row := items[0].(Row)
	assert.Equal(t, []string{"Key", "English", "French"}, row.Columns())

	v, ok := row.Get("French")
	assert.True(t, ok)
	assert.Equal(t, "Bonjour", v)

	v, _ = items[1].Get("French")
	assert.Equal(t, "Au revoir", v)
}

func TestDelimitedExtractor_QuotesStripped(t *testing.T) {
	t.Parallel()

	data := []byte("\"Key\"\t\"Name\"\n\"pokemon_name_0001\"\t\"Bulbasaur\"\n")

	items, err := DelimitedExtractor{Delimiter: '\t', HasHeader: true}.Extract(data)
	require.NoError(t, err)
	require.Len(t, items, 1)

	name, ok := items[0].Get("Name")
	require.True(t, ok, "header should be stored without quotes")
	assert.Equal(t, "Bulbasaur", name)

	key, _ := items[0].Get("Key")
	assert.Equal(t, "pokemon_name_0001", key)
}

func TestDelimitedExtractor_NoHeader(t *testing.T) {
	t.Parallel()

	items, err := DelimitedExtractor{Delimiter: ',', HasHeader: false}.Extract([]byte("a,b,c\nd,e\n"))
	require.NoError(t, err)
	require.Len(t, items, 2)

	v, ok := items[0].Get("field_2")
	assert.True(t, ok)
	assert.Equal(t, "c", v)

	_, ok = items[1].Get("field_2")
	assert.False(t, ok)
}

func TestDelimitedExtractor_WidthMismatch(t *testing.T) {
	t.Parallel()

	items, err := DelimitedExtractor{Delimiter: '\t', HasHeader: true}.Extract([]byte("A\tB\n1\t2\t3\n4\n"))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 2, items[0].(Row).Len(), "extra value dropped")
	assert.Equal(t, 1, items[1].(Row).Len(), "missing value absent")

	_, ok := items[1].Get("B")
	assert.False(t, ok)
}

func TestDelimitedExtractor_Empty(t *testing.T) {
	t.Parallel()

	items, err := DelimitedExtractor{Delimiter: '\t', HasHeader: true}.Extract([]byte("Key\tEnglish\n"))
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestDelimitedExtractor_HeaderLine(t *testing.T) {
	t.Parallel()

	e := DelimitedExtractor{Delimiter: '\t', HasHeader: true}
	assert.Equal(t, []string{"Key", "English"}, e.Header([]byte("\ufeff\n\"Key\"\tEnglish\nx\ty\n")))
	assert.Nil(t, e.Header([]byte("\n\n")))
}

func TestRow_Decode(t *testing.T) {
	t.Parallel()

	row := NewRow([]string{"Name", "Rank"}, map[string]string{"Name": "the", "Rank": "1"})

	var typed struct {
		Name string
		Rank int
	}
	require.NoError(t, row.Decode(&typed))
	assert.Equal(t, "the", typed.Name)
	assert.Equal(t, 1, typed.Rank)

	var m map[string]string
	require.NoError(t, row.Decode(&m))
	assert.Equal(t, map[string]string{"Name": "the", "Rank": "1"}, m)

	m["Name"] = "changed"
	v, _ := row.Get("Name")
	assert.Equal(t, "the", v)
}

func TestTrimQuotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{`"Bulbasaur"`, "Bulbasaur"},
		{`Bulbasaur`, "Bulbasaur"},
		{`""`, ""},
		{`"`, `"`},
		{`""quoted""`, `"quoted"`},
		{`"open`, `"open`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TrimQuotes(tt.in), "TrimQuotes(%q)", tt.in)
	}
}

func TestNewExtractor(t *testing.T) {
	t.Parallel()

	e, err := NewExtractor(JSON("gm.json", "itemTemplates"))
	require.NoError(t, err)
	assert.Equal(t, JSONExtractor{Root: "itemTemplates"}, e)

	e, err = NewExtractor(Delimited("moves.txt", 0, true))
	require.NoError(t, err)
	assert.Equal(t, DelimitedExtractor{Delimiter: '\t', HasHeader: true}, e)

	_, err = NewExtractor(Descriptor{Location: "x", Format: "xml"})
	assert.Error(t, err)
}
