package locale

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/learnsets/internal/domain"
	"github.com/heartmarshall/learnsets/internal/source"
)

type fetcherMock struct {
	FetchFunc func(ctx context.Context, location string) ([]byte, error)
	calls     atomic.Int32
}

func (m *fetcherMock) Fetch(ctx context.Context, location string) ([]byte, error) {
	m.calls.Add(1)
	return m.FetchFunc(ctx, location)
}

func staticFetcher(body string) *fetcherMock {
	return &fetcherMock{FetchFunc: func(context.Context, string) ([]byte, error) {
		return []byte(body), nil
	}}
}

func newTestDictionary(t *testing.T, body, language string, opts ...Option) *Dictionary {
	t.Helper()
	opts = append(opts, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	d, err := New("greetings", source.Delimited("greetings.txt", '\t', true), language, staticFetcher(body), opts...)
	require.NoError(t, err)
	return d
}

func TestDictionary_Lookup(t *testing.T) {
	t.Parallel()

	d := newTestDictionary(t, "Key\tEnglish\tFrench\ngreeting\tHello\tBonjour\n", "French")
	require.NoError(t, d.Load(context.Background()))

	v, ok := d.Lookup("greeting")
	assert.True(t, ok)
	assert.Equal(t, "Bonjour", v)

	v, ok = d.Lookup("missing")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestDictionary_DefaultLanguage(t *testing.T) {
	t.Parallel()

	d := newTestDictionary(t, "Key\tEnglish\tFrench\ngreeting\tHello\tBonjour\n", "")
	require.NoError(t, d.Load(context.Background()))

	assert.Equal(t, "English", d.Language())
	v, _ := d.Lookup("greeting")
	assert.Equal(t, "Hello", v)
	assert.Equal(t, []string{"English", "French"}, d.Languages())
}

func TestDictionary_QuotedValues(t *testing.T) {
	t.Parallel()

	body := "\"Key\"\t\"English\"\r\n\"pokemon_name_0001\"\t\"Bulbasaur\"\r\n"
	d := newTestDictionary(t, body, "English")
	require.NoError(t, d.Load(context.Background()))

	v, ok := d.Lookup("pokemon_name_0001")
	assert.True(t, ok)
	assert.Equal(t, "Bulbasaur", v)
}

func TestDictionary_ShortRowsSkipped(t *testing.T) {
	t.Parallel()

	body := "Key\tEnglish\tFrench\na\tA\tAa\nb\tB\n"
	d := newTestDictionary(t, body, "French")
	require.NoError(t, d.Load(context.Background()))

	assert.Equal(t, 1, d.Len())
	_, ok := d.Lookup("b")
	assert.False(t, ok)
}

func TestDictionary_LookupBeforeLoad(t *testing.T) {
	t.Parallel()

	d := newTestDictionary(t, "Key\tEnglish\n", "English")
	assert.False(t, d.IsLoaded())

	_, ok := d.Lookup("anything")
	assert.False(t, ok)
}

func TestDictionary_UnknownLanguage(t *testing.T) {
	t.Parallel()

	d := newTestDictionary(t, "Key\tEnglish\nk\tv\n", "Klingon")

	err := d.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownLanguage)
	assert.ErrorIs(t, err, domain.ErrLoad)
	assert.False(t, d.IsLoaded())
	assert.Equal(t, 0, d.Len())
}

func TestDictionary_EmptySource(t *testing.T) {
	t.Parallel()

	d := newTestDictionary(t, "\n\n", "English")
	assert.ErrorIs(t, d.Load(context.Background()), domain.ErrLoad)
}

func TestDictionary_FetchError(t *testing.T) {
	t.Parallel()

	f := &fetcherMock{FetchFunc: func(context.Context, string) ([]byte, error) {
		return nil, errors.New("boom")
	}}
	d, err := New("greetings", source.Delimited("greetings.txt", 0, true), "English", f)
	require.NoError(t, err)

	err = d.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrLoad)
	assert.False(t, d.IsLoaded())
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestDictionary_LoadOnceAndNotify(t *testing.T) {
	t.Parallel()

	var notified []string
	d := newTestDictionary(t, "Key\tEnglish\nk\tv\n", "English",
		OnLoaded(func(name string) { notified = append(notified, name) }))

	require.NoError(t, d.Load(context.Background()))
	require.NoError(t, <-d.Start(context.Background()))

	assert.Equal(t, []string{"greetings"}, notified)
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New("d", source.JSON("x.json", ""), "English", staticFetcher(""))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = New("d", source.Delimited("", '\t', true), "English", staticFetcher(""))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = New("d", source.Delimited("x.txt", '\t', false), "English", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
