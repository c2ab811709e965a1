package engine

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jacobbishopxy/fabrix/df"
)

func TestFrameCodecRoundTrip(t *testing.T) {
	d := df.MustNewDataFrame(
		df.NewColumn("name", df.TypeString),
		df.NewNullableColumn("age", df.TypeI64),
		df.NewNullableColumn("score", df.TypeF64),
		df.NewNullableColumn("active", df.TypeBool),
	)
	require.NoError(t, d.AppendRow(df.Str("Jacob"), df.I64(30), df.F64(9.5), df.Bool(true)))
	require.NoError(t, d.AppendRow(df.Str("Sam"), df.Null(), df.Null(), df.Null()))

	data, err := EncodeFrame(d)
	require.NoError(t, err)

	back, err := DecodeFrame(data)
	require.NoError(t, err)
	assert.Equal(t, d.Columns(), back.Columns())
	require.Equal(t, d.Height(), back.Height())
	for i := 0; i < d.Height(); i++ {
		assert.Equal(t, d.Row(i), back.Row(i))
	}
}

func TestFrameCodecTemporal(t *testing.T) {
	ts := time.Date(2020, 5, 1, 12, 30, 0, 0, time.UTC)
	d := df.MustNewDataFrame(df.NewColumn("at", df.TypeDateTime))
	require.NoError(t, d.AppendRow(df.DateTime(ts)))

	data, err := EncodeFrame(d)
	require.NoError(t, err)
	back, err := DecodeFrame(data)
	require.NoError(t, err)

	// Compare instants; the decoded location may differ.
	assert.True(t, back.At(0, 0).TimeVal().Equal(ts))
}

func TestFrameCodecRejectsGarbage(t *testing.T) {
	_, err := DecodeFrame([]byte("not msgpack"))
	assert.Error(t, err)
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Set("k", []byte("v1"))
	data, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), data)

	c.Set("k", []byte("v2"))
	data, _ = c.Get("k")
	assert.Equal(t, []byte("v2"), data)
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("postgres", "SELECT 1")
	assert.Equal(t, a, CacheKey("postgres", "SELECT 1"))
	assert.NotEqual(t, a, CacheKey("mysql", "SELECT 1"))
	assert.NotEqual(t, a, CacheKey("postgres", "SELECT 2"))
}

func TestCachedFetch(t *testing.T) {
	l, mock := mockLoader(t, "sqlite")
	// One round-trip only; the second fetch must be served from cache.
	mock.ExpectQuery("SELECT * FROM people").WillReturnRows(
		sqlmock.NewRows([]string{"name"}).AddRow("Jacob"),
	)

	cache := NewMemoryCache()
	first, err := l.CachedFetch(context.Background(), cache, "SELECT * FROM people")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Height())

	second, err := l.CachedFetch(context.Background(), cache, "SELECT * FROM people")
	require.NoError(t, err)
	assert.Equal(t, first.Columns(), second.Columns())
	assert.Equal(t, first.Row(0), second.Row(0))

	assert.NoError(t, mock.ExpectationsWereMet())
}
