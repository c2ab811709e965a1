package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Jacobbishopxy/fabrix/df"
)

// Frame snapshots are the wire form of a dataframe in the fetch cache.
// Cells carry their type tag so nulls round-trip without consulting the
// column descriptor.

type cellSnapshot struct {
	Type  uint8     `msgpack:"t"`
	Bool  bool      `msgpack:"b,omitempty"`
	Int   int64     `msgpack:"i,omitempty"`
	Uint  uint64    `msgpack:"u,omitempty"`
	Float float64   `msgpack:"f,omitempty"`
	Str   string    `msgpack:"s,omitempty"`
	Time  time.Time `msgpack:"m,omitempty"`
}

type columnSnapshot struct {
	Name     string `msgpack:"n"`
	Type     uint8  `msgpack:"t"`
	Nullable bool   `msgpack:"null"`
}

type frameSnapshot struct {
	Columns []columnSnapshot `msgpack:"cols"`
	Rows    [][]cellSnapshot `msgpack:"rows"`
}

func snapshotCell(v df.Value) cellSnapshot {
	c := cellSnapshot{Type: uint8(v.Type())}
	switch v.Type() {
	case df.TypeBool:
		c.Bool = v.Bool()
	case df.TypeU8, df.TypeU16, df.TypeU32, df.TypeU64:
		c.Uint = v.Uint()
	case df.TypeI8, df.TypeI16, df.TypeI32, df.TypeI64:
		c.Int = v.Int()
	case df.TypeF32, df.TypeF64:
		c.Float = v.Float()
	case df.TypeString:
		c.Str = v.Str()
	case df.TypeDate, df.TypeTime, df.TypeDateTime:
		c.Time = v.TimeVal()
	}
	return c
}

func restoreCell(c cellSnapshot) (df.Value, error) {
	switch df.DType(c.Type) {
	case df.TypeNull:
		return df.Null(), nil
	case df.TypeBool:
		return df.Bool(c.Bool), nil
	case df.TypeU8:
		return df.U8(uint8(c.Uint)), nil
	case df.TypeU16:
		return df.U16(uint16(c.Uint)), nil
	case df.TypeU32:
		return df.U32(uint32(c.Uint)), nil
	case df.TypeU64:
		return df.U64(c.Uint), nil
	case df.TypeI8:
		return df.I8(int8(c.Int)), nil
	case df.TypeI16:
		return df.I16(int16(c.Int)), nil
	case df.TypeI32:
		return df.I32(int32(c.Int)), nil
	case df.TypeI64:
		return df.I64(c.Int), nil
	case df.TypeF32:
		return df.F32(float32(c.Float)), nil
	case df.TypeF64:
		return df.F64(c.Float), nil
	case df.TypeString:
		return df.Str(c.Str), nil
	case df.TypeDate:
		return df.Date(c.Time), nil
	case df.TypeTime:
		return df.Time(c.Time), nil
	case df.TypeDateTime:
		return df.DateTime(c.Time), nil
	default:
		return df.Value{}, fmt.Errorf("engine: unknown cell type tag %d in cached frame", c.Type)
	}
}

// EncodeFrame serializes a dataframe into its msgpack snapshot form.
func EncodeFrame(d *df.DataFrame) ([]byte, error) {
	snap := frameSnapshot{
		Columns: make([]columnSnapshot, 0, d.Width()),
		Rows:    make([][]cellSnapshot, 0, d.Height()),
	}
	for _, c := range d.Columns() {
		snap.Columns = append(snap.Columns, columnSnapshot{
			Name:     c.Name,
			Type:     uint8(c.Type),
			Nullable: c.Nullable,
		})
	}
	for i := 0; i < d.Height(); i++ {
		row := d.Row(i)
		cells := make([]cellSnapshot, len(row))
		for j, v := range row {
			cells[j] = snapshotCell(v)
		}
		snap.Rows = append(snap.Rows, cells)
	}
	return msgpack.Marshal(snap)
}

// DecodeFrame deserializes a msgpack snapshot back into a dataframe.
func DecodeFrame(data []byte) (*df.DataFrame, error) {
	var snap frameSnapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("engine: decoding cached frame: %w", err)
	}
	cols := make([]df.Column, len(snap.Columns))
	for i, c := range snap.Columns {
		cols[i] = df.Column{Name: c.Name, Type: df.DType(c.Type), Nullable: c.Nullable}
	}
	d, err := df.NewDataFrame(cols...)
	if err != nil {
		return nil, err
	}
	for _, cells := range snap.Rows {
		row := make([]df.Value, len(cells))
		for j, c := range cells {
			row[j], err = restoreCell(c)
			if err != nil {
				return nil, err
			}
		}
		if err := d.AppendRow(row...); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// CacheKey derives a stable key for a fetch: dialect plus statement
// text, hashed so keys stay bounded regardless of query length.
func CacheKey(dialect, query string) string {
	sum := sha256.Sum256([]byte(dialect + "\x00" + query))
	return hex.EncodeToString(sum[:])
}

// Cache stores encoded frame snapshots keyed by CacheKey. Implementations
// must be safe for concurrent use.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, data []byte)
}

// MemoryCache is an in-process Cache backed by a map.
type MemoryCache struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: make(map[string][]byte)}
}

// Get returns the cached snapshot for the key.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.m[key]
	return data, ok
}

// Set stores a snapshot under the key, replacing any previous entry.
func (c *MemoryCache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = data
}

var _ Cache = (*MemoryCache)(nil)

// CachedFetch runs RawFetch through the cache: a hit decodes the stored
// snapshot without touching the database; a miss fetches, stores and
// returns the frame. Failures to encode are logged and the fetch result
// is still returned.
func (l *Loader) CachedFetch(ctx context.Context, cache Cache, query string) (*df.DataFrame, error) {
	key := CacheKey(l.info.Dialect, query)
	if data, ok := cache.Get(key); ok {
		d, err := DecodeFrame(data)
		if err == nil {
			return d, nil
		}
		l.log.Warn("dropping corrupt cache entry", "key", key, "error", err)
	}
	d, err := l.RawFetch(ctx, query)
	if err != nil {
		return nil, err
	}
	data, err := EncodeFrame(d)
	if err != nil {
		l.log.Warn("caching fetch result failed", "key", key, "error", err)
		return d, nil
	}
	cache.Set(key, data)
	return d, nil
}
