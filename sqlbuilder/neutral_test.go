package sqlbuilder

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jacobbishopxy/fabrix"
	"github.com/Jacobbishopxy/fabrix/df"
)

// Every supported variant must round-trip unchanged through the
// neutral representation.
func TestNeutralRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value df.Value
		dtype df.DType
	}{
		{"bool", df.Bool(true), df.TypeBool},
		{"u8", df.U8(8), df.TypeU8},
		{"u16", df.U16(16), df.TypeU16},
		{"u32", df.U32(32), df.TypeU32},
		{"u64", df.U64(64), df.TypeU64},
		{"i8", df.I8(-8), df.TypeI8},
		{"i16", df.I16(-16), df.TypeI16},
		{"i32", df.I32(-32), df.TypeI32},
		{"i64", df.I64(-64), df.TypeI64},
		{"f32", df.F32(1.5), df.TypeF32},
		{"f64", df.F64(2.5), df.TypeF64},
		{"string", df.Str("Jacob"), df.TypeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, nullable := range []bool{true, false} {
				n, err := ToNeutral(tt.value, tt.dtype, nullable)
				require.NoError(t, err)
				assert.True(t, n.Valid())

				back, err := FromNeutral(n, nullable)
				require.NoError(t, err)
				assert.Equal(t, tt.value, back)
			}
		})
	}
}

func TestNeutralNullDiscipline(t *testing.T) {
	t.Run("null_against_nullable_succeeds", func(t *testing.T) {
		n, err := ToNeutral(df.Null(), df.TypeI64, true)
		require.NoError(t, err)
		assert.False(t, n.Valid())
		assert.Equal(t, NeutralBigInt, n.Kind())
		assert.Nil(t, n.ToDriver())

		back, err := FromNeutral(n, true)
		require.NoError(t, err)
		assert.True(t, back.IsNull())
	})

	t.Run("null_against_non_nullable_fails", func(t *testing.T) {
		_, err := ToNeutral(df.Null(), df.TypeI64, false)
		require.Error(t, err)
		assert.True(t, fabrix.IsTypeBridge(err))
	})

	t.Run("typed_null_selected_by_column_type", func(t *testing.T) {
		kinds := map[df.DType]NeutralKind{
			df.TypeBool:   NeutralBool,
			df.TypeU8:     NeutralTinyUnsigned,
			df.TypeU16:    NeutralSmallUnsigned,
			df.TypeU32:    NeutralUnsigned,
			df.TypeU64:    NeutralBigUnsigned,
			df.TypeI8:     NeutralTinyInt,
			df.TypeI16:    NeutralSmallInt,
			df.TypeI32:    NeutralInt,
			df.TypeI64:    NeutralBigInt,
			df.TypeF32:    NeutralFloat,
			df.TypeF64:    NeutralDouble,
			df.TypeString: NeutralString,
		}
		for dtype, kind := range kinds {
			n, err := ToNeutral(df.Null(), dtype, true)
			require.NoError(t, err, dtype.String())
			assert.Equal(t, kind, n.Kind(), dtype.String())
		}
	})

	t.Run("null_payload_in_non_nullable_column", func(t *testing.T) {
		_, err := FromNeutral(NullOf(NeutralBigInt), false)
		require.Error(t, err)
		assert.True(t, fabrix.IsUnsupported(err))
	})

	t.Run("string_null_is_lenient", func(t *testing.T) {
		// String and UUID nulls decode to the null cell regardless of
		// the declared nullability.
		for _, k := range []NeutralKind{NeutralString, NeutralUUID} {
			back, err := FromNeutral(NullOf(k), false)
			require.NoError(t, err)
			assert.True(t, back.IsNull())
		}
	})
}

func TestNeutralTemporalUnsupported(t *testing.T) {
	now := time.Now()
	for _, v := range []df.Value{df.Date(now), df.Time(now), df.DateTime(now)} {
		_, err := ToNeutral(v, v.Type(), true)
		require.Error(t, err, v.Type().String())
		assert.True(t, fabrix.IsUnsupported(err))
	}

	// The typed-null table stops at the same boundary.
	_, err := ToNeutral(df.Null(), df.TypeDateTime, true)
	require.Error(t, err)
	assert.True(t, fabrix.IsUnsupported(err))
}

func TestNeutralUUIDRoundTrip(t *testing.T) {
	id := uuid.MustParse("a2b6b4e6-5d2d-48cc-aaa3-16fa3a4c9e52")
	n := NeutralUUIDValue(id)
	assert.Equal(t, id.String(), n.ToDriver())

	// UUID round-trips to a string cell; the binary type is discarded.
	back, err := FromNeutral(n, false)
	require.NoError(t, err)
	assert.Equal(t, df.Str(id.String()), back)
}

func TestNeutralToDriver(t *testing.T) {
	tests := []struct {
		name     string
		value    df.Value
		expected any
	}{
		{"bool", df.Bool(true), true},
		{"signed", df.I32(-7), int64(-7)},
		{"unsigned_fits", df.U32(7), int64(7)},
		{"float", df.F64(2.5), 2.5},
		{"string", df.Str("x"), "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ToNeutral(tt.value, tt.value.Type(), false)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n.ToDriver())
		})
	}

	t.Run("big_unsigned_overflow_to_text", func(t *testing.T) {
		n, err := ToNeutral(df.U64(1<<63+5), df.TypeU64, false)
		require.NoError(t, err)
		assert.Equal(t, "9223372036854775813", n.ToDriver())
	})
}
