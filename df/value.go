// Package df is the minimal dataframe collaborator consumed by the
// sqlbuilder and engine packages: typed cell values, column descriptors
// and a row-addressable frame. It deliberately implements no vectorized
// computation; a fuller columnar engine can replace it behind the same
// surface.
package df

import (
	"fmt"
	"strconv"
	"time"
)

// DType is the logical type tag of a cell value or a column.
type DType uint8

// Supported logical types.
const (
	TypeNull DType = iota
	TypeBool
	TypeU8
	TypeU16
	TypeU32
	TypeU64
	TypeI8
	TypeI16
	TypeI32
	TypeI64
	TypeF32
	TypeF64
	TypeString
	TypeDate
	TypeTime
	TypeDateTime
)

var dtypeNames = [...]string{
	TypeNull:     "null",
	TypeBool:     "bool",
	TypeU8:       "u8",
	TypeU16:      "u16",
	TypeU32:      "u32",
	TypeU64:      "u64",
	TypeI8:       "i8",
	TypeI16:      "i16",
	TypeI32:      "i32",
	TypeI64:      "i64",
	TypeF32:      "f32",
	TypeF64:      "f64",
	TypeString:   "string",
	TypeDate:     "date",
	TypeTime:     "time",
	TypeDateTime: "datetime",
}

// String returns the lower-case name of the type.
func (t DType) String() string {
	if int(t) < len(dtypeNames) {
		return dtypeNames[t]
	}
	return "unknown"
}

// Value is a closed sum over the supported cell types. Exactly one
// variant is active; the null variant carries no payload but is always
// representable regardless of column type.
type Value struct {
	dtype DType
	b     bool
	i     int64
	u     uint64
	f     float64
	s     string
	t     time.Time
}

// Null returns the null value.
func Null() Value { return Value{dtype: TypeNull} }

// Bool returns a bool value.
func Bool(v bool) Value { return Value{dtype: TypeBool, b: v} }

// U8 returns an 8-bit unsigned integer value.
func U8(v uint8) Value { return Value{dtype: TypeU8, u: uint64(v)} }

// U16 returns a 16-bit unsigned integer value.
func U16(v uint16) Value { return Value{dtype: TypeU16, u: uint64(v)} }

// U32 returns a 32-bit unsigned integer value.
func U32(v uint32) Value { return Value{dtype: TypeU32, u: uint64(v)} }

// U64 returns a 64-bit unsigned integer value.
func U64(v uint64) Value { return Value{dtype: TypeU64, u: v} }

// I8 returns an 8-bit signed integer value.
func I8(v int8) Value { return Value{dtype: TypeI8, i: int64(v)} }

// I16 returns a 16-bit signed integer value.
func I16(v int16) Value { return Value{dtype: TypeI16, i: int64(v)} }

// I32 returns a 32-bit signed integer value.
func I32(v int32) Value { return Value{dtype: TypeI32, i: int64(v)} }

// I64 returns a 64-bit signed integer value.
func I64(v int64) Value { return Value{dtype: TypeI64, i: v} }

// F32 returns a 32-bit float value.
func F32(v float32) Value { return Value{dtype: TypeF32, f: float64(v)} }

// F64 returns a 64-bit float value.
func F64(v float64) Value { return Value{dtype: TypeF64, f: v} }

// Str returns a string value.
func Str(v string) Value { return Value{dtype: TypeString, s: v} }

// Date returns a date value (time-of-day part ignored).
func Date(v time.Time) Value { return Value{dtype: TypeDate, t: v} }

// Time returns a time-of-day value (date part ignored).
func Time(v time.Time) Value { return Value{dtype: TypeTime, t: v} }

// DateTime returns a datetime value.
func DateTime(v time.Time) Value { return Value{dtype: TypeDateTime, t: v} }

// Type returns the active variant's type tag.
func (v Value) Type() DType { return v.dtype }

// IsNull reports whether the null variant is active.
func (v Value) IsNull() bool { return v.dtype == TypeNull }

// Bool returns the bool payload. Valid only when Type is TypeBool.
func (v Value) Bool() bool { return v.b }

// Int returns the signed integer payload widened to int64.
func (v Value) Int() int64 { return v.i }

// Uint returns the unsigned integer payload widened to uint64.
func (v Value) Uint() uint64 { return v.u }

// Float returns the float payload widened to float64.
func (v Value) Float() float64 { return v.f }

// Str returns the string payload.
func (v Value) Str() string { return v.s }

// TimeVal returns the temporal payload.
func (v Value) TimeVal() time.Time { return v.t }

// String renders the value for display and diagnostics.
func (v Value) String() string {
	switch v.dtype {
	case TypeNull:
		return "null"
	case TypeBool:
		return strconv.FormatBool(v.b)
	case TypeU8, TypeU16, TypeU32, TypeU64:
		return strconv.FormatUint(v.u, 10)
	case TypeI8, TypeI16, TypeI32, TypeI64:
		return strconv.FormatInt(v.i, 10)
	case TypeF32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case TypeF64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeString:
		return v.s
	case TypeDate:
		return v.t.Format("2006-01-02")
	case TypeTime:
		return v.t.Format("15:04:05")
	case TypeDateTime:
		return v.t.Format(time.RFC3339)
	default:
		return fmt.Sprintf("unknown(%d)", v.dtype)
	}
}
