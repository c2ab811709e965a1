package sqlbuilder

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Jacobbishopxy/fabrix"
	"github.com/Jacobbishopxy/fabrix/df"
)

// NeutralKind is the type tag of a dialect-neutral SQL value.
type NeutralKind uint8

// Neutral value kinds, one per supported wire type.
const (
	NeutralBool NeutralKind = iota
	NeutralTinyInt
	NeutralSmallInt
	NeutralInt
	NeutralBigInt
	NeutralTinyUnsigned
	NeutralSmallUnsigned
	NeutralUnsigned
	NeutralBigUnsigned
	NeutralFloat
	NeutralDouble
	NeutralString
	NeutralUUID
	NeutralDate
	NeutralTime
	NeutralDateTime
)

var neutralKindNames = [...]string{
	NeutralBool:          "bool",
	NeutralTinyInt:       "tiny int",
	NeutralSmallInt:      "small int",
	NeutralInt:           "int",
	NeutralBigInt:        "big int",
	NeutralTinyUnsigned:  "tiny unsigned",
	NeutralSmallUnsigned: "small unsigned",
	NeutralUnsigned:      "unsigned",
	NeutralBigUnsigned:   "big unsigned",
	NeutralFloat:         "float",
	NeutralDouble:        "double",
	NeutralString:        "string",
	NeutralUUID:          "uuid",
	NeutralDate:          "date",
	NeutralTime:          "time",
	NeutralDateTime:      "datetime",
}

// String returns the kind name.
func (k NeutralKind) String() string {
	if int(k) < len(neutralKindNames) {
		return neutralKindNames[k]
	}
	return "unknown"
}

// Neutral is the dialect-neutral typed value sitting between dataframe
// cells and driver-native arguments. A Neutral always knows its kind,
// even when it carries no payload: the "null of type T" placeholder is
// a kind with valid=false.
type Neutral struct {
	kind  NeutralKind
	valid bool
	b     bool
	i     int64
	u     uint64
	f     float64
	s     string
	uid   uuid.UUID
	t     time.Time
}

// Kind returns the value's kind tag.
func (n Neutral) Kind() NeutralKind { return n.kind }

// Valid reports whether the value carries a payload (false means the
// typed null placeholder).
func (n Neutral) Valid() bool { return n.valid }

// NullOf returns the typed null placeholder of the given kind.
func NullOf(k NeutralKind) Neutral { return Neutral{kind: k} }

// NeutralUUIDValue returns a neutral UUID value. Not produced by
// ToNeutral; it enters the system from drivers that report UUID columns.
func NeutralUUIDValue(u uuid.UUID) Neutral {
	return Neutral{kind: NeutralUUID, valid: true, uid: u}
}

// ToDriver converts the neutral value to the argument type the
// database/sql driver layer accepts. Typed nulls become nil.
func (n Neutral) ToDriver() any {
	if !n.valid {
		return nil
	}
	switch n.kind {
	case NeutralBool:
		return n.b
	case NeutralTinyInt, NeutralSmallInt, NeutralInt, NeutralBigInt:
		return n.i
	case NeutralTinyUnsigned, NeutralSmallUnsigned, NeutralUnsigned:
		return int64(n.u)
	case NeutralBigUnsigned:
		// lib/pq refuses uint64; fall back to the decimal text when the
		// value does not fit in int64.
		if n.u <= math.MaxInt64 {
			return int64(n.u)
		}
		return strconv.FormatUint(n.u, 10)
	case NeutralFloat, NeutralDouble:
		return n.f
	case NeutralString:
		return n.s
	case NeutralUUID:
		return n.uid.String()
	case NeutralDate, NeutralTime, NeutralDateTime:
		return n.t
	default:
		return nil
	}
}

// nullNeutralOf selects the typed null placeholder for a declared
// column type. A bare null cell carries no type information, so the
// declared type decides the placeholder.
func nullNeutralOf(dtype df.DType) (Neutral, error) {
	switch dtype {
	case df.TypeBool:
		return NullOf(NeutralBool), nil
	case df.TypeU8:
		return NullOf(NeutralTinyUnsigned), nil
	case df.TypeU16:
		return NullOf(NeutralSmallUnsigned), nil
	case df.TypeU32:
		return NullOf(NeutralUnsigned), nil
	case df.TypeU64:
		return NullOf(NeutralBigUnsigned), nil
	case df.TypeI8:
		return NullOf(NeutralTinyInt), nil
	case df.TypeI16:
		return NullOf(NeutralSmallInt), nil
	case df.TypeI32:
		return NullOf(NeutralInt), nil
	case df.TypeI64:
		return NullOf(NeutralBigInt), nil
	case df.TypeF32:
		return NullOf(NeutralFloat), nil
	case df.TypeF64:
		return NullOf(NeutralDouble), nil
	case df.TypeString:
		return NullOf(NeutralString), nil
	default:
		return Neutral{}, fabrix.NewUnsupportedError("null placeholder for " + dtype.String())
	}
}

// ToNeutral bridges a dataframe cell into its neutral representation.
//
// Every concrete variant maps to exactly one neutral kind of matching
// width and signedness. A null cell against a nullable column becomes
// the typed null selected by the declared column type; against a
// non-nullable column it is a type-bridge error. Date, time and
// datetime bridging is explicitly not implemented and fails loudly.
func ToNeutral(v df.Value, dtype df.DType, nullable bool) (Neutral, error) {
	switch v.Type() {
	case df.TypeBool:
		return Neutral{kind: NeutralBool, valid: true, b: v.Bool()}, nil
	case df.TypeU8:
		return Neutral{kind: NeutralTinyUnsigned, valid: true, u: v.Uint()}, nil
	case df.TypeU16:
		return Neutral{kind: NeutralSmallUnsigned, valid: true, u: v.Uint()}, nil
	case df.TypeU32:
		return Neutral{kind: NeutralUnsigned, valid: true, u: v.Uint()}, nil
	case df.TypeU64:
		return Neutral{kind: NeutralBigUnsigned, valid: true, u: v.Uint()}, nil
	case df.TypeI8:
		return Neutral{kind: NeutralTinyInt, valid: true, i: v.Int()}, nil
	case df.TypeI16:
		return Neutral{kind: NeutralSmallInt, valid: true, i: v.Int()}, nil
	case df.TypeI32:
		return Neutral{kind: NeutralInt, valid: true, i: v.Int()}, nil
	case df.TypeI64:
		return Neutral{kind: NeutralBigInt, valid: true, i: v.Int()}, nil
	case df.TypeF32:
		return Neutral{kind: NeutralFloat, valid: true, f: v.Float()}, nil
	case df.TypeF64:
		return Neutral{kind: NeutralDouble, valid: true, f: v.Float()}, nil
	case df.TypeString:
		return Neutral{kind: NeutralString, valid: true, s: v.Str()}, nil
	case df.TypeDate, df.TypeTime, df.TypeDateTime:
		return Neutral{}, fabrix.NewUnsupportedError("bridging " + v.Type().String() + " values")
	case df.TypeNull:
		if nullable {
			return nullNeutralOf(dtype)
		}
		return Neutral{}, fabrix.NewTypeBridgeError(v, dtype.String())
	default:
		return Neutral{}, fabrix.NewUnsupportedError("bridging " + v.Type().String() + " values")
	}
}

// FromNeutral bridges a neutral value back into a dataframe cell.
//
// A typed null converts to the null cell when the column is nullable;
// when it is not, the round-tripped row contradicts the declared schema
// and an unsupported-type error is surfaced. String and UUID nulls are
// lenient and always produce the null cell. A UUID payload round-trips
// to a string cell via display formatting; the binary UUID type is
// deliberately discarded.
func FromNeutral(n Neutral, nullable bool) (df.Value, error) {
	if !n.valid {
		switch n.kind {
		case NeutralString, NeutralUUID:
			return df.Null(), nil
		}
		if nullable {
			return df.Null(), nil
		}
		return df.Value{}, fabrix.NewUnsupportedError("null " + n.kind.String() + " in a non-nullable column")
	}
	switch n.kind {
	case NeutralBool:
		return df.Bool(n.b), nil
	case NeutralTinyInt:
		return df.I8(int8(n.i)), nil
	case NeutralSmallInt:
		return df.I16(int16(n.i)), nil
	case NeutralInt:
		return df.I32(int32(n.i)), nil
	case NeutralBigInt:
		return df.I64(n.i), nil
	case NeutralTinyUnsigned:
		return df.U8(uint8(n.u)), nil
	case NeutralSmallUnsigned:
		return df.U16(uint16(n.u)), nil
	case NeutralUnsigned:
		return df.U32(uint32(n.u)), nil
	case NeutralBigUnsigned:
		return df.U64(n.u), nil
	case NeutralFloat:
		return df.F32(float32(n.f)), nil
	case NeutralDouble:
		return df.F64(n.f), nil
	case NeutralString:
		return df.Str(n.s), nil
	case NeutralUUID:
		return df.Str(n.uid.String()), nil
	default:
		return df.Value{}, fabrix.NewUnsupportedError("bridging " + n.kind.String() + " values")
	}
}

// bridgeCell converts one frame cell to a driver argument, honoring the
// column's declared type and nullability.
func bridgeCell(v df.Value, col df.Column) (any, error) {
	n, err := ToNeutral(v, col.Type, col.Nullable)
	if err != nil {
		return nil, err
	}
	return n.ToDriver(), nil
}

// bridgeLiteral converts a filter literal to a driver argument, typed
// by the value itself.
func bridgeLiteral(v df.Value) (any, error) {
	n, err := ToNeutral(v, v.Type(), false)
	if err != nil {
		return nil, err
	}
	return n.ToDriver(), nil
}
