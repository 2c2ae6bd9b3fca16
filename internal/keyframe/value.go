package keyframe

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Kind discriminates the concrete type stored in a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindFloat
	KindInt
	KindDecimal
	KindString
	KindEnum
	KindBool
)

var kindNames = map[Kind]string{
	KindNull:    "null",
	KindFloat:   "float",
	KindInt:     "int",
	KindDecimal: "decimal",
	KindString:  "string",
	KindEnum:    "enum",
	KindBool:    "bool",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind maps a discriminator name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for kind, candidate := range kindNames {
		if candidate == name {
			return kind, nil
		}
	}
	return KindNull, fmt.Errorf("unknown value type %q", name)
}

// Numeric reports whether values of this kind blend linearly.
func (k Kind) Numeric() bool {
	return k == KindFloat || k == KindInt || k == KindDecimal
}

// Value is an animatable parameter value. The zero Value is null.
type Value struct {
	kind Kind
	f    float64
	i    int64
	d    decimal.Decimal
	s    string
}

// Null returns the null value.
func Null() Value { return Value{} }

// Float wraps a floating point value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Int wraps an integer value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Decimal wraps a fixed-point decimal value.
func Decimal(v decimal.Decimal) Value { return Value{kind: KindDecimal, d: v} }

// String wraps an opaque string value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Enum wraps an enumeration index.
func Enum(index int) Value { return Value{kind: KindEnum, i: int64(index)} }

// Bool wraps a boolean value.
func Bool(v bool) Value {
	if v {
		return Value{kind: KindBool, i: 1}
	}
	return Value{kind: KindBool}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the value as float64. Integers and decimals convert; other
// kinds report false.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	case KindDecimal:
		return v.d.InexactFloat64(), true
	default:
		return 0, false
	}
}

// Int returns the integer payload of int and enum values.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case KindInt, KindEnum:
		return v.i, true
	default:
		return 0, false
	}
}

// Decimal returns the decimal payload.
func (v Value) Decimal() (decimal.Decimal, bool) {
	if v.kind != KindDecimal {
		return decimal.Zero, false
	}
	return v.d, true
}

// Str returns the string payload.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Bool returns the boolean payload.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.i != 0, true
}

// Equal compares kind and payload. Decimals compare numerically.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindFloat:
		return v.f == other.f
	case KindInt, KindEnum, KindBool:
		return v.i == other.i
	case KindDecimal:
		return v.d.Equal(other.d)
	case KindString:
		return v.s == other.s
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindDecimal:
		return v.d.String()
	case KindString:
		return v.s
	case KindEnum:
		return "#" + strconv.FormatInt(v.i, 10)
	case KindBool:
		return strconv.FormatBool(v.i != 0)
	}
	return ""
}

// Parse builds a Value of the given kind from its textual form, the inverse
// of String for every kind except null.
func Parse(kind Kind, raw string) (Value, error) {
	switch kind {
	case KindNull:
		return Null(), nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse float %q: %w", raw, err)
		}
		return Float(f), nil
	case KindInt:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse int %q: %w", raw, err)
		}
		return Int(i), nil
	case KindDecimal:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return Value{}, fmt.Errorf("parse decimal %q: %w", raw, err)
		}
		return Decimal(d), nil
	case KindString:
		return String(raw), nil
	case KindEnum:
		trimmed := raw
		if len(trimmed) > 0 && trimmed[0] == '#' {
			trimmed = trimmed[1:]
		}
		i, err := strconv.Atoi(trimmed)
		if err != nil {
			return Value{}, fmt.Errorf("parse enum %q: %w", raw, err)
		}
		return Enum(i), nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Value{}, fmt.Errorf("parse bool %q: %w", raw, err)
		}
		return Bool(b), nil
	}
	return Value{}, fmt.Errorf("unsupported value type %s", kind)
}
