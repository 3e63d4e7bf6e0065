package expr

import (
	"math"
	"strconv"
	"strings"
)

// equalityEpsilon bounds numeric == comparison. State values round-trip
// through decimal strings, so exact float comparison would misfire.
const equalityEpsilon = 1e-6

// Type discriminates Value variants.
type Type int

const (
	// TypeNull is the absent value. Failed coalescing and the literal
	// null produce it.
	TypeNull Type = iota
	// TypeBool is a boolean.
	TypeBool
	// TypeNumber is a float64.
	TypeNumber
	// TypeString is a string.
	TypeString
)

// Value is the result of evaluating an expression or resolving an
// identifier. The zero Value is Null.
type Value struct {
	typ Type
	num float64
	b   bool
	str string
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{typ: TypeBool, b: b} }

// Number wraps a float64.
func Number(f float64) Value { return Value{typ: TypeNumber, num: f} }

// String wraps a string.
func String(s string) Value { return Value{typ: TypeString, str: s} }

// Type returns the variant tag.
func (v Value) Type() Type { return v.typ }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.typ == TypeNull }

// AsNumber coerces v to a number: bools become 0/1, strings parse as
// decimal (unparseable or empty strings become 0), null becomes 0.
func (v Value) AsNumber() float64 {
	switch v.typ {
	case TypeNumber:
		return v.num
	case TypeBool:
		if v.b {
			return 1
		}
		return 0
	case TypeString:
		if v.str == "" {
			return 0
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// AsBool coerces v to truthiness: non-zero numbers and non-empty
// strings are true, null is false.
func (v Value) AsBool() bool {
	switch v.typ {
	case TypeBool:
		return v.b
	case TypeNumber:
		return math.Abs(v.num) > 1e-9
	case TypeString:
		return v.str != ""
	default:
		return false
	}
}

// AsString renders v as display text: numbers print with up to three
// decimals and trailing zeros trimmed, bools as "true"/"false", null
// as "".
func (v Value) AsString() string {
	switch v.typ {
	case TypeString:
		return v.str
	case TypeNumber:
		return formatNumber(v.num)
	case TypeBool:
		if v.b {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Equal implements the == operator: string comparison wins if either
// side is a string, then bool comparison if either side is a bool,
// otherwise numeric comparison within equalityEpsilon.
func (v Value) Equal(o Value) bool {
	if v.typ == TypeString || o.typ == TypeString {
		return v.AsString() == o.AsString()
	}
	if v.typ == TypeBool || o.typ == TypeBool {
		return v.AsBool() == o.AsBool()
	}
	return math.Abs(v.AsNumber()-o.AsNumber()) < equalityEpsilon
}

func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

// Resolver answers identifier lookups during evaluation. Returning
// ok=false makes the identifier evaluate to the empty string.
type Resolver interface {
	Resolve(name string) (Value, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(name string) (Value, bool)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(name string) (Value, bool) { return f(name) }
