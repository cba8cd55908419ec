package feature

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ValueType tags the primitive type a feature carries.
type ValueType uint8

const (
	// TypeUnknown is the zero value and never valid for a feature.
	TypeUnknown ValueType = iota
	TypeLong
	TypeDouble
	TypeText
	TypeBoolean
)

// String returns the wire tag used by catalogs and storage backends.
func (t ValueType) String() string {
	switch t {
	case TypeLong:
		return "long"
	case TypeDouble:
		return "double"
	case TypeText:
		return "text"
	case TypeBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Valid reports whether t is one of the four supported types.
func (t ValueType) Valid() bool {
	return t >= TypeLong && t <= TypeBoolean
}

// ParseValueType converts a wire tag into a ValueType.
// "string" is accepted as an alias of "text".
func ParseValueType(tag string) (ValueType, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "long":
		return TypeLong, nil
	case "double":
		return TypeDouble, nil
	case "text", "string":
		return TypeText, nil
	case "boolean":
		return TypeBoolean, nil
	default:
		return TypeUnknown, errors.Join(ErrInvalidValueType, fmt.Errorf("unknown value type %q", tag))
	}
}

// Value is a config value wrapping exactly one primitive.
// The set of implementations is closed: LongValue, DoubleValue, TextValue and BooleanValue.
type Value interface {
	Type() ValueType
	String() string
	sealed()
}

type (
	LongValue    int64
	DoubleValue  float64
	TextValue    string
	BooleanValue bool
)

func (LongValue) Type() ValueType    { return TypeLong }
func (DoubleValue) Type() ValueType  { return TypeDouble }
func (TextValue) Type() ValueType    { return TypeText }
func (BooleanValue) Type() ValueType { return TypeBoolean }

func (v LongValue) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v DoubleValue) String() string  { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v TextValue) String() string    { return string(v) }
func (v BooleanValue) String() string { return strconv.FormatBool(bool(v)) }

func (LongValue) sealed()    {}
func (DoubleValue) sealed()  {}
func (TextValue) sealed()    {}
func (BooleanValue) sealed() {}

// ParseValue parses raw according to t.
// Booleans are strict: only "true" and "false" are accepted.
func ParseValue(t ValueType, raw string) (Value, error) {
	switch t {
	case TypeLong:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, errors.Join(ErrInvalidValue, fmt.Errorf("%q is not a valid long", raw))
		}
		return LongValue(n), nil
	case TypeDouble:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, errors.Join(ErrInvalidValue, fmt.Errorf("%q is not a valid double", raw))
		}
		return DoubleValue(f), nil
	case TypeText:
		return TextValue(raw), nil
	case TypeBoolean:
		switch raw {
		case "true":
			return BooleanValue(true), nil
		case "false":
			return BooleanValue(false), nil
		}
		return nil, errors.Join(ErrInvalidValue, fmt.Errorf("%q is not a valid boolean", raw))
	default:
		return nil, errors.Join(ErrInvalidValueType, fmt.Errorf("cannot parse value of type %s", t))
	}
}

// MarshalText encodes the type as its wire tag.
func (t ValueType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.Join(ErrInvalidValueType, fmt.Errorf("cannot encode value type %d", t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a wire tag.
func (t *ValueType) UnmarshalText(text []byte) error {
	parsed, err := ParseValueType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
