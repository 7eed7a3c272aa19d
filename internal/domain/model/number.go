package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrNotNumeric is returned by Number.Value for placeholders such as "N/A".
var ErrNotNumeric = errors.New("value is not numeric")

// NumberKind tells how a numeric field appeared in the source document.
type NumberKind uint8

const (
	// NumberAbsent covers both a missing key and an explicit null.
	NumberAbsent NumberKind = iota
	// NumberValid is a JSON number, a numeric string or a boolean.
	NumberValid
	// NumberInvalid is any other value, e.g. "N/A" or an object.
	NumberInvalid
)

// Number is a tolerant numeric field. The zero value is absent.
type Number struct {
	kind  NumberKind
	value float64
	raw   json.RawMessage
}

// Num returns a valid Number holding v.
func Num(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return Number{kind: NumberValid, value: v}
}

// Invalid returns a Number that failed numeric coercion; raw is kept for output.
func Invalid(raw string) Number {
	b, _ := json.Marshal(raw)
	return Number{kind: NumberInvalid, raw: b}
}

// Kind reports how the value was given.
func (n Number) Kind() NumberKind { return n.kind }

// IsSet reports whether the field was present and not null.
func (n Number) IsSet() bool { return n.kind != NumberAbsent }

// IsValid reports whether the field holds a usable number.
func (n Number) IsValid() bool { return n.kind == NumberValid }

// Value coerces the field: absent is 0, placeholders are ErrNotNumeric.
func (n Number) Value() (float64, error) {
	switch n.kind {
	case NumberValid:
		return n.value, nil
	case NumberAbsent:
		return 0, nil
	default:
		return math.NaN(), ErrNotNumeric
	}
}

// Or returns the number, or def when it is absent or not numeric.
func (n Number) Or(def float64) float64 {
	if n.kind != NumberValid {
		return def
	}
	return n.value
}

// Int returns the value when it is valid and integral.
func (n Number) Int() (int, bool) {
	if n.kind != NumberValid || n.value != math.Trunc(n.value) {
		return 0, false
	}
	if n.value > math.MaxInt32 || n.value < math.MinInt32 {
		return 0, false
	}
	return int(n.value), true
}

// String renders the value for logs; absent renders as "?".
func (n Number) String() string {
	switch n.kind {
	case NumberValid:
		return strconv.FormatFloat(n.value, 'f', -1, 64)
	case NumberInvalid:
		var s string
		if json.Unmarshal(n.raw, &s) == nil {
			return s
		}
		return string(n.raw)
	default:
		return "?"
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*n = Number{}
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case 'n':
		return nil
	case 't':
		*n = Number{kind: NumberValid, value: 1}
	case 'f':
		*n = Number{kind: NumberValid, value: 0}
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = parseNumericString(s)
		if n.kind == NumberInvalid {
			n.raw = append(json.RawMessage(nil), data...)
		}
	case '{', '[':
		*n = Number{kind: NumberInvalid, raw: append(json.RawMessage(nil), data...)}
	default:
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*n = Number{kind: NumberValid, value: v}
	}
	return nil
}

// parseNumericString follows unary-plus coercion: blank is 0, garbage is invalid.
func parseNumericString(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{kind: NumberValid}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{kind: NumberInvalid}
	}
	return Number{kind: NumberValid, value: v}
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	switch n.kind {
	case NumberValid:
		return strconv.AppendFloat(nil, n.value, 'f', -1, 64), nil
	case NumberInvalid:
		if len(n.raw) == 0 {
			return []byte("null"), nil
		}
		return n.raw, nil
	default:
		return []byte("null"), nil
	}
}
