// Package value models the opaque field values carried by agent and command
// definitions. Both opencode.json and markdown frontmatter decode into the
// same closed set of kinds so reconciliation can move a field between stores
// without caring where it came from.
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Fields is a flat key→value mapping: one entity's fields in either store.
type Fields map[string]Value

// Value is an immutable tagged value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	lit  string // source text of a decoded JSON number, kept for round trips
	s    string
	seq  []Value
	m    Fields
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool creates a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number creates a number Value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// NumberLiteral creates a number Value that remembers its JSON text, so an
// integer wider than float64 is written back digit for digit.
func NumberLiteral(lit string) (Value, error) {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Value{}, err
	}
	return Value{kind: KindNumber, n: f, lit: lit}, nil
}

// String creates a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Sequence creates a sequence Value.
func Sequence(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindSequence, seq: items}
}

// Mapping creates a mapping Value.
func Mapping(m Fields) Value {
	if m == nil {
		m = Fields{}
	}
	return Value{kind: KindMapping, m: m}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull returns true if the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the value as a boolean, if possible.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the value as a number, if possible.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the value as a string, if possible.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsSequence returns the items of a sequence value.
func (v Value) AsSequence() ([]Value, bool) { return v.seq, v.kind == KindSequence }

// AsMapping returns the entries of a mapping value.
func (v Value) AsMapping() (Fields, bool) { return v.m, v.kind == KindMapping }

// StringOr returns the string form of v, or fallback when v is not a string.
func (v Value) StringOr(fallback string) string {
	if v.kind == KindString {
		return v.s
	}
	return fallback
}

// Equal reports deep equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		if v.n != o.n {
			return false
		}
		if v.lit == "" || o.lit == "" || v.lit == o.lit {
			return true
		}
		return sameNumber(v.lit, o.lit)
	case KindString:
		return v.s == o.s
	case KindSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		return v.m.Equal(o.m)
	}
	return false
}

// Raw converts the value back to plain Go values (nil, bool, float64 or int64,
// string, []any, map[string]any).
func (v Value) Raw() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		if v.lit != "" {
			if i, err := strconv.ParseInt(v.lit, 10, 64); err == nil {
				return i
			}
		}
		// Whole numbers come back as integers so YAML and JSON output do
		// not grow a trailing ".0".
		if v.n == math.Trunc(v.n) && math.Abs(v.n) < 1<<53 {
			return int64(v.n)
		}
		return v.n
	case KindString:
		return v.s
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Raw()
		}
		return out
	case KindMapping:
		return v.m.Raw()
	}
	return nil
}

// FromAny converts decoder output into a Value. It understands the shapes
// produced by encoding/json and gopkg.in/yaml.v3.
func FromAny(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case json.Number:
		if n, err := NumberLiteral(x.String()); err == nil {
			return n
		}
		return String(x.String())
	case string:
		return String(x)
	case time.Time:
		// YAML decodes unquoted timestamps; keep them as text.
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return String(x.Format("2006-01-02"))
		}
		return String(x.Format(time.RFC3339Nano))
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = FromAny(item)
		}
		return Sequence(items)
	case map[string]any:
		m := make(Fields, len(x))
		for k, item := range x {
			m[k] = FromAny(item)
		}
		return Mapping(m)
	case map[any]any:
		m := make(Fields, len(x))
		for k, item := range x {
			m[fmt.Sprint(k)] = FromAny(item)
		}
		return Mapping(m)
	case Fields:
		return Mapping(x)
	}
	return String(fmt.Sprint(raw))
}

// MarshalJSON implements json.Marshaler. Decoded number literals are written
// back verbatim and HTML characters in strings are left unescaped.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if v.lit != "" {
			return []byte(v.lit), nil
		}
	case KindSequence:
		return EncodeJSON(v.seq, "")
	case KindMapping:
		return EncodeJSON(v.m, "")
	}
	return EncodeJSON(v.Raw(), "")
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// EncodeJSON encodes x without HTML escaping, indenting by indent when it
// is non-empty. The result has no trailing newline.
func EncodeJSON(x any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(x); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func sameNumber(a, b string) bool {
	x, _, errA := big.ParseFloat(a, 10, 256, big.ToNearestEven)
	y, _, errB := big.ParseFloat(b, 10, 256, big.ToNearestEven)
	if errA != nil || errB != nil {
		return false
	}
	return x.Cmp(y) == 0
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.Raw(), nil
}

// FieldsFromAny converts a decoded object into Fields. Non-object input
// yields ok=false.
func FieldsFromAny(raw any) (Fields, bool) {
	v := FromAny(raw)
	m, ok := v.AsMapping()
	return m, ok
}

// Clone returns a shallow copy of f. Values are immutable so sharing them is safe.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Keys returns the field names in sorted order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether key is present.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Equal reports deep equality of two field mappings.
func (f Fields) Equal(o Fields) bool {
	if len(f) != len(o) {
		return false
	}
	for k, v := range f {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// WithoutNulls returns a copy of f with null-valued entries removed.
func (f Fields) WithoutNulls() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		if !v.IsNull() {
			out[k] = v
		}
	}
	return out
}

// Raw converts f into a map of plain Go values.
func (f Fields) Raw() map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		out[k] = v.Raw()
	}
	return out
}
