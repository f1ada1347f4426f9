package telemetry

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Kind tags the dynamic type held by a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNumber
	KindText
	KindMap
	KindList
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	case KindBool:
		return "bool"
	default:
		return "absent"
	}
}

// Value is one entry of a loosely typed payload (aggregated_data, metrics).
// Readers use the typed accessors instead of asserting on interface{} at each site.
type Value struct {
	kind   Kind
	number float64
	text   string
	flag   bool
	fields Fields
	items  []Value
}

// Fields is a JSON object of payload values.
type Fields map[string]Value

// Number wraps a numeric reading.
func Number(v float64) Value { return Value{kind: KindNumber, number: v} }

// Text wraps a string reading.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Bool wraps a boolean reading.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Map wraps a nested object.
func Map(f Fields) Value { return Value{kind: KindMap, fields: f} }

// List wraps an array.
func List(items ...Value) Value { return Value{kind: KindList, items: items} }

func (v Value) Kind() Kind         { return v.kind }
func (v Value) IsAbsent() bool     { return v.kind == KindAbsent }
func (v Value) Items() []Value     { return v.items }
func (v Value) Fields() Fields     { return v.fields }
func (v Value) Bool() (bool, bool) { return v.flag, v.kind == KindBool }

// Float returns the numeric reading. ok is false for every non-number kind,
// including numeric-looking text.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.number, true
}

// Decimal returns the numeric reading as an exact decimal.
func (v Value) Decimal() (decimal.Decimal, bool) {
	f, ok := v.Float()
	if !ok {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// AsText returns the text reading.
func (v Value) AsText() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// Get returns the named field of a map value; absent for any other kind or missing key.
func (v Value) Get(name string) Value {
	if v.kind != KindMap {
		return Value{}
	}
	return v.fields[name]
}

// Get returns the named field, absent when missing.
func (f Fields) Get(name string) Value {
	if f == nil {
		return Value{}
	}
	return f[name]
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

// FromAny converts a decoded JSON value into a Value.
func FromAny(raw interface{}) (Value, error) {
	switch val := raw.(type) {
	case nil:
		return Value{}, nil
	case float64:
		return Number(val), nil
	case float32:
		return Number(float64(val)), nil
	case int:
		return Number(float64(val)), nil
	case int64:
		return Number(float64(val)), nil
	case int32:
		return Number(float64(val)), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return Text(val.String()), nil
		}
		return Number(f), nil
	case string:
		return Text(val), nil
	case bool:
		return Bool(val), nil
	case map[string]interface{}:
		fields, err := FieldsFromMap(val)
		if err != nil {
			return Value{}, err
		}
		return Map(fields), nil
	case []interface{}:
		items := make([]Value, 0, len(val))
		for _, item := range val {
			v, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return List(items...), nil
	default:
		return Value{}, fmt.Errorf("unsupported payload value type %T", raw)
	}
}

// FieldsFromMap converts a decoded JSON object into Fields.
func FieldsFromMap(m map[string]interface{}) (Fields, error) {
	if m == nil {
		return nil, nil
	}
	fields := make(Fields, len(m))
	for k, raw := range m {
		v, err := FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		fields[k] = v
	}
	return fields, nil
}

// Any converts the value back to plain JSON-compatible Go values.
func (v Value) Any() interface{} {
	switch v.kind {
	case KindNumber:
		return v.number
	case KindText:
		return v.text
	case KindBool:
		return v.flag
	case KindMap:
		return v.fields.Any()
	case KindList:
		out := make([]interface{}, 0, len(v.items))
		for _, item := range v.items {
			out = append(out, item.Any())
		}
		return out
	default:
		return nil
	}
}

// Any converts the fields back to a plain map.
func (f Fields) Any() map[string]interface{} {
	if f == nil {
		return nil
	}
	out := make(map[string]interface{}, len(f))
	for k, v := range f {
		out[k] = v.Any()
	}
	return out
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindNumber && (math.IsNaN(v.number) || math.IsInf(v.number, 0)) {
		return nil, fmt.Errorf("non-finite number %v", v.number)
	}
	return json.Marshal(v.Any())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
