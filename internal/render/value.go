package render

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	List
	Object
)

// Field is one key/value pair of an Object, in document order.
type Field struct {
	Name  string
	Value Value
}

// Value is a tagged representation of an arbitrary JSON value. Unlike a
// map[string]interface{}, it preserves the key order of objects as they
// appear in the source document, which keeps rendered output stable.
type Value struct {
	kind   Kind
	boolV  bool
	numV   json.Number
	strV   string
	listV  []Value
	fields []Field
}

// ObjectOf builds an Object value from fields. Intended for tests and
// programmatic construction.
func ObjectOf(fields ...Field) Value {
	return Value{kind: Object, fields: fields}
}

// StringOf builds a String value.
func StringOf(s string) Value { return Value{kind: String, strV: s} }

// NumberOf builds a Number value from its literal representation.
func NumberOf(lit string) Value { return Value{kind: Number, numV: json.Number(lit)} }

// BoolOf builds a Bool value.
func BoolOf(b bool) Value { return Value{kind: Bool, boolV: b} }

// ListOf builds a List value.
func ListOf(items ...Value) Value { return Value{kind: List, listV: items} }

// Kind reports which variant v holds. The zero Value is Null.
func (v Value) Kind() Kind { return v.kind }

// Fields returns the object fields in document order, or nil for
// non-object values.
func (v Value) Fields() []Field {
	if v.kind != Object {
		return nil
	}
	return v.fields
}

// UnmarshalJSON decodes data into the tagged variant, preserving object key
// order. Numbers are kept as their source literals.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	parsed, err := decodeValue(dec)
	if err != nil {
		return fmt.Errorf("failed to decode value: %w", err)
	}
	*v = parsed
	return nil
}

// MarshalJSON re-encodes the value compactly, in the original key order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeList(dec)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t)
	case bool:
		return Value{kind: Bool, boolV: t}, nil
	case json.Number:
		return Value{kind: Number, numV: t}, nil
	case string:
		return Value{kind: String, strV: t}, nil
	case nil:
		return Value{}, nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := Value{kind: Object}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		obj.fields = append(obj.fields, Field{Name: key, Value: val})
	}
	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return obj, nil
}

func decodeList(dec *json.Decoder) (Value, error) {
	list := Value{kind: List, listV: make([]Value, 0)}
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		list.listV = append(list.listV, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return list, nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case Null:
		buf.WriteString("null")
	case Bool:
		if v.boolV {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		buf.WriteString(string(v.numV))
	case String:
		encoded, err := json.Marshal(v.strV)
		if err != nil {
			return err
		}
		buf.Write(encoded)
	case List:
		buf.WriteByte('[')
		for i, item := range v.listV {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Name)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := f.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// literal returns the compact JSON representation used for leaf lines.
func (v Value) literal() string {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return "null"
	}
	return buf.String()
}
