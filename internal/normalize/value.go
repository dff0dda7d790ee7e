package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
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
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Member is one key/value pair of an object, in source order.
type Member struct {
	Key   string
	Value Value
}

// Value is an untyped JSON tree. Objects keep their members in the order
// they were decoded, and numbers keep their literal text.
type Value struct {
	Kind    Kind
	Bool    bool
	Text    string // string contents, or the number literal
	Items   []Value
	Members []Member
}

func StringValue(s string) Value {
	return Value{Kind: KindString, Text: s}
}

// Get returns the first member whose key equals key.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.Kind {
	case KindArray:
		items := make([]Value, len(v.Items))
		for i, item := range v.Items {
			items[i] = item.Clone()
		}
		return Value{Kind: KindArray, Items: items}
	case KindObject:
		members := make([]Member, len(v.Members))
		for i, m := range v.Members {
			members[i] = Member{Key: m.Key, Value: m.Value.Clone()}
		}
		return Value{Kind: KindObject, Members: members}
	case KindString, KindNumber:
		return Value{Kind: v.Kind, Text: v.Text}
	case KindBool:
		return Value{Kind: KindBool, Bool: v.Bool}
	default:
		return Value{Kind: KindNull}
	}
}

// Decode parses exactly one JSON value from data.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("unexpected data after top-level value")
	}
	return v, nil
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
			return decodeArray(dec)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", rune(t))
	case string:
		return StringValue(t), nil
	case json.Number:
		return Value{Kind: KindNumber, Text: t.String()}, nil
	case bool:
		return Value{Kind: KindBool, Bool: t}, nil
	case nil:
		return Value{Kind: KindNull}, nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := Value{Kind: KindObject, Members: []Member{}}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is %T, not string", tok)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		obj.Members = append(obj.Members, Member{Key: key, Value: val})
	}

	// closing '}'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	arr := Value{Kind: KindArray, Items: []Value{}}

	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		arr.Items = append(arr.Items, val)
	}

	// closing ']'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return arr, nil
}

// MarshalJSON writes v with object members in their stored order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		buf.WriteString(v.Text)
	case KindString:
		return encodeString(buf, v.Text)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode %s", v.Kind)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
