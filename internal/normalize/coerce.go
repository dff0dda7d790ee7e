package normalize

import (
	"strings"
)

// Schema names the members of an object that must hold a sequence of
// strings, and the members whose elements are objects with their own
// schema. Keys are matched case-insensitively.
type Schema struct {
	Lists  []string
	Nested map[string]Schema
}

func (s Schema) isList(key string) bool {
	for _, name := range s.Lists {
		if strings.EqualFold(name, key) {
			return true
		}
	}
	return false
}

func (s Schema) nested(key string) (Schema, bool) {
	for name, child := range s.Nested {
		if strings.EqualFold(name, key) {
			return child, true
		}
	}
	return Schema{}, false
}

// Coerce returns a copy of v in which every string-valued list member named
// by s has been split into an array. Everything else is copied unchanged,
// including members s does not know about.
func Coerce(v Value, s Schema) Value {
	if v.Kind != KindObject {
		return v.Clone()
	}

	out := Value{Kind: KindObject, Members: make([]Member, 0, len(v.Members))}
	for _, m := range v.Members {
		var val Value
		if s.isList(m.Key) {
			val = coerceList(m.Value)
		} else if child, ok := s.nested(m.Key); ok {
			val = coerceNested(m.Value, child)
		} else {
			val = m.Value.Clone()
		}
		out.Members = append(out.Members, Member{Key: m.Key, Value: val})
	}
	return out
}

func coerceList(v Value) Value {
	if v.Kind != KindString {
		return v.Clone()
	}
	return SplitList(v.Text)
}

func coerceNested(v Value, s Schema) Value {
	switch v.Kind {
	case KindArray:
		items := make([]Value, len(v.Items))
		for i, item := range v.Items {
			items[i] = Coerce(item, s)
		}
		return Value{Kind: KindArray, Items: items}
	case KindObject:
		return Coerce(v, s)
	default:
		return v.Clone()
	}
}

// SplitList turns "a, b ,c" into ["a","b","c"]. Pieces that are empty after
// trimming are dropped.
func SplitList(s string) Value {
	parts := strings.Split(s, ",")

	items := make([]Value, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		items = append(items, StringValue(p))
	}
	return Value{Kind: KindArray, Items: items}
}
