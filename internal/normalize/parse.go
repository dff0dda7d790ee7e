// Package normalize turns loosely structured model output into typed values.
//
// The pipeline is: reject HTML error pages, strip code fences, try a strict
// decode, and on failure repair the generic JSON tree (string-valued list
// fields become arrays) and decode once more. There is no third attempt.
package normalize

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"
)

// RawPrefixLimit bounds how much of a bad payload is kept for logging.
const RawPrefixLimit = 512

var errNotObject = errors.New("top-level value is not a JSON object")

// Normalizer is implemented by targets that fill defaults (for example empty
// slices in place of nil) after a successful decode.
type Normalizer interface {
	Normalize()
}

// Parse decodes raw backend text into a T, repairing list fields named by
// schema when the first strict decode fails.
func Parse[T any](raw string, schema Schema) (*T, error) {
	if strings.HasPrefix(strings.TrimSpace(raw), "<") {
		return nil, &ResponseError{
			Kind: NotJSON,
			Msg:  "backend likely returned an HTML error page instead of structured content",
			Raw:  RawPrefix(raw),
		}
	}

	text := Sanitize(raw)

	if out, err := strict[T](text); err == nil {
		return out, nil
	}

	tree, err := Decode([]byte(text))
	if err != nil {
		return nil, &ResponseError{
			Kind: NotJSON,
			Msg:  "response is not valid JSON",
			Raw:  RawPrefix(raw),
			Err:  err,
		}
	}

	if tree.Kind != KindObject {
		return nil, &ResponseError{
			Kind: WrongShape,
			Msg:  "expected a JSON object, got " + tree.Kind.String(),
			Raw:  RawPrefix(raw),
		}
	}

	repaired, err := json.Marshal(Coerce(tree, schema))
	if err != nil {
		return nil, &ResponseError{
			Kind: UnparseableAfterCoercion,
			Msg:  "could not re-encode coerced response",
			Raw:  RawPrefix(raw),
			Err:  err,
		}
	}

	out, err := strict[T](string(repaired))
	if err != nil {
		return nil, &ResponseError{
			Kind: UnparseableAfterCoercion,
			Msg:  "response does not match the expected schema",
			Raw:  RawPrefix(raw),
			Err:  err,
		}
	}
	return out, nil
}

// strict decodes text into a T. Member names match case-insensitively and
// unknown members are ignored; the top-level value must be an object.
func strict[T any](text string) (*T, error) {
	if !strings.HasPrefix(strings.TrimSpace(text), "{") {
		return nil, errNotObject
	}

	var out T
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, err
	}

	if n, ok := any(&out).(Normalizer); ok {
		n.Normalize()
	}
	return &out, nil
}

// RawPrefix returns at most RawPrefixLimit bytes of s without splitting a rune.
func RawPrefix(s string) string {
	if len(s) <= RawPrefixLimit {
		return s
	}

	cut := RawPrefixLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
