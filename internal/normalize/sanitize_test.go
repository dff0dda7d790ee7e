package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n\t", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"upper case tag", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fence without closing", "```json\n{\"a\":1}", `{"a":1}`},
		{"fence on one line", "```{\"a\":1}```", `{"a":1}`},
		{"single backticks", "`{\"a\":1}`", `{"a":1}`},
		{"interior backtick kept", "`a`b`", "`a`b`"},
		{"fence around inline code", "```\n`{\"a\":1}`\n```", `{"a":1}`},
		{"empty", "", ""},
		{"only fence", "```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"```json\n{\"a\":1}\n```",
		"````\n```\n{}\n```\n````",
		"``",
		"` `",
		"```json",
		"  `x`  ",
		"```\n```json\n[1,2]\n```\n```",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func TestSanitizeNoopOnUnfencedText(t *testing.T) {
	text := `{"buildName":"Quiet Workstation","components":[]}`
	assert.Equal(t, text, Sanitize(text))
}
