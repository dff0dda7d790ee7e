package normalize

import (
	"strings"
)

const fence = "```"

// Sanitize strips presentation wrapping (code fences, inline backticks,
// surrounding whitespace) from raw model output. It never fails and is
// idempotent: the unwrap steps are applied until the text stops changing.
func Sanitize(raw string) string {
	text := strings.TrimSpace(raw)

	for {
		next := unwrapOnce(text)
		if next == text {
			return text
		}
		text = next
	}
}

func unwrapOnce(text string) string {
	switch {
	case strings.HasPrefix(text, fence):
		return stripFence(text)
	case isBacktickWrapped(text):
		return strings.TrimSpace(text[1 : len(text)-1])
	default:
		return text
	}
}

// stripFence removes an opening ``` line (with an optional language tag)
// and, when present, the closing ``` fence.
func stripFence(text string) string {
	rest := text[len(fence):]

	line, body, hasNewline := strings.Cut(rest, "\n")
	switch {
	case isLanguageTag(strings.TrimSpace(line)):
		if !hasNewline {
			body = ""
		}
	default:
		// Content shares the line with the fence: ```{"a":1}```
		body = rest
	}

	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, fence)

	return strings.TrimSpace(body)
}

// isLanguageTag reports whether s looks like the info string of a fenced
// block ("json", "JSON", "javascript", or nothing at all).
func isLanguageTag(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '+':
		default:
			return false
		}
	}
	return true
}

func isBacktickWrapped(text string) bool {
	if len(text) < 2 || text[0] != '`' || text[len(text)-1] != '`' {
		return false
	}
	return !strings.Contains(text[1:len(text)-1], "`")
}
