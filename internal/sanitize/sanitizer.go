// Package sanitize recovers a candidate JSON payload from free-form backend output.
package sanitize

import (
	"strings"
	"unicode"
)

const (
	fence      = "```"
	thinkOpen  = "<think>"
	thinkClose = "</think>"
)

// languageTags are matched case-insensitively, longest first.
var languageTags = []string{"jsonc", "json5", "json"}

// Response trims whitespace and strips code fences, a leading language tag and a
// leading <think> block. Each pass removes at most one layer of each; passes repeat
// until nothing changes, so Response(Response(x)) == Response(x).
// No structural validation happens here.
func Response(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		next := strip(s)
		if next == s {
			return s
		}
		s = next
	}
}

func strip(s string) string {
	s = strings.TrimSpace(stripThink(s))
	s = strings.TrimSpace(stripFence(s))
	s = strings.TrimSpace(stripLanguageTag(s))
	return s
}

func stripThink(s string) string {
	if !strings.HasPrefix(s, thinkOpen) {
		return s
	}
	end := strings.Index(s, thinkClose)
	if end == -1 {
		return s
	}
	return s[end+len(thinkClose):]
}

func stripFence(s string) string {
	if len(s) < 2*len(fence) || !strings.HasPrefix(s, fence) || !strings.HasSuffix(s, fence) {
		return s
	}
	return s[len(fence) : len(s)-len(fence)]
}

// stripLanguageTag removes a tag only when it is a whole token, so payloads
// such as "jsonish" text are left alone.
func stripLanguageTag(s string) string {
	for _, tag := range languageTags {
		if len(s) < len(tag) || !strings.EqualFold(s[:len(tag)], tag) {
			continue
		}
		rest := s[len(tag):]
		if rest == "" {
			return rest
		}
		if c := rune(rest[0]); c == '{' || c == '[' || unicode.IsSpace(c) {
			return rest
		}
	}
	return s
}
