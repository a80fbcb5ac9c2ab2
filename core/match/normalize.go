package match

import (
	"strings"
)

// NormalizeEmail trims and lower-cases an email address.
// An empty result means the record carries no email signal.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizePhone keeps only ASCII digits and drops a single leading North
// American trunk prefix "1". It is a heuristic, not E.164 normalization.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return strings.TrimPrefix(b.String(), "1")
}

// NormalizeName lower-cases a name, removes every character other than
// a-z, 0-9 and the space, and collapses runs of spaces.
func NormalizeName(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))

	var b strings.Builder
	prevSpace := true // drops leading spaces
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevSpace = false
		case r == ' ':
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
		}
	}

	return strings.TrimSpace(b.String())
}

// NameTokens splits a normalized name on spaces, dropping empty tokens.
func NameTokens(normalized string) []string {
	parts := strings.Split(normalized, " ")
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// EmailLocalPart returns the part of the normalized email before the first "@".
func EmailLocalPart(raw string) string {
	email := NormalizeEmail(raw)
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}
