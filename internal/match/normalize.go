package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent lower-cases an identifier and drops separators, so that
// "TokenAlpha", "token_alpha" and "token-alpha" compare equal.
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// TokenizeIdent splits an identifier into lowercase tokens.
// Examples:
//   - "TokenAlpha" -> ["token", "alpha"]
//   - "HTTPHeader" -> ["http", "header"]
//   - "from_bytes" -> ["from", "bytes"]
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// SnakeCase returns the lower snake case form of a Go identifier.
func SnakeCase(s string) string {
	return strings.Join(TokenizeIdent(s), "_")
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Separators (_, -, space, dot) also split.
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports whether a new token begins at runes[i].
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// "tokenAlpha": lower -> upper.
	if !unicode.IsUpper(prev) {
		return true
	}

	// "HTTPHeader": end of an acronym before a lower-case rune.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
