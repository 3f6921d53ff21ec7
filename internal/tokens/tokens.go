package tokens

import (
	"fmt"
	"strings"
)

// Normalize trims surrounding whitespace so tokens compare consistently.
func Normalize(token string) string {
	return strings.TrimSpace(token)
}

// FindDuplicates returns every token that occurs more than once, after
// normalization, mapped to its number of occurrences. Blank tokens are
// ignored.
func FindDuplicates(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		tok = Normalize(tok)
		if tok == "" {
			continue
		}
		counts[tok]++
	}

	dups := make(map[string]int)
	for tok, n := range counts {
		if n > 1 {
			dups[tok] = n
		}
	}
	return dups
}

// invalidChars cannot appear in a filename on at least one supported
// platform, so a token containing one can never match.
const invalidChars = `<>:"/\|?*`

// TokenError describes one problem with one token. Line is the 1-based
// position of the token in the list it came from.
type TokenError struct {
	Line    int
	Token   string
	Message string
}

// Error implements the error interface
func (e *TokenError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Message)
}

// Validate checks every token and returns all problems in list order. A
// "|" is reported twice: once because it would split the pattern into
// alternatives and once as an invalid filename character.
func Validate(tokens []string) []error {
	var errs []error
	for i, raw := range tokens {
		tok := Normalize(raw)
		if tok == "" {
			continue
		}
		line := i + 1

		if strings.Contains(tok, "|") {
			errs = append(errs, &TokenError{
				Line:    line,
				Token:   tok,
				Message: fmt.Sprintf("token %q contains '|', list alternatives as separate tokens", tok),
			})
		}
		for _, ch := range invalidChars {
			if strings.ContainsRune(tok, ch) {
				errs = append(errs, &TokenError{
					Line:    line,
					Token:   tok,
					Message: fmt.Sprintf("token %q contains invalid filename character '%c'", tok, ch),
				})
			}
		}
	}
	return errs
}

// Dedupe returns tokens normalized, without blanks, keeping the first
// occurrence of each.
func Dedupe(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = Normalize(tok)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}
