package config

import (
	"fmt"
	"regexp"
	"strings"
)

// NeverMatch is the pattern used for an empty token set. It is non-empty and
// matches no input.
const NeverMatch = `[^\s\S]`

// PatternKind selects how a PatternSpec is turned into a regular expression.
type PatternKind int

const (
	// KindTokenList builds the pattern from literal tokens.
	KindTokenList PatternKind = iota
	// KindRawPattern uses a user-supplied expression verbatim.
	KindRawPattern
)

// String returns the name of the kind.
func (k PatternKind) String() string {
	switch k {
	case KindTokenList:
		return "tokens"
	case KindRawPattern:
		return "regex"
	default:
		return "unknown"
	}
}

// PatternSpec is either a list of literal tokens or a raw expression.
type PatternSpec struct {
	Kind   PatternKind
	Tokens []string
	Raw    string
}

// TokenList returns a spec built from literal tokens.
func TokenList(tokens ...string) PatternSpec {
	return PatternSpec{Kind: KindTokenList, Tokens: tokens}
}

// RawPattern returns a spec that uses expr verbatim.
func RawPattern(expr string) PatternSpec {
	return PatternSpec{Kind: KindRawPattern, Raw: expr}
}

// Expr returns the expression the spec compiles to.
func (p PatternSpec) Expr() string {
	if p.Kind == KindRawPattern {
		return p.Raw
	}
	return BuildRegex(p.Tokens)
}

// Compile builds the matching pattern. A raw expression that is empty or
// fails to compile is a ConfigError.
func (p PatternSpec) Compile() (*regexp.Regexp, error) {
	expr := p.Expr()
	if p.Kind == KindRawPattern && strings.TrimSpace(expr) == "" {
		return nil, &ConfigError{Field: "regex", Message: "custom pattern is empty"}
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &ConfigError{Field: "regex", Message: fmt.Sprintf("invalid pattern %q", expr), Err: err}
	}
	return re, nil
}

// BuildRegex escapes each token, joins them with "|" and wraps the result as
// `\s*\((?:tok1|tok2)\)\s*`. Blank tokens are skipped; with no tokens left
// the never-matching pattern is returned.
func BuildRegex(tokens []string) string {
	escaped := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		escaped = append(escaped, regexp.QuoteMeta(tok))
	}
	if len(escaped) == 0 {
		return NeverMatch
	}
	return `\s*\((?:` + strings.Join(escaped, "|") + `)\)\s*`
}
