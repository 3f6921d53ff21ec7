package rename

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun   = regexp.MustCompile(`\s{2,}`)
	spaceBeforeStop = regexp.MustCompile(`\s+([.\])])`)
)

// maxGrowingPasses bounds the passes that do not shorten the name. Only a
// pattern matching the empty string can make a pass keep or grow the length;
// passes that shorten it are bounded by the name itself.
const maxGrowingPasses = 8

// Normalize strips every match of p from name and tidies the whitespace that
// is left behind:
//   - each match becomes a single space
//   - runs of two or more whitespace characters collapse to one space
//   - whitespace before '.', ']' or ')' is removed
//   - backslashes are removed
//   - leading and trailing whitespace is trimmed
//
// The pass is repeated until the name stops changing, so
// Normalize(Normalize(x, p), p) == Normalize(x, p) holds even when removing
// one tag exposes another.
func Normalize(name string, p *regexp.Regexp) string {
	if p == nil {
		p = neverMatch
	}
	cur := name
	growing := 0
	for {
		next := normalizeOnce(cur, p)
		if next == cur {
			return next
		}
		if len(next) >= len(cur) {
			growing++
			if growing > maxGrowingPasses {
				return next
			}
		}
		cur = next
	}
}

func normalizeOnce(name string, p *regexp.Regexp) string {
	s := p.ReplaceAllLiteralString(name, " ")
	s = whitespaceRun.ReplaceAllLiteralString(s, " ")
	s = spaceBeforeStop.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, `\`, "")
	return strings.TrimSpace(s)
}
