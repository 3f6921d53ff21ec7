package tokens

import (
	"fmt"
	"regexp"
	"slices"
	"sort"

	"github.com/harrison/cleanfilenames/internal/fileutil"
)

// MaxSamples caps the example paths kept per suggestion.
const MaxSamples = 3

var tagFinder = regexp.MustCompile(`\(([^()]+)\)`)

// Usage is how often a known token appeared in scanned names.
type Usage struct {
	Token string
	Count int
}

// Suggestion is a parenthesized tag that is not a known token.
type Suggestion struct {
	Token   string
	Count   int
	Samples []string
}

// Tracker accumulates token statistics over observed names.
type Tracker struct {
	known       []string
	knownSet    map[string]bool
	usage       map[string]int
	suggestions map[string]*Suggestion
	order       []string
	duplicates  map[string]int
}

// NewTracker creates a Tracker for the given known tokens.
func NewTracker(known []string) *Tracker {
	var list []string
	for _, tok := range known {
		if tok = Normalize(tok); tok != "" {
			list = append(list, tok)
		}
	}

	set := make(map[string]bool, len(list))
	for _, tok := range list {
		set[tok] = true
	}

	return &Tracker{
		known:       list,
		knownSet:    set,
		usage:       make(map[string]int),
		suggestions: make(map[string]*Suggestion),
		duplicates:  FindDuplicates(list),
	}
}

// Known returns the normalized known tokens in their original order,
// duplicates included.
func (t *Tracker) Known() []string {
	return append([]string(nil), t.known...)
}

// Observe records every parenthesized tag in name. path is kept as a sample
// for tags that are not known tokens.
func (t *Tracker) Observe(name, path string) {
	if name == "" {
		return
	}
	for _, m := range tagFinder.FindAllStringSubmatch(name, -1) {
		tok := Normalize(m[1])
		if tok == "" {
			continue
		}
		if t.knownSet[tok] {
			t.usage[tok]++
			continue
		}

		s, ok := t.suggestions[tok]
		if !ok {
			s = &Suggestion{Token: tok}
			t.suggestions[tok] = s
			t.order = append(t.order, tok)
		}
		s.Count++
		if len(s.Samples) < MaxSamples && !slices.Contains(s.Samples, path) {
			s.Samples = append(s.Samples, path)
		}
	}
}

// Usage returns a count for every known token, in known-token order.
// Duplicated known tokens appear once per occurrence.
func (t *Tracker) Usage() []Usage {
	out := make([]Usage, 0, len(t.known))
	for _, tok := range t.known {
		out = append(out, Usage{Token: tok, Count: t.usage[tok]})
	}
	return out
}

// Suggestions returns the unknown tags, most frequent first. Ties keep the
// order in which the tags were first seen.
func (t *Tracker) Suggestions() []Suggestion {
	out := make([]Suggestion, 0, len(t.order))
	for _, tok := range t.order {
		s := t.suggestions[tok]
		out = append(out, Suggestion{
			Token:   s.Token,
			Count:   s.Count,
			Samples: append([]string(nil), s.Samples...),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Duplicates returns the duplicated known tokens with their counts.
func (t *Tracker) Duplicates() map[string]int {
	out := make(map[string]int, len(t.duplicates))
	for k, v := range t.duplicates {
		out[k] = v
	}
	return out
}

// ScanTree observes every file and directory name under root. Hidden
// entries are skipped. Entries that could not be read are returned so the
// caller can report them; they do not stop the scan.
func (t *Tracker) ScanTree(root string) ([]*fileutil.EntryError, error) {
	res, err := fileutil.ScanTree(root, fileutil.ScanOptions{SkipHidden: true})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	for _, d := range res.Dirs {
		t.Observe(d.Name, d.Path)
	}
	for _, f := range res.Files {
		t.Observe(f.Name, f.Path)
	}
	return res.Errors, nil
}

// SortedSuggestions returns Suggestions with equal counts ordered by
// natural token order, for stable listings.
func (t *Tracker) SortedSuggestions() []Suggestion {
	out := t.Suggestions()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return naturalLess(out[i].Token, out[j].Token)
	})
	return out
}
