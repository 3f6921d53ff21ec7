package display

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Items      []string // Related tokens, files or paths (optional)
	ItemLabel  string   // Heading for Items; defaults to "Affected items"
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Items) > 0 {
		label := w.ItemLabel
		if label == "" {
			label = "Affected items"
		}
		b.WriteString("    ")
		b.WriteString(label)
		b.WriteString(":\n")

		for i, item := range w.Items {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, item))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// WarnDuplicateTokens creates a warning listing tokens that appear more than
// once, ignoring case. It returns false when there is nothing to report.
func WarnDuplicateTokens(dups map[string]int) (Warning, bool) {
	if len(dups) == 0 {
		return Warning{}, false
	}

	keys := make([]string, 0, len(dups))
	for k := range dups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]string, 0, len(keys))
	for _, k := range keys {
		items = append(items, fmt.Sprintf("%s (x%d)", k, dups[k]))
	}
	return Warning{
		Title:      "Duplicate tokens",
		Message:    "The same token is listed more than once.",
		Items:      items,
		ItemLabel:  "Tokens",
		Suggestion: "Remove the extra entries from the config file.",
	}, true
}

// WarnInvalidTokens creates a warning from token validation errors. It
// returns false when errs is empty.
func WarnInvalidTokens(errs []error) (Warning, bool) {
	if len(errs) == 0 {
		return Warning{}, false
	}
	items := make([]string, 0, len(errs))
	for _, err := range errs {
		items = append(items, err.Error())
	}
	return Warning{
		Title:     "Invalid tokens",
		Items:     items,
		ItemLabel: "Problems",
	}, true
}

// WarnSkippedEntries creates a warning for entries a scan could not read.
func WarnSkippedEntries(errs []error) (Warning, bool) {
	if len(errs) == 0 {
		return Warning{}, false
	}
	items := make([]string, 0, len(errs))
	for _, err := range errs {
		items = append(items, err.Error())
	}
	return Warning{
		Title:     fmt.Sprintf("Skipped %d unreadable %s", len(errs), plural(len(errs), "entry", "entries")),
		Items:     items,
		ItemLabel: "Entries",
	}, true
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
