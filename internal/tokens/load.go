package tokens

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Format is the layout of a token file
type Format int

const (
	// FormatUnknown is any unsupported extension
	FormatUnknown Format = iota
	// FormatText is one token per line (.txt)
	FormatText
	// FormatYAML is a sequence or a mapping with a tokens key (.yaml, .yml)
	FormatYAML
	// FormatMarkdown takes tokens from list items (.md, .markdown)
	FormatMarkdown
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatYAML:
		return "yaml"
	case FormatMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// DetectFormat picks a Format from the file extension
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".list":
		return FormatText
	case ".yaml", ".yml":
		return FormatYAML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatUnknown
	}
}

// ExpandPaths turns a mix of files and directories into the list of token
// files to import. Files are kept as given; a directory contributes its
// immediate children with a supported extension, sorted by name. Hidden
// files are skipped.
func ExpandPaths(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to access path: %w", err)
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", p, err)
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") || DetectFormat(e.Name()) == FormatUnknown {
				continue
			}
			found = append(found, filepath.Join(p, e.Name()))
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no token files (.txt, .yaml, .md) found in %s", p)
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}

// LoadFile reads tokens from path, dispatching on its extension. The result
// is normalized and deduplicated but not validated.
func LoadFile(path string) ([]string, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unsupported token file format: %s (use .txt, .yaml or .md)", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var raw []string
	switch format {
	case FormatText:
		raw, err = parseText(data)
	case FormatYAML:
		raw, err = parseYAML(data)
	case FormatMarkdown:
		raw = parseMarkdown(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for i, tok := range raw {
		raw[i] = unwrap(tok)
	}
	return Dedupe(raw), nil
}

// parseText returns one token per non-blank line; "#" starts a comment line.
func parseText(data []byte) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// parseYAML accepts either a bare sequence or {tokens: [...]}, the same
// shape as the config file and the embedded presets.
func parseYAML(data []byte) ([]string, error) {
	var list []string
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var doc struct {
		Tokens []string `yaml:"tokens"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Tokens, nil
}

// parseMarkdown collects the text of every list item; nested lists
// contribute their own items.
func parseMarkdown(data []byte) []string {
	doc := goldmark.New().Parser().Parse(text.NewReader(data))

	var out []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if item, ok := n.(*ast.ListItem); ok {
			if block := item.FirstChild(); block != nil {
				if s := strings.TrimSpace(extractText(block, data)); s != "" {
					out = append(out, s)
				}
			}
		}
		return ast.WalkContinue, nil
	})
	return out
}

// extractText concatenates the text segments below n, code spans included.
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
			continue
		}
		buf.WriteString(extractText(c, source))
	}
	return buf.String()
}

// unwrap turns "(USA)" into "USA" so tag lists can be pasted as-is.
func unwrap(tok string) string {
	tok = strings.TrimSpace(tok)
	if len(tok) > 2 && strings.HasPrefix(tok, "(") && strings.HasSuffix(tok, ")") {
		return strings.TrimSpace(tok[1 : len(tok)-1])
	}
	return tok
}
