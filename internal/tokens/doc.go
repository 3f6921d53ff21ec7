// Package tokens manages the tag tokens cleanfilenames strips.
//
// It validates token lists before they are built into a pattern, finds
// duplicates, imports tokens from text, YAML and Markdown files, and scans a
// tree to report which known tokens are in use and which parenthesized
// tags are not covered yet.
package tokens
