// Package normalize strips boilerplate from extracted page text and
// normalizes its whitespace, producing the canonical text handed to the
// rest of the pipeline.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	blankLines = regexp.MustCompile(`\n\s*\n`)
	spaceRuns  = regexp.MustCompile(`[ \t]+`)
)

// Normalizer removes a fixed, ordered list of boilerplate patterns.
// It is safe for concurrent use.
type Normalizer struct {
	patterns []*regexp.Regexp
}

// New compiles patterns as case-insensitive, multiline expressions.
// A malformed pattern is a configuration error.
func New(patterns []string) (*Normalizer, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile("(?im)" + p)
		if err != nil {
			return nil, fmt.Errorf("compiling boilerplate pattern %d %q: %w", i, p, err)
		}
		compiled = append(compiled, re)
	}
	return &Normalizer{patterns: compiled}, nil
}

// Normalize removes boilerplate, collapses blank-line runs into a single
// blank line, collapses spaces and tabs, and trims the result.
//
// The pass repeats until the text is stable, so whitespace collapsing that
// brings a boilerplate line into matching shape is handled in the same call
// and Normalize(Normalize(t)) == Normalize(t). A pass that changes the text
// either shortens it or turns a tab into a space, so the loop terminates.
func (n *Normalizer) Normalize(text string) string {
	for {
		next := n.pass(text)
		if next == text {
			return next
		}
		text = next
	}
}

func (n *Normalizer) pass(text string) string {
	for _, re := range n.patterns {
		text = re.ReplaceAllLiteralString(text, "")
	}
	text = blankLines.ReplaceAllLiteralString(text, "\n\n")
	text = spaceRuns.ReplaceAllLiteralString(text, " ")
	return strings.TrimSpace(text)
}
