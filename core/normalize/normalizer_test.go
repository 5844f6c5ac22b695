package normalize

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/pagerag/config"
)

func newDefault(t *testing.T) *Normalizer {
	t.Helper()
	n, err := New(config.DefaultBoilerplatePatterns)
	require.NoError(t, err)
	return n
}

func TestNormalize_RemovesBoilerplate(t *testing.T) {
	n := newDefault(t)

	input := "Article 12 Scoring\n" +
		"Copyright © 12 October 2022 Version 7 by International Pencak Silat Federation (PERSILAT). All rights reserved.\n" +
		"A clean punch scores one point.\n" +
		"No part of this material/publication may be reproduced or published in any manner without the consent in writing.\n" +
		"A sweep scores three points."

	got := n.Normalize(input)

	assert.NotContains(t, got, "Copyright")
	assert.NotContains(t, got, "No part of this material")
	assert.Contains(t, got, "Article 12 Scoring")
	assert.Contains(t, got, "A clean punch scores one point.")
	assert.Contains(t, got, "A sweep scores three points.")
}

func TestNormalize_CaseInsensitive(t *testing.T) {
	n := newDefault(t)

	got := n.Normalize("TABLE OF CONTENTS\nChapter 1 ........ 3")
	assert.Equal(t, "Chapter 1 ........ 3", got)
}

func TestNormalize_Whitespace(t *testing.T) {
	n, err := New(nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims", "  hello  ", "hello"},
		{"collapses spaces and tabs", "a \t  b\t\tc", "a b c"},
		{"collapses blank line runs", "a\n\n\n\nb", "a\n\nb"},
		{"blank lines with whitespace", "a\n  \t \n \nb", "a\n\nb"},
		{"keeps single newline", "a\nb", "a\nb"},
		{"empty", "", ""},
		{"only whitespace", " \n\t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestNormalize_BoilerplateSplitByWhitespace(t *testing.T) {
	n := newDefault(t)

	// The double space only matches the pattern after whitespace collapsing.
	input := "Intro\nNo part of this  material/publication may be reproduced or published in any manner without the consent in writing.\nBody"

	got := n.Normalize(input)
	assert.NotContains(t, got, "No part")
	assert.Equal(t, got, n.Normalize(got))
}

func TestNormalize_Idempotent(t *testing.T) {
	n := newDefault(t)

	property := func(s string) bool {
		once := n.Normalize(s)
		return n.Normalize(once) == once
	}
	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 2000}))

	fixed := []string{
		"\n \t\n",
		"x\n\t \n\ty",
		" Contents \nReal text",
		"a\t\n\t\nb",
	}
	for _, s := range fixed {
		once := n.Normalize(s)
		assert.Equal(t, once, n.Normalize(once), "input %q", s)
	}
}

func TestNew_MalformedPattern(t *testing.T) {
	_, err := New([]string{`ok`, `(broken`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pattern 1")
}
