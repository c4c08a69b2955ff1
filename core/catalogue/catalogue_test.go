// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalogue

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/msgrate/msgrate/core/properties"
)

const testProperties = `compiler.err.first=first {0}
# 0: symbol
compiler.err.second=\
    cannot find symbol {0}

compiler.warn.third=a warning
`

func loadTestCatalogue(t *testing.T, source Source) *Catalogue {
	t.Helper()

	c, err := Load(strings.NewReader(testProperties), "compiler.properties", source)
	require.NoError(t, err)

	return c
}

func TestCatalogueLookup(t *testing.T) {
	t.Parallel()

	c := loadTestCatalogue(t, Source{})

	require.Equal(t, 3, c.Len())
	assert.Equal(t, "compiler.properties", c.Resource())

	m, ok := c.Get("compiler.err.second")
	require.True(t, ok)
	assert.Equal(t, "cannot find symbol {0}", m.String())

	_, ok = c.Get("compiler.err.nope")
	assert.False(t, ok)

	// Declaration order is preserved.
	names := make([]string, 0, c.Len())
	for _, m := range c.Messages() {
		names = append(names, m.Name)
	}

	assert.Equal(t, []string{"compiler.err.first", "compiler.err.second", "compiler.warn.third"}, names)
}

func TestCatalogueSeekWrapsAround(t *testing.T) {
	t.Parallel()

	c := loadTestCatalogue(t, Source{})

	next, err := c.Next("compiler.err.first")
	require.NoError(t, err)
	assert.Equal(t, "compiler.err.second", next.Name)

	// Wrap forward from the last message to the first.
	next, err = c.Next("compiler.warn.third")
	require.NoError(t, err)
	assert.Equal(t, "compiler.err.first", next.Name)

	// Wrap backward from the first message to the last.
	prev, err := c.Previous("compiler.err.first")
	require.NoError(t, err)
	assert.Equal(t, "compiler.warn.third", prev.Name)

	_, err = c.Next("compiler.err.nope")
	assert.ErrorIs(t, err, ErrUnknownMessage)
}

func TestCatalogueHashVerification(t *testing.T) {
	t.Parallel()

	sum := sha256.Sum256([]byte(testProperties))
	good := hex.EncodeToString(sum[:])

	_, err := Load(strings.NewReader(testProperties), "compiler.properties", Source{SHA256: good})
	require.NoError(t, err)

	// Hash comparison is case-insensitive.
	_, err = Load(strings.NewReader(testProperties), "compiler.properties", Source{SHA256: strings.ToUpper(good)})
	require.NoError(t, err)

	_, err = Load(strings.NewReader(testProperties), "compiler.properties", Source{SHA256: strings.Repeat("0", 64)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hash mismatch")
}

func TestCatalogueFileSHA256(t *testing.T) {
	t.Parallel()

	c := loadTestCatalogue(t, Source{})

	sum := sha256.Sum256([]byte(testProperties))
	assert.Equal(t, hex.EncodeToString(sum[:]), c.FileSHA256())
}

func TestCatalogueRejectsDuplicatesAndEmpty(t *testing.T) {
	t.Parallel()

	_, err := New(nil, "compiler.properties", Source{})
	assert.ErrorIs(t, err, ErrEmptyCatalogue)

	dup := []properties.Message{
		{Name: "compiler.err.twice"},
		{Name: "compiler.err.twice"},
	}

	_, err = New(dup, "compiler.properties", Source{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate message")
}

func TestSourcePermalink(t *testing.T) {
	t.Parallel()

	s := Source{CommitSHA: "0f2113cee79b9645105b4753c7d7eacb83b872c2"}

	assert.Equal(t,
		"https://github.com/openjdk/jdk/blob/0f2113cee79b9645105b4753c7d7eacb83b872c2"+
			"/src/jdk.compiler/share/classes/com/sun/tools/javac/resources/compiler.properties",
		s.Permalink())
}

func TestStackOverflowSearchURL(t *testing.T) {
	t.Parallel()

	c := loadTestCatalogue(t, Source{})

	m, ok := c.Get("compiler.err.second")
	require.True(t, ok)

	assert.Equal(t,
		"https://stackoverflow.com/search?q=%5Bjava%5D+cannot+find+symbol",
		StackOverflowSearchURL(m))
}
