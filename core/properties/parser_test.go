// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package properties

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kitchenSink exercises the parsing cases found in the real catalogue:
//   - multiple, complex placeholder declarations
//   - a message with an erroneous line extender (`\` at the end of the line)
//   - a message with no placeholders
//   - a message with a comment, but no placeholder declarations
//   - a message with placeholders, but no placeholder declarations
//   - a message with a \uXXXX escape
//   - placeholders with comments (in parentheses and in {N} lines)
//   - doubled single quotes
const kitchenSink = `
# 0: symbol kind, 1: name, 2: list of type or message segment, 3: list of type or message segment, 4: symbol kind, 5: type, 6: message segment
compiler.misc.cant.apply.symbol=\
    {0} {1} in {4} {5} cannot be applied to given types\n\
    required: {2}\n\
    found:    {3}\n\
    reason: {6}

# 0: fragment
compiler.err.local.classes.cant.extend.sealed=\
    {0} classes must not extend sealed classes\

compiler.misc.anonymous=\
    anonymous

# TODO 308: make a better error message
compiler.err.this.as.identifier=\
    as of release 8, ''this'' is allowed as the parameter name for the receiver type only\n\
    which has to be the first parameter, and cannot be a lambda parameter

compile.misc.fake.message=syntax error

compiler.misc.bad.const.pool.tag=\
    bad constant pool tag: {0}

## All errors which do not refer to a particular line in the source code are
## preceded by this string.
compiler.err.error=\
    error:\u0020

# 0: message segment (feature), 1: string (found version), 2: string (expected version)
compiler.err.feature.not.supported.in.source=\
   {0} is not supported in -source {1}\n\
    (use -source {2} or higher to enable {0})

# {0} - package in which the invisible class is declared
# {1} - module in which {0} is declared
# 0: symbol, 1: symbol
compiler.misc.not.def.access.does.not.read.from.unnamed=\
    package {0} is declared in module {1}, which is not in the module graph

compiler.err.else.without.if=\
    ''else'' without ''if''

# 0: symbol
compiler.err.icls.cant.have.static.decl.fake=\
    modifier \''static\'' is only allowed in constant variable declarations
`

const kitchenSinkCount = 11

func parseKitchenSink(t *testing.T) map[string]Message {
	t.Helper()

	messages, err := Parse(strings.NewReader(kitchenSink), "<example>")
	require.NoError(t, err)
	require.Len(t, messages, kitchenSinkCount)

	byName := make(map[string]Message, len(messages))
	for _, m := range messages {
		byName[m.Name] = m
	}

	require.Len(t, byName, kitchenSinkCount)

	return byName
}

func TestParseKitchenSink(t *testing.T) {
	t.Parallel()

	byName := parseKitchenSink(t)

	// A simple message converts to a string.
	assert.Equal(t, "anonymous", byName["compiler.misc.anonymous"].String())

	// A single placeholder, including a stray trailing line extender.
	m := byName["compiler.err.local.classes.cant.extend.sealed"]
	assert.Equal(t, "{0} classes must not extend sealed classes", m.String())
	require.Len(t, m.Placeholders(), 1)
	assert.Equal(t, "fragment", m.Placeholders()[0].Type)

	// Multiple placeholders keep their declared types, sorted by index.
	m = byName["compiler.misc.cant.apply.symbol"]
	ph := m.Placeholders()
	require.Len(t, ph, 7)
	assert.Equal(t, "symbol kind", ph[0].Type)
	assert.Equal(t, "name", ph[1].Type)
	assert.Equal(t, "symbol kind", ph[4].Type)
	assert.Equal(t, "type", ph[5].Type)
	assert.Equal(t, "message segment", ph[6].Type)

	// \uXXXX escapes decode, including a trailing space.
	assert.Equal(t, "error: ", byName["compiler.err.error"].String())

	// A comment that is not an annotation declares nothing.
	assert.Empty(t, byName["compiler.err.this.as.identifier"].Placeholders())

	// Placeholders without declarations get an untyped placeholder.
	m = byName["compiler.misc.bad.const.pool.tag"]
	require.Len(t, m.Placeholders(), 1)
	assert.Equal(t, "", m.Placeholders()[0].Type)

	// A value that does not spill onto the next line.
	assert.Equal(t, "syntax error", byName["compile.misc.fake.message"].String())
}

func TestParsePlaceholderComments(t *testing.T) {
	t.Parallel()

	byName := parseKitchenSink(t)

	// Parenthesized comments in the declaration line.
	ph := byName["compiler.err.feature.not.supported.in.source"].Placeholders()
	require.Len(t, ph, 3)
	assert.Equal(t, "message segment", ph[0].Type)
	assert.Equal(t, "feature", ph[0].Comment)
	assert.Equal(t, "string", ph[1].Type)
	assert.Equal(t, "found version", ph[1].Comment)
	assert.Equal(t, "string", ph[2].Type)
	assert.Equal(t, "expected version", ph[2].Comment)

	// Comments parsed from the {N} lines above the annotation.
	ph = byName["compiler.misc.not.def.access.does.not.read.from.unnamed"].Placeholders()
	require.Len(t, ph, 2)
	assert.Equal(t, "symbol", ph[0].Type)
	assert.Equal(t, "package in which the invisible class is declared", ph[0].Comment)
	assert.Equal(t, "symbol", ph[1].Type)
	assert.Equal(t, "module in which {0} is declared", ph[1].Comment)
}

func TestParseSingleQuotes(t *testing.T) {
	t.Parallel()

	byName := parseKitchenSink(t)

	assert.Equal(t, "'else' without 'if'", byName["compiler.err.else.without.if"].String())
	assert.Equal(t,
		"modifier 'static' is only allowed in constant variable declarations",
		byName["compiler.err.icls.cant.have.static.decl.fake"].String())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "junk line",
			input: "!! not a property\n",
		},
		{
			name:  "property without equals",
			input: "#\ncompiler.err.broken\n",
		},
		{
			name:  "unknown escape",
			input: "compiler.err.bad.escape=\\\n    an unknown \\q escape\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(strings.NewReader(tt.input), "broken.properties")
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, "broken.properties", parseErr.Filename)
			assert.NotZero(t, parseErr.LineNo)
		})
	}
}

func TestMessageAccessors(t *testing.T) {
	t.Parallel()

	byName := parseKitchenSink(t)

	m := byName["compiler.err.else.without.if"]
	assert.Equal(t, "err", m.Level())
	assert.True(t, m.IsError())

	m = byName["compiler.misc.anonymous"]
	assert.Equal(t, "misc", m.Level())
	assert.False(t, m.IsError())

	m = byName["compiler.misc.bad.const.pool.tag"]
	assert.Equal(t, "bad constant pool tag:", m.LiteralText())
}

func TestParseErrorMessageFormat(t *testing.T) {
	t.Parallel()

	err := &ParseError{
		Filename:   "compiler.properties",
		LineNo:     7,
		Line:       "?",
		Production: "item",
		Message:    "Parse error",
	}

	assert.Contains(t, err.Error(), "compiler.properties:7: Parse error")
	assert.Contains(t, err.Error(), "(while parsing item)")
}
