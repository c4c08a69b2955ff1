// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package properties parses javac's compiler.properties message catalogue,
including the "stylized comments" that declare types and comments for the
numbered placeholders.
*/
package properties

import (
	"sort"
	"strconv"
	"strings"
)

// Placeholder is a substitutable value within a message template, e.g. {0}.
type Placeholder struct {
	// Index is the logical argument position.
	Index int

	// Type is the declared placeholder type from the annotation comment
	// ("symbol", "type", "message segment", ...), or "" when undeclared.
	Type string

	// Comment is the free-form description from a "# {0} - ..." comment
	// line above the annotation, or "".
	Comment string
}

// String renders the placeholder the way it appears in the template.
func (p Placeholder) String() string {
	return "{" + strconv.Itoa(p.Index) + "}"
}

// Component is one piece of a message template: either literal text or a
// placeholder.
type Component struct {
	// Text is the literal text. Meaningful only when Placeholder is nil.
	Text string

	// Placeholder is set when this component is a placeholder.
	Placeholder *Placeholder
}

// IsPlaceholder reports whether the component is a placeholder.
func (c Component) IsPlaceholder() bool {
	return c.Placeholder != nil
}

// String renders the component as it appears in the template.
func (c Component) String() string {
	if c.Placeholder != nil {
		return c.Placeholder.String()
	}

	return c.Text
}

// Message is one possible diagnostic declared in compiler.properties.
type Message struct {
	// Name is the property key, e.g. "compiler.err.cant.resolve".
	Name string

	// Components is the ordered template: literal text interleaved with
	// placeholders.
	Components []Component
}

// Level returns the severity segment of the name: the second dotted
// component ("err", "warn", "misc", ...).
func (m Message) Level() string {
	parts := strings.Split(m.Name, ".")
	if len(parts) < 2 {
		return ""
	}

	return parts[1]
}

// IsError reports whether this is an error-level message.
func (m Message) IsError() bool {
	return strings.HasPrefix(m.Name, "compiler.err.")
}

// Placeholders returns the unique placeholders sorted by logical index.
//
// Placeholders are stored by their position in the message, but callers want
// them accessible by index; a placeholder repeated in the template appears
// once.
func (m Message) Placeholders() []Placeholder {
	unique := make(map[int]Placeholder)

	for _, c := range m.Components {
		if c.Placeholder != nil {
			unique[c.Placeholder.Index] = *c.Placeholder
		}
	}

	out := make([]Placeholder, 0, len(unique))
	for _, p := range unique {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })

	return out
}

// String renders the whole template, placeholders as {N}.
func (m Message) String() string {
	var b strings.Builder

	for _, c := range m.Components {
		b.WriteString(c.String())
	}

	return b.String()
}

// LiteralText returns the literal (non-placeholder) text of the template with
// whitespace runs collapsed to single spaces. Used to build search queries.
func (m Message) LiteralText() string {
	var pieces []string

	for _, c := range m.Components {
		if c.Placeholder == nil {
			pieces = append(pieces, c.Text)
		}
	}

	return strings.Join(strings.Fields(strings.Join(pieces, " ")), " ")
}
