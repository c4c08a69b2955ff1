// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalogue

import (
	"net/url"

	"codeberg.org/msgrate/msgrate/core/properties"
)

// StackOverflowSearchURL builds a Stack Overflow search for the literal text
// of a message, scoped to the [java] tag. Placeholders are dropped since they
// never appear verbatim in real compiler output.
func StackOverflowSearchURL(m properties.Message) string {
	return "https://stackoverflow.com/search?q=" + url.QueryEscape("[java] "+m.LiteralText())
}
