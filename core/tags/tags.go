// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package tags defines the qualitative rating categories attachable to a
diagnostic message.

The catalogue is order-preserving: insertion order is display order.
*/
package tags

// Tag is one rating category. Immutable, defined by configuration, never
// user-created.
type Tag struct {
	// ID is the identifier used in form field names ("tag-<id>") and in
	// stored ratings.
	ID string `yaml:"id"`

	// Label is the human-readable name shown next to the checkbox.
	Label string `yaml:"label"`
}

// Defaults returns the built-in tag catalogue.
func Defaults() []Tag {
	return []Tag{
		{ID: "soup", Label: "Token Soup"},
		{ID: "suggestion", Label: "Implicit Suggestion"},
		{ID: "cascade", Label: "Cascading Error"},
		{ID: "compilerspeak", Label: "Compiler-speak"},
		{ID: "conflict", Label: "One-sided conflict"},
		{ID: "illegal", Label: "Illegal Vocabulary"},
	}
}

// Lookup returns the tag with the given ID from the catalogue.
func Lookup(catalogue []Tag, id string) (Tag, bool) {
	for _, t := range catalogue {
		if t.ID == id {
			return t, true
		}
	}

	return Tag{}, false
}
