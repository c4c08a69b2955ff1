// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package ratingform keeps the per-message rating form in one of three
consistent states and keeps the submit control's enabled-ness consistent
with whether the current selection can be meaningfully submitted.

The state machine is pure: a Selection comes in, a ControlPlan comes out.
Adapters (the detail page renderer, the no-JS fragment endpoint, and the
client-side script) apply the plan to the actual controls.
*/
package ratingform

import (
	"net/url"
	"strings"

	"codeberg.org/msgrate/msgrate/core/tags"
)

// Form field names understood by the submission target.
const (
	// TagFieldPrefix prefixes each tag checkbox name, e.g. "tag-jargon".
	TagFieldPrefix = "tag-"

	// NoneField is the name of the "none of the above" checkbox.
	NoneField = "none"
)

// Selection is the set of tag IDs currently checked by the user, plus the
// "none of the above" flag. It exists only for the lifetime of a page view
// and is decoded from form data on every change event.
type Selection struct {
	// Tags holds the checked tag IDs in the order they appeared in the form.
	Tags []string

	// None reports whether the "none of the above" checkbox is checked.
	None bool
}

// AnyTag reports whether at least one tag checkbox is checked.
func (s Selection) AnyTag() bool {
	return len(s.Tags) > 0
}

// Has reports whether the tag with the given ID is checked.
func (s Selection) Has(id string) bool {
	for _, t := range s.Tags {
		if t == id {
			return true
		}
	}

	return false
}

// State is the derived state of the rating form. Exactly one holds at a time.
type State int

const (
	// Indeterminate covers "nothing selected yet" and the residual
	// "both a tag and none-of-the-above are checked" case. Submission is
	// gated; all checkboxes stay interactive so the user can resolve it.
	Indeterminate State = iota

	// OnlyTagsSelected: at least one tag is checked and "none" is not.
	OnlyTagsSelected

	// OnlyNoneSelected: "none" is checked and no tag is.
	OnlyNoneSelected
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case OnlyTagsSelected:
		return "only-tags-selected"
	case OnlyNoneSelected:
		return "only-none-selected"
	default:
		return "indeterminate"
	}
}

// Derive computes the form state from a selection.
//
// Precedence:
//  1. anyTagChecked && !noneChecked  -> OnlyTagsSelected
//  2. noneChecked && !anyTagChecked  -> OnlyNoneSelected
//  3. otherwise                      -> Indeterminate
//
// Case 3 is reachable with both flags set because disabling a checkbox does
// not uncheck it; the controller never force-unchecks controls, it only
// prevents further inconsistent input and gates submission.
func Derive(s Selection) State {
	anyTag := s.AnyTag()

	switch {
	case anyTag && !s.None:
		return OnlyTagsSelected
	case s.None && !anyTag:
		return OnlyNoneSelected
	default:
		return Indeterminate
	}
}

// ControlPlan is the full desired enabled/disabled state of every control in
// the form. It is applied as an idempotent overwrite, never as a delta.
//
// A disabled checkbox always carries both the native disabled attribute and
// the presentation class; renderers derive both from the same field so the
// two cannot fall out of sync.
type ControlPlan struct {
	// SubmitEnabled gates the submit button.
	SubmitEnabled bool

	// NoneEnabled gates the "none of the above" checkbox.
	NoneEnabled bool

	// TagEnabled maps each tag ID to its checkbox's enabled-ness.
	TagEnabled map[string]bool
}

// Reconcile derives the state for a selection and returns the control plan
// for it, covering every tag in the catalogue.
//
//	State             Submit    "None" checkbox    Tag checkboxes
//	Indeterminate     disabled  enabled            all enabled
//	OnlyNoneSelected  enabled   enabled            all disabled
//	OnlyTagsSelected  enabled   disabled           all enabled
func Reconcile(s Selection, catalogue []tags.Tag) ControlPlan {
	state := Derive(s)

	plan := ControlPlan{
		SubmitEnabled: state != Indeterminate,
		NoneEnabled:   state != OnlyTagsSelected,
		TagEnabled:    make(map[string]bool, len(catalogue)),
	}

	for _, tag := range catalogue {
		plan.TagEnabled[tag.ID] = state != OnlyNoneSelected
	}

	return plan
}

// ParseSelection decodes a Selection from submitted form values.
//
// A tag checkbox is checked when a "tag-<id>" field is present; "none" is
// checked when the "none" field is present. Browsers send checkboxes as
// "on", but any value counts as present. Fields that don't name a catalogue
// tag are ignored so that a stray form field can't invent a tag.
func ParseSelection(form url.Values, catalogue []tags.Tag) Selection {
	var s Selection

	for _, tag := range catalogue {
		if _, ok := form[TagFieldPrefix+tag.ID]; ok {
			s.Tags = append(s.Tags, tag.ID)
		}
	}

	if _, ok := form[NoneField]; ok {
		s.None = true
	}

	return s
}

// FieldTag returns the tag ID for a form field name, or "" when the field
// is not a tag checkbox.
func FieldTag(name string) string {
	if !strings.HasPrefix(name, TagFieldPrefix) {
		return ""
	}

	return strings.TrimPrefix(name, TagFieldPrefix)
}
