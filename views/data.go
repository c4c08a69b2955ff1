// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"codeberg.org/msgrate/msgrate/server/template/commondata"
)

// ErrorData backs the generic error page.
type ErrorData struct {
	Title      string
	Error      error
	StatusCode int
	Common     commondata.PageCommonData
}

// AboutData backs the /about page.
type AboutData struct {
	Title      string
	Version    string
	Revision   string
	Time       string
	RepoURL    string
	JDKVersion string
	Permalink  string
	Common     commondata.PageCommonData
}

// IndexData backs the message listing page.
type IndexData struct {
	Title      string
	Messages   []IndexMessage
	RatedCount int
	Common     commondata.PageCommonData
}

// IndexMessage is one row of the message listing.
type IndexMessage struct {
	ID    string
	Level string
	Text  string
	Rated bool
}

// ComponentData is one rendered piece of a message template, either literal
// text or a highlighted placeholder.
type ComponentData struct {
	IsPlaceholder bool
	Text          string
	Index         int
	Type          string
	Comment       string
}

// PlaceholderData describes one distinct placeholder for the legend below
// the message.
type PlaceholderData struct {
	Index   int
	Type    string
	Comment string
}

// MessageDetailData backs the message detail page.
type MessageDetailData struct {
	Title        string
	ID           string
	Level        string
	IsError      bool
	Components   []ComponentData
	Placeholders []PlaceholderData

	PreviousURL      string
	NextURL          string
	Permalink        string
	StackOverflowURL string
	JDKVersion       string

	Form   RatingFormData
	Common commondata.PageCommonData
}

// MessageNotFoundData backs the 404 page for unknown message IDs.
type MessageNotFoundData struct {
	Title     string
	MessageID string
	Common    commondata.PageCommonData
}

// TagCheckbox is one tag checkbox in the rating form.
type TagCheckbox struct {
	ID       string
	Label    string
	Field    string
	Checked  bool
	Disabled bool
}

// RatingFormData backs the rating form fragment.
//
// Disabled flags follow the reconciliation rules: the form never unchecks a
// box on the client's behalf, it only disables the controls that would make
// the selection contradictory.
type RatingFormData struct {
	Action string

	// RefreshAction re-renders the form without saving, for clients
	// without JavaScript.
	RefreshAction string

	Tags []TagCheckbox

	NoneField    string
	NoneChecked  bool
	NoneDisabled bool

	SubmitDisabled bool

	// Notice carries a validation message after a rejected submission.
	Notice string

	// RatedAt is the stored rating timestamp shown when re-rating, if any.
	RatedAt string
}
