// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/msgrate/msgrate/core/ratingform"
	"codeberg.org/msgrate/msgrate/core/tags"
)

var testTags = []tags.Tag{
	{ID: "soup", Label: "Token Soup"},
	{ID: "cascade", Label: "Cascading Error"},
}

func renderDoc(t *testing.T, rn Renderer) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer

	require.NoError(t, rn.Render(context.Background(), &buf))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	return doc
}

// hasAttr reports whether the first match of selector carries the attribute.
func hasAttr(doc *goquery.Document, selector, attr string) bool {
	sel := doc.Find(selector).First()
	_, ok := sel.Attr(attr)

	return ok
}

func TestRatingFormEmptySelection(t *testing.T) {
	t.Parallel()

	form := BuildRatingForm("/message/compiler.err.error/rating", ratingform.Selection{}, testTags)
	doc := renderDoc(t, RatingForm(form))

	// Nothing is checked and nothing but submit is disabled.
	assert.False(t, hasAttr(doc, `input[name="tag-soup"]`, "checked"))
	assert.False(t, hasAttr(doc, `input[name="tag-soup"]`, "disabled"))
	assert.False(t, hasAttr(doc, `input[name="none"]`, "checked"))
	assert.False(t, hasAttr(doc, `input[name="none"]`, "disabled"))
	assert.True(t, hasAttr(doc, `button[type="submit"]`, "disabled"))
}

func TestRatingFormNoneSelected(t *testing.T) {
	t.Parallel()

	form := BuildRatingForm("/message/compiler.err.error/rating",
		ratingform.Selection{None: true}, testTags)
	doc := renderDoc(t, RatingForm(form))

	assert.True(t, hasAttr(doc, `input[name="none"]`, "checked"))
	assert.True(t, hasAttr(doc, `input[name="tag-soup"]`, "disabled"))
	assert.True(t, hasAttr(doc, `input[name="tag-cascade"]`, "disabled"))
	assert.False(t, hasAttr(doc, `button[type="submit"]`, "disabled"))

	// Disabled checkboxes present themselves as such.
	assert.True(t, doc.Find("label.tag-option").First().HasClass("is-disabled"))
}

func TestRatingFormTagSelected(t *testing.T) {
	t.Parallel()

	form := BuildRatingForm("/message/compiler.err.error/rating",
		ratingform.Selection{Tags: []string{"soup"}}, testTags)
	doc := renderDoc(t, RatingForm(form))

	assert.True(t, hasAttr(doc, `input[name="tag-soup"]`, "checked"))
	assert.False(t, hasAttr(doc, `input[name="tag-cascade"]`, "disabled"))
	assert.True(t, hasAttr(doc, `input[name="none"]`, "disabled"))
	assert.False(t, hasAttr(doc, `button[type="submit"]`, "disabled"))
	assert.True(t, doc.Find("label.none-option").HasClass("is-disabled"))
}

func TestRatingFormNotice(t *testing.T) {
	t.Parallel()

	form := BuildRatingForm("/message/compiler.err.error/rating", ratingform.Selection{}, testTags)
	form.Notice = "select a problem or none, then save"

	doc := renderDoc(t, RatingForm(form))

	assert.Equal(t, "select a problem or none, then save", doc.Find(".form-notice").Text())
}

func TestMessageDetailRendersComponents(t *testing.T) {
	t.Parallel()

	data := MessageDetailData{
		Title:   "compiler.err.cant.apply.symbol",
		ID:      "compiler.err.cant.apply.symbol",
		Level:   "err",
		IsError: true,
		Components: []ComponentData{
			{Text: "incompatible types: "},
			{IsPlaceholder: true, Index: 0, Type: "type"},
			{Text: " cannot be converted to "},
			{IsPlaceholder: true, Index: 1, Type: "type"},
		},
		Placeholders: []PlaceholderData{
			{Index: 0, Type: "type"},
			{Index: 1, Type: "type"},
		},
		PreviousURL:      "/previous-message/compiler.err.cant.apply.symbol",
		NextURL:          "/next-message/compiler.err.cant.apply.symbol",
		Permalink:        "https://github.com/openjdk/jdk/blob/abc/compiler.properties",
		StackOverflowURL: "https://stackoverflow.com/search?q=%5Bjava%5D+incompatible+types",
		Form:             BuildRatingForm("/message/compiler.err.cant.apply.symbol/rating", ratingform.Selection{}, testTags),
	}

	doc := renderDoc(t, MessageDetail(data))

	assert.Equal(t, 2, doc.Find("blockquote .placeholder").Length())
	assert.Equal(t, "{0}", doc.Find("blockquote .placeholder").First().Text())
	assert.Contains(t, doc.Find("blockquote").Text(), "incompatible types: ")

	prev, _ := doc.Find(`a[rel="prev"]`).Attr("href")
	assert.Equal(t, "/previous-message/compiler.err.cant.apply.symbol", prev)

	next, _ := doc.Find(`a[rel="next"]`).Attr("href")
	assert.Equal(t, "/next-message/compiler.err.cant.apply.symbol", next)

	action, _ := doc.Find("form.rating-form").Attr("action")
	assert.Equal(t, "/message/compiler.err.cant.apply.symbol/rating", action)
}

func TestIndexListsMessages(t *testing.T) {
	t.Parallel()

	data := IndexData{
		Title: "Compiler messages",
		Messages: []IndexMessage{
			{ID: "compiler.err.error", Level: "err", Text: "error: ", Rated: true},
			{ID: "compiler.warn.warning", Level: "warn", Text: "warning: "},
		},
		RatedCount: 1,
	}

	doc := renderDoc(t, Index(data))

	assert.Equal(t, 2, doc.Find("tbody tr").Length())

	href, _ := doc.Find("tbody a").First().Attr("href")
	assert.Equal(t, "/message/compiler.err.error", href)

	assert.Contains(t, doc.Find(".summary").Text(), "1 of 2")
}
