// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"codeberg.org/msgrate/msgrate/core/catalogue"
	"codeberg.org/msgrate/msgrate/core/properties"
	"codeberg.org/msgrate/msgrate/core/ratingform"
	"codeberg.org/msgrate/msgrate/core/store"
	"codeberg.org/msgrate/msgrate/server/request_context"
	"codeberg.org/msgrate/msgrate/server/template/commondata"
	"codeberg.org/msgrate/msgrate/server/utils"
	"codeberg.org/msgrate/msgrate/views"
)

// MessagePage renders a single message with its rating form.
func MessagePage(w http.ResponseWriter, r *http.Request) error {
	rc := request_context.FromRequest(r)
	id := utils.GetPathVar(r, "id")

	m, ok := messageCatalogue.Get(id)
	if !ok {
		return renderMessageNotFound(w, r, id)
	}

	// An existing rating pre-fills the form.
	selection := ratingform.Selection{}
	ratedAt := ""

	rating, err := ratingStore.GetRating(r.Context(), rc.CommonData.Rater, id)

	switch {
	case err == nil:
		selection = ratingform.Selection{Tags: rating.Tags, None: rating.None()}
		ratedAt = rating.Date.Format(time.DateOnly)
	case errors.Is(err, store.ErrNotFound):
		// first visit, leave the form empty
	default:
		return fmt.Errorf("failed to load rating: %w", err)
	}

	return views.MessageDetail(messageDetailData(rc.CommonData, m, selection, ratedAt, "")).
		Render(r.Context(), w)
}

// messageDetailData assembles the full detail page model for a message.
func messageDetailData(
	common commondata.PageCommonData,
	m properties.Message,
	selection ratingform.Selection,
	ratedAt string,
	notice string,
) views.MessageDetailData {
	form := views.BuildRatingForm(ratingAction(m.Name), selection, tagCatalogue)
	form.RefreshAction = formAction(m.Name)
	form.RatedAt = ratedAt
	form.Notice = notice

	return views.MessageDetailData{
		Title:        m.Name,
		ID:           m.Name,
		Level:        m.Level(),
		IsError:      m.IsError(),
		Components:   components(m),
		Placeholders: placeholders(m),

		PreviousURL:      "/previous-message/" + m.Name,
		NextURL:          "/next-message/" + m.Name,
		Permalink:        messageCatalogue.Source().Permalink(),
		StackOverflowURL: catalogue.StackOverflowSearchURL(m),
		JDKVersion:       messageCatalogue.Source().JDKVersion,

		Form:   form,
		Common: common,
	}
}

// ratingAction is the form submission URL for a message.
func ratingAction(id string) string {
	return "/message/" + id + "/rating"
}

// formAction is the no-JavaScript form re-render URL for a message.
func formAction(id string) string {
	return "/message/" + id + "/form"
}

// renderMessageNotFound writes the themed 404 page for unknown message IDs.
func renderMessageNotFound(w http.ResponseWriter, r *http.Request, id string) error {
	rc := request_context.FromRequest(r)

	w.WriteHeader(http.StatusNotFound)

	pageData := views.MessageNotFoundData{
		Title:     "Message not found",
		MessageID: id,
		Common:    rc.CommonData,
	}

	return views.MessageNotFound(pageData).Render(r.Context(), w)
}

// components maps parsed message pieces to their view form.
func components(m properties.Message) []views.ComponentData {
	out := make([]views.ComponentData, 0, len(m.Components))

	for _, c := range m.Components {
		if c.IsPlaceholder() {
			out = append(out, views.ComponentData{
				IsPlaceholder: true,
				Index:         c.Placeholder.Index,
				Type:          c.Placeholder.Type,
				Comment:       c.Placeholder.Comment,
			})
		} else {
			out = append(out, views.ComponentData{Text: c.Text})
		}
	}

	return out
}

// placeholders maps the distinct placeholders to their legend entries.
func placeholders(m properties.Message) []views.PlaceholderData {
	distinct := m.Placeholders()
	out := make([]views.PlaceholderData, 0, len(distinct))

	for _, p := range distinct {
		out = append(out, views.PlaceholderData{
			Index:   p.Index,
			Type:    p.Type,
			Comment: p.Comment,
		})
	}

	return out
}
