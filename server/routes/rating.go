// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"codeberg.org/msgrate/msgrate/config"
	"codeberg.org/msgrate/msgrate/core/ratingform"
	"codeberg.org/msgrate/msgrate/core/store"
	"codeberg.org/msgrate/msgrate/server/request_context"
	"codeberg.org/msgrate/msgrate/server/utils"
	"codeberg.org/msgrate/msgrate/views"
)

// indeterminateNotice explains why a submission was rejected.
const indeterminateNotice = "Pick at least one problem, or confirm that nothing is wrong."

// SubmitRating saves a rating and moves the rater along to the next message.
//
// A selection that is neither tags-only nor none-only is rejected with 422
// and the form is re-rendered as submitted, nothing unchecked.
func SubmitRating(w http.ResponseWriter, r *http.Request) error {
	rc := request_context.FromRequest(r)
	id := utils.GetPathVar(r, "id")

	m, ok := messageCatalogue.Get(id)
	if !ok {
		return renderMessageNotFound(w, r, id)
	}

	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("failed to parse rating form: %w", err)
	}

	selection := ratingform.ParseSelection(r.PostForm, tagCatalogue)

	if ratingform.Derive(selection) == ratingform.Indeterminate {
		w.WriteHeader(http.StatusUnprocessableEntity)

		return views.MessageDetail(
			messageDetailData(rc.CommonData, m, selection, "", indeterminateNotice),
		).Render(r.Context(), w)
	}

	rating := store.Rating{
		Rater:     submittedRater(r, rc.CommonData.Rater),
		MessageID: id,
		Tags:      selection.Tags,
		Date:      time.Now().UTC(),
	}

	if err := ratingStore.SaveRating(r.Context(), rating); err != nil {
		return fmt.Errorf("failed to save rating: %w", err)
	}

	// On to the next message.
	next, err := messageCatalogue.Next(id)
	if err != nil {
		return fmt.Errorf("failed to find next message: %w", err)
	}

	http.Redirect(w, r, "/message/"+next.Name, http.StatusSeeOther)

	return nil
}

// submittedRater honors an optional "rater" form field when it names a
// configured rater, falling back to the request's rater otherwise.
func submittedRater(r *http.Request, fallback string) string {
	requested := r.PostForm.Get("rater")
	if requested != "" && slices.Contains(config.Global.Rating.Raters, requested) {
		return requested
	}

	return fallback
}

// RatingFormPartial re-renders the rating form fragment for the submitted
// selection without saving anything. It is the no-JavaScript fallback for
// control reconciliation.
func RatingFormPartial(w http.ResponseWriter, r *http.Request) error {
	rc := request_context.FromRequest(r)
	id := utils.GetPathVar(r, "id")

	m, ok := messageCatalogue.Get(id)
	if !ok {
		return renderMessageNotFound(w, r, id)
	}

	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("failed to parse rating form: %w", err)
	}

	selection := ratingform.ParseSelection(r.PostForm, tagCatalogue)

	return views.MessageDetail(messageDetailData(rc.CommonData, m, selection, "", "")).
		Render(r.Context(), w)
}
