// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"codeberg.org/msgrate/msgrate/core/ratingform"
	"codeberg.org/msgrate/msgrate/core/tags"
)

// BuildRatingForm maps a selection onto the checkbox and submit states the
// rating form renders.
//
// The plan only ever disables controls; checked state always reflects the
// selection as the client sent it.
func BuildRatingForm(action string, selection ratingform.Selection, catalogue []tags.Tag) RatingFormData {
	plan := ratingform.Reconcile(selection, catalogue)

	data := RatingFormData{
		Action:         action,
		NoneField:      ratingform.NoneField,
		NoneChecked:    selection.None,
		NoneDisabled:   !plan.NoneEnabled,
		SubmitDisabled: !plan.SubmitEnabled,
	}

	data.Tags = make([]TagCheckbox, 0, len(catalogue))
	for _, tag := range catalogue {
		data.Tags = append(data.Tags, TagCheckbox{
			ID:       tag.ID,
			Label:    tag.Label,
			Field:    ratingform.TagFieldPrefix + tag.ID,
			Checked:  selection.Has(tag.ID),
			Disabled: !plan.TagEnabled[tag.ID],
		})
	}

	return data
}
