// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"errors"
	"fmt"
	"net/http"

	"codeberg.org/msgrate/msgrate/core/catalogue"
	"codeberg.org/msgrate/msgrate/core/properties"
	"codeberg.org/msgrate/msgrate/server/utils"
)

// NextMessage redirects to the message after the given one, wrapping around
// at the end of the catalogue.
func NextMessage(w http.ResponseWriter, r *http.Request) error {
	return seekMessage(w, r, messageCatalogue.Next)
}

// PreviousMessage redirects to the message before the given one, wrapping
// around at the start of the catalogue.
func PreviousMessage(w http.ResponseWriter, r *http.Request) error {
	return seekMessage(w, r, messageCatalogue.Previous)
}

func seekMessage(
	w http.ResponseWriter,
	r *http.Request,
	seek func(string) (properties.Message, error),
) error {
	id := utils.GetPathVar(r, "id")

	target, err := seek(id)
	if err != nil {
		if errors.Is(err, catalogue.ErrUnknownMessage) {
			return renderMessageNotFound(w, r, id)
		}

		return fmt.Errorf("failed to seek from %q: %w", id, err)
	}

	http.Redirect(w, r, "/message/"+target.Name, http.StatusSeeOther)

	return nil
}
