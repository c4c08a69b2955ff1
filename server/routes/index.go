// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"fmt"
	"net/http"

	"codeberg.org/msgrate/msgrate/server/request_context"
	"codeberg.org/msgrate/msgrate/views"
)

// IndexPage lists every message in catalogue order with its rating status.
func IndexPage(w http.ResponseWriter, r *http.Request) error {
	rc := request_context.FromRequest(r)

	rated, err := ratingStore.RatedMessages(r.Context(), rc.CommonData.Rater)
	if err != nil {
		return fmt.Errorf("failed to list rated messages: %w", err)
	}

	pageData := views.IndexData{
		Title:      "Compiler messages",
		Messages:   make([]views.IndexMessage, 0, messageCatalogue.Len()),
		RatedCount: len(rated),
		Common:     rc.CommonData,
	}

	for _, m := range messageCatalogue.Messages() {
		_, isRated := rated[m.Name]

		pageData.Messages = append(pageData.Messages, views.IndexMessage{
			ID:    m.Name,
			Level: m.Level(),
			Text:  m.String(),
			Rated: isRated,
		})
	}

	return views.Index(pageData).Render(r.Context(), w)
}
