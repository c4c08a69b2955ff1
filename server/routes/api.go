// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"codeberg.org/msgrate/msgrate/server/utils"
)

// messagePayload is the JSON shape of a message.
type messagePayload struct {
	ID           string               `json:"id"`
	Level        string               `json:"level"`
	Text         string               `json:"text"`
	Placeholders []placeholderPayload `json:"placeholders"`
	Permalink    string               `json:"permalink"`
	Ratings      []ratingPayload      `json:"ratings"`
}

type placeholderPayload struct {
	Index   int    `json:"index"`
	Type    string `json:"type,omitempty"`
	Comment string `json:"comment,omitempty"`
}

type ratingPayload struct {
	Rater string   `json:"rater"`
	Tags  []string `json:"tags"`
	None  bool     `json:"none"`
	Date  string   `json:"date"`
}

// MessageJSON returns a message and its ratings as JSON.
func MessageJSON(w http.ResponseWriter, r *http.Request) error {
	id := utils.GetPathVar(r, "id")

	m, ok := messageCatalogue.Get(id)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)

		return json.NewEncoder(w).Encode(map[string]string{"error": "unknown message: " + id})
	}

	ratings, err := ratingStore.ListRatings(r.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to list ratings: %w", err)
	}

	payload := messagePayload{
		ID:           m.Name,
		Level:        m.Level(),
		Text:         m.String(),
		Placeholders: make([]placeholderPayload, 0, len(m.Placeholders())),
		Permalink:    messageCatalogue.Source().Permalink(),
		Ratings:      make([]ratingPayload, 0, len(ratings)),
	}

	for _, p := range m.Placeholders() {
		payload.Placeholders = append(payload.Placeholders, placeholderPayload{
			Index:   p.Index,
			Type:    p.Type,
			Comment: p.Comment,
		})
	}

	for _, rating := range ratings {
		payload.Ratings = append(payload.Ratings, ratingPayload{
			Rater: rating.Rater,
			Tags:  rating.Tags,
			None:  rating.None(),
			Date:  rating.Date.UTC().Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")

	return json.NewEncoder(w).Encode(payload)
}
