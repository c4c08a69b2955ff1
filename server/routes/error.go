// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/msgrate/msgrate/server/request_context"
	"codeberg.org/msgrate/msgrate/views"
)

// ErrorPage renders an error page.
func ErrorPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	rc := request_context.FromRequest(r)

	pageData := views.ErrorData{
		Title:      "Error",
		Error:      rc.RequestError,
		StatusCode: rc.StatusCode,
		Common:     rc.CommonData,
	}

	_ = views.Error(pageData).Render(r.Context(), w)
}
