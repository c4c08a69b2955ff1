// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"fmt"
	"net/http"

	"codeberg.org/msgrate/msgrate/config"
	"codeberg.org/msgrate/msgrate/server/request_context"
	"codeberg.org/msgrate/msgrate/views"
)

// AboutPage is the handler for the /about page.
func AboutPage(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d",
		int(config.Global.HTTPCache.MaxAge.Seconds()),
		int(config.Global.HTTPCache.StaleWhileRevalidate.Seconds())))

	rc := request_context.FromRequest(r)

	pageData := views.AboutData{
		Title:      "About",
		Version:    config.BuildVersion,
		Revision:   config.Global.Build.Revision(),
		Time:       config.Global.Instance.StartingTime,
		RepoURL:    config.Global.Instance.RepoURL,
		JDKVersion: messageCatalogue.Source().JDKVersion,
		Permalink:  messageCatalogue.Source().Permalink(),
		Common:     rc.CommonData,
	}

	return views.About(pageData).Render(r.Context(), w)
}
