// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package commondata

import (
	"net/http"
	"slices"

	"codeberg.org/msgrate/msgrate/config"
	"codeberg.org/msgrate/msgrate/server/utils"
)

// PageCommonData holds common variables accessible in templates and handlers.
//
// It is automatically populated for each request and attached to the
// requestcontext.RequestContext.
//
// Usage:
//
//	// In an HTTP handler:
//	rc := requestcontext.FromRequest(r)
//	cd := rc.CommonData
//	// Now you can access fields like cd.BaseURL, cd.Rater, etc.
type PageCommonData struct {
	// BaseURL is the origin URL (scheme + host) of the current request.
	BaseURL string

	// CurrentPath is the URL path from request (e.g., "/message/compiler.err.error").
	CurrentPath string

	// CurrentPathWithParams is the full request URI including query parameters.
	CurrentPathWithParams string

	// Queries is the URL query parameters (first value only for each key).
	Queries map[string]string

	// Rater is the rater whose ratings the request reads and writes.
	Rater string

	// Version is the tagged release the binary was built from.
	Version string

	// Revision is the VCS revision the binary was built from.
	Revision string

	// RepoURL is the project repository shown in page footers.
	RepoURL string

	// StartingTime records when this instance started, for the about page.
	StartingTime string
}

// PopulatePageCommonData fills the PageCommonData struct from the request.
func PopulatePageCommonData(r *http.Request, data *PageCommonData) {
	data.BaseURL = utils.GetOriginFromRequest(r)
	data.CurrentPath = r.URL.Path
	data.CurrentPathWithParams = r.URL.RequestURI()

	data.Queries = make(map[string]string)

	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			data.Queries[k] = v[0]
		}
	}

	// A rater override only applies when the name is actually configured.
	data.Rater = config.Global.Rating.DefaultRater
	if requested := utils.GetQueryParam(r, "rater"); requested != "" {
		if slices.Contains(config.Global.Rating.Raters, requested) {
			data.Rater = requested
		}
	}

	data.Version = config.BuildVersion
	data.Revision = config.Global.Build.Revision()
	data.RepoURL = config.Global.Instance.RepoURL
	data.StartingTime = config.Global.Instance.StartingTime
}
