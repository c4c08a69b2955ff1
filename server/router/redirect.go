// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

// The code in this file redirects query-parameter style URLs to path style.
//
// Add more redirects in (*Router).DefineRoutes

package router

import (
	"net/http"

	"codeberg.org/msgrate/msgrate/server/utils"
)

// redirectWithQueryParam is a helper function to redirect requests to
// a target path while preserving the specified query parameter.
//
// Example:   /message?id=<id>   ->   /message/<id>
func redirectWithQueryParam(targetPath, preservedParam string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, targetPath+utils.GetQueryParam(r, preservedParam), http.StatusPermanentRedirect)
	}
}
