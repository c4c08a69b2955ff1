// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"strings"
)

// legacyPathRewrites maps retired URL prefixes to their current form.
//
// The first deployments used hyphenated plural paths; bookmarks to those
// still resolve.
var legacyPathRewrites = map[string]string{
	"/messages/": "/message/",
}

// NormalizeURL is a middleware that handles URL normalization by:
// 1. Removing trailing slashes from URLs (except root).
// 2. Rewriting retired path prefixes to their current form.
func NormalizeURL(w http.ResponseWriter, r *http.Request, next http.Handler) {
	// Check for a legacy prefix first and redirect if found
	if target, ok := legacyRewriteTarget(r); ok {
		http.Redirect(w, r, target, http.StatusMovedPermanently)

		return
	}

	// Check for trailing slash and redirect if found
	if hasTrailingSlash(r) {
		removeTrailingSlash(w, r)

		return
	}

	// No normalization needed, continue to next handler
	next.ServeHTTP(w, r)
}

// hasTrailingSlash checks if a request path has a trailing slash (except root).
func hasTrailingSlash(r *http.Request) bool {
	return r.URL.Path != "/" && strings.HasSuffix(r.URL.Path, "/")
}

// removeTrailingSlash removes trailing slash and redirects.
func removeTrailingSlash(w http.ResponseWriter, r *http.Request) {
	url := r.URL

	if len(url.Path) > 1 {
		url.Path = strings.TrimSuffix(url.Path, "/")
	}

	// @iacore: i think this won't have open redirect vuln
	http.Redirect(w, r, url.String(), http.StatusPermanentRedirect)
}

// legacyRewriteTarget reports whether the request path uses a retired prefix
// and returns the rewritten URL when it does.
func legacyRewriteTarget(r *http.Request) (string, bool) {
	for old, current := range legacyPathRewrites {
		if rest, ok := strings.CutPrefix(r.URL.Path, old); ok && rest != "" {
			target := *r.URL
			target.Path = current + rest

			return target.String(), true
		}
	}

	return "", false
}
