// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"fmt"
	"maps"
	"net/http"
	"strings"

	"codeberg.org/msgrate/msgrate/config"
)

var (
	// baseHeaders defines the default headers to be set in responses.
	//
	// Msgrate-Version and Msgrate-Revision are added dynamically in SetResponseHeaders.
	//
	// NOTE: we intentionally don't set CORP or HSTS headers.
	baseHeaders = http.Header{
		"Referrer-Policy":        {"no-referrer"},
		"X-Frame-Options":        {"DENY"},
		"X-Content-Type-Options": {"nosniff"},
		"Permissions-Policy":     {strings.Join(defaultPermissionsPolicy, ", ")},
	}

	// cspDirectives defines the Content-Security-Policy for every page.
	//
	// Pages only reference same-origin stylesheets and scripts; the rating
	// form script is served from /js/.
	cspDirectives = []string{
		"base-uri 'self'",
		"default-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"script-src 'self'",
		"font-src 'self'",
		"img-src 'self' data:",
		"connect-src 'self'",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}

	// defaultPermissionsPolicy defines the default Permissions-Policy header.
	defaultPermissionsPolicy = []string{
		"accelerometer=()",
		"camera=()",
		"display-capture=()",
		"document-domain=()",
		"encrypted-media=()",
		"geolocation=()",
		"gyroscope=()",
		"magnetometer=()",
		"microphone=()",
		"midi=()",
		"payment=()",
		"publickey-credentials-get=()",
		"screen-wake-lock=()",
		"sync-xhr=()",
		"usb=()",
		"web-share=()",
		"xr-spatial-tracking=()",
	}
)

// SetResponseHeaders adds default headers to HTTP responses.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	headers := w.Header()

	maps.Insert(headers, maps.All(baseHeaders))

	if config.Global.Development.InDevelopment {
		invalidateCacheInDevelopment(headers)
	}

	setCacheControl(headers, r.URL.Path)

	headers.Set("Msgrate-Version", config.BuildVersion)
	headers.Set("Msgrate-Revision", config.Global.Build.Revision())
	headers.Set("Content-Security-Policy", strings.Join(cspDirectives, "; ")+";")

	next.ServeHTTP(w, r)
}

// for `invalidateCache`
var firstDevResponse = true

// clear cache in development
func invalidateCacheInDevelopment(headers http.Header) {
	if firstDevResponse {
		firstDevResponse = false

		headers.Set("Clear-Site-Data", "cache")
	}
}

// setCacheControl sets appropriate cache control headers for static assets.
func setCacheControl(headers http.Header, path string) {
	// Default to only storing in the browser cache and forcing revalidation
	cacheDuration := "private, no-cache"

	// JavaScript and CSS get a moderate cache time (1 week)
	if strings.HasPrefix(path, "/js/") || strings.HasPrefix(path, "/css/") {
		cacheDuration = "max-age=604800"
	}

	// Text files (robots.txt) get moderate caching (1 day)
	if strings.HasSuffix(path, ".txt") {
		cacheDuration = "max-age=86400"
	}

	// Message pages may serve stale copies briefly while revalidating.
	if strings.HasPrefix(path, "/message/") || strings.HasPrefix(path, "/api/") {
		cacheDuration = fmt.Sprintf(
			"private, max-age=%.0f, stale-while-revalidate=%.0f",
			config.Global.HTTPCache.MaxAge.Seconds(),
			config.Global.HTTPCache.StaleWhileRevalidate.Seconds(),
		)
	}

	headers.Set("Cache-Control", cacheDuration)
}
