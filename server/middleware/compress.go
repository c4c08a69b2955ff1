// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"context"
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

type compressNextKey struct{}

// gzipped is built once at startup; the per-request continuation is carried
// on the request context instead of being wrapped anew on every request.
var gzipped = gzhttp.GzipHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	r.Context().Value(compressNextKey{}).(http.Handler).ServeHTTP(w, r)
}))

// Compress transparently gzips responses for clients that accept it.
func Compress(w http.ResponseWriter, r *http.Request, next http.Handler) {
	gzipped.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), compressNextKey{}, next)))
}
