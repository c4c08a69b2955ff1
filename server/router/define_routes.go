// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"fmt"
	"io/fs"
	"net/http"
	"net/http/pprof"

	"codeberg.org/msgrate/msgrate/config"
	"codeberg.org/msgrate/msgrate/server/assets"
	"codeberg.org/msgrate/msgrate/server/middleware"
	"codeberg.org/msgrate/msgrate/server/routes"
)

// DefineRoutes sets up all the routes for the application using our custom Router.
//
// It returns a *Router without middleware.
func (router *Router) DefineRoutes() {
	fileServerHandler := fileServer()

	// Serve specific files from the root of the 'assets' subdirectory.
	router.Handle("GET /robots.txt", fileServerHandler)

	// Serve files from subdirectories within 'assets'.
	// Patterns ending in "/" are prefix matches.
	router.Handle("GET /css/", fileServerHandler)
	router.Handle("GET /js/", fileServerHandler)

	// About routes
	router.HandleFunc("GET /about", middleware.CatchError(routes.AboutPage))

	// Message routes
	router.HandleFunc("GET /message/{id}", middleware.CatchError(routes.MessagePage))
	router.HandleFunc("GET /next-message/{id}", middleware.CatchError(routes.NextMessage))
	router.HandleFunc("GET /previous-message/{id}", middleware.CatchError(routes.PreviousMessage))
	router.HandleFunc("GET /message", redirectWithQueryParam("/message/", "id"))

	// Rating routes
	router.HandleFunc("POST /message/{id}/rating", middleware.CatchError(routes.SubmitRating))
	router.HandleFunc("POST /message/{id}/form", middleware.CatchError(routes.RatingFormPartial))

	// REST API routes
	router.HandleFunc("GET /api/message/{id}", middleware.CatchError(routes.MessageJSON))

	// Index page routes
	// /{$} matches only the root path
	router.HandleFunc("GET /{$}", middleware.CatchError(routes.IndexPage))

	if config.Global.Development.InDevelopment {
		registerDebugRoutes(router)
	}
}

// Serve static files from embedded assets.
func fileServer() http.HandlerFunc {
	staticContentFS, err := fs.Sub(assets.FS, "assets")
	if err != nil {
		panic(fmt.Errorf("failed to create sub-filesystem for embedded 'assets' directory: %w", err))
	}

	fileServer := http.FileServer(http.FS(staticContentFS))
	fileServerHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "max-age=3600")
		fileServer.ServeHTTP(w, r)
	})

	return fileServerHandler
}

func registerDebugRoutes(router *Router) {
	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
}
