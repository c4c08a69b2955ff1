// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"codeberg.org/msgrate/msgrate/config"
	"codeberg.org/msgrate/msgrate/server/middleware"
	"codeberg.org/msgrate/msgrate/server/middleware/limiter"
	"codeberg.org/msgrate/msgrate/server/middleware/set_request_context"
)

func (router *Router) RegisterMiddleware() {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)
	router.Use(middleware.Compress)
	router.Use(middleware.NormalizeURL)                // handle trailing slashes and retired prefixes
	router.Use(set_request_context.WithRequestContext) // needed for everything else
	router.Use(middleware.SetResponseHeaders)          // all pages need this

	if config.Global.Limiter.Enabled {
		limiter.Init()

		router.Use(limiter.Evaluate)
	}
}
