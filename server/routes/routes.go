// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package routes implements the HTTP handlers.

Handlers return errors; middleware.CatchError turns them into error pages
and logs them.
*/
package routes

import (
	"codeberg.org/msgrate/msgrate/core/catalogue"
	"codeberg.org/msgrate/msgrate/core/store"
	"codeberg.org/msgrate/msgrate/core/tags"
)

// Package state shared by all handlers, set once from main before the
// server starts.
var (
	messageCatalogue *catalogue.Catalogue
	ratingStore      *store.Store
	tagCatalogue     []tags.Tag
)

// Setup wires the handlers to their data sources.
func Setup(cat *catalogue.Catalogue, st *store.Store, tagList []tags.Tag) {
	messageCatalogue = cat
	ratingStore = st
	tagCatalogue = tagList
}
