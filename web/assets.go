// Package web provides the embedded static pages for the flashcard
// front-end: deck selection and card review.
package web

import (
	"embed"
	"io/fs"
)

// assets holds the embedded static pages from static/.
//
//go:embed static/*
var assets embed.FS

// Assets returns a filesystem rooted at the static pages, so callers can
// address them by bare filename.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		// This should never happen with properly embedded assets
		panic("failed to access embedded web assets: " + err.Error())
	}
	return sub
}
