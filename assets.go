// Package foodcart embeds the built single-page app served by cmd/foodcart.
package foodcart

import "embed"

// WebFS holds the production web bundle. HTTP_STATIC_DIR serves a bundle from disk instead.
//
//go:embed all:web/dist
var WebFS embed.FS
