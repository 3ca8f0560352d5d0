// Package web bundles the HTML templates and static assets served by the gallery.
package web

import "embed"

// Files holds template/*.html and static/**.
//
//go:embed template static
var Files embed.FS
