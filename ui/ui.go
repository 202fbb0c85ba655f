// Package ui holds the embedded HTML templates for the admin interface.
package ui

import "embed"

//go:embed "html"
var Files embed.FS
