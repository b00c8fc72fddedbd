// Package web embeds the storefront templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static templates
var content embed.FS

// Static and Templates are the asset directories, rooted at their own names.
var (
	Static    = mustSub("static")
	Templates = mustSub("templates")
)

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(content, dir)
	if err != nil {
		panic("web: " + err.Error())
	}
	return sub
}
