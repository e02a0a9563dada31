// Package assets holds the stylesheet and script shipped with every page.
package assets

import (
	"embed"
	"io/fs"

	"github.com/benbjohnson/hashfs"
)

//go:embed dist
var embedFS embed.FS

var FS = hashfs.NewFS(mustSub(embedFS, "dist"))

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// URL returns the content-hashed public path of name, e.g. "js/app.js".
func URL(name string) string {
	return "/assets/" + FS.HashName(name)
}

func ScriptURL() string {
	return URL("js/app.js")
}

func StylesheetURL() string {
	return URL("css/app.css")
}
