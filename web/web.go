// Package web embeds the browser assets of the explorer.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Assets returns the embedded asset tree rooted at the site root, so
// "index.html" and "data/glossary.json" resolve directly.
func Assets() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		// "static" is embedded above; Sub only fails on an invalid name.
		panic(err)
	}
	return sub
}

// Resource paths inside Assets.
const (
	GlossaryPath = "data/glossary.json"
	ExamplesPath = "data/examples.json"
)
