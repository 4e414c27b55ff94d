// Package assets carries the language resources shipped inside the mdwloc
// binary.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed lang/*.json
var files embed.FS

// Languages holds the lang_<code>.json resources at its root.
var Languages fs.FS = mustSub(files, "lang")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
