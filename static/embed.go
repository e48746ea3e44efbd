// Package static embeds the feed's CSS, scripts and placeholder images.
package static

import (
	"embed"
	"io/fs"
)

//go:embed assets
var embedded embed.FS

// FS is rooted at the assets directory and served under /static/.
var FS fs.FS = mustSub(embedded, "assets")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
