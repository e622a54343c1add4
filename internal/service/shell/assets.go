package shell

import (
	"embed"
	"io/fs"
)

// assetsRoot is the embedded directory holding the shell files.
const assetsRoot = "assets"

// IndexFile is served for the root path.
const IndexFile = "index.html"

//go:embed assets
var embedded embed.FS

// Assets returns the embedded shell files rooted at their directory.
//
//nolint:ireturn // fs.FS is the standard file tree abstraction.
func Assets() fs.FS {
	sub, err := fs.Sub(embedded, assetsRoot)
	if err != nil {
		// Only a wrong constant gets here.
		panic(err)
	}

	return sub
}
