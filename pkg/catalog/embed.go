package catalog

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed copy/*
var embeddedCopy embed.FS

// DefaultPath is the catalog file inside EmbeddedFS.
const DefaultPath = "default.yaml"

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// EmbeddedFS returns the bundled catalog files.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedCopy, "copy")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default returns the bundled catalog. The result is shared and must not be
// mutated.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(EmbeddedFS(), DefaultPath)
		if defaultErr == nil {
			defaultErr = defaultCatalog.Validate()
		}
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultCatalog
}
