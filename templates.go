package wamvgen

import (
	"io/fs"

	"github.com/goliatone/go-wamvgen/pkg/layout"
	"github.com/goliatone/go-wamvgen/pkg/markup"
)

// EmbeddedTemplates exposes the built-in boilerplate templates so callers can
// copy and adjust them before passing them back via markup.WithTemplateFS.
func EmbeddedTemplates() fs.FS {
	return markup.TemplatesFS()
}

// NewLoader constructs the file backed layout loader.
func NewLoader(options ...layout.LoaderOption) layout.Loader {
	return layout.NewFileLoader(options...)
}
