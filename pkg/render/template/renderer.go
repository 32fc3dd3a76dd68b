package template

import (
	"io"
)

// TemplateRenderer is the seam renderers use to execute templates, so an
// application can swap the bundled pongo2 engine for its own.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
