package render

import "context"

// Renderer turns a wizard View into bytes (an HTML fragment, JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View) ([]byte, error)
}
