// Package ideaform collects product ideas through a three step wizard: who
// is submitting, what the idea is, and how urgent it is. The wizard state
// machine lives in pkg/wizard; this package wires it to the default HTTP
// submitter and the bundled HTML renderer for callers that want one import.
package ideaform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-ideaform/pkg/catalog"
	"github.com/goliatone/go-ideaform/pkg/contract"
	"github.com/goliatone/go-ideaform/pkg/render"
	"github.com/goliatone/go-ideaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-ideaform/pkg/submission"
	"github.com/goliatone/go-ideaform/pkg/theming"
	"github.com/goliatone/go-ideaform/pkg/wizard"
)

// NewWizard returns a wizard that submits to endpoint through the default
// HTTP client. An empty endpoint keeps submission.DefaultEndpoint.
func NewWizard(endpoint string, options ...wizard.Option) *wizard.Wizard {
	var clientOptions []submission.Option
	if endpoint != "" {
		clientOptions = append(clientOptions, submission.WithEndpoint(endpoint))
	}
	base := []wizard.Option{wizard.WithSubmitter(submission.New(clientOptions...))}
	return wizard.New(append(base, options...)...)
}

// RenderHTML renders the current screen of w with the bundled templates and
// default theme.
func RenderHTML(ctx context.Context, w *wizard.Wizard, options ...render.ViewOption) ([]byte, error) {
	selector, err := theming.NewSelector()
	if err != nil {
		return nil, err
	}
	selection, err := selector.Select("", "")
	if err != nil {
		return nil, err
	}
	themeCfg := theming.RendererConfig(selection, theming.DefaultFallbacks())
	renderer, err := vanilla.New(vanilla.WithTheme(themeCfg))
	if err != nil {
		return nil, err
	}
	view := render.NewView(w.Snapshot(), catalog.Default(), append([]render.ViewOption{render.WithTheme(themeCfg)}, options...)...)
	return renderer.Render(ctx, view)
}

// EmbeddedTemplates exposes the bundled wizard templates so callers can copy
// or extend them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the wizard stylesheet for mounting under /static.
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

// ContractDocument returns the OpenAPI description of the submission
// endpoint.
func ContractDocument() []byte {
	return contract.Document()
}
