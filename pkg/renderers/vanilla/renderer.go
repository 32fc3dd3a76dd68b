package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-ideaform/pkg/render"
	rendertemplate "github.com/goliatone/go-ideaform/pkg/render/template"
	gotemplate "github.com/goliatone/go-ideaform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-ideaform/pkg/theming"
)

// Partial keys resolved through the theme configuration.
const (
	PartialShell   = "wizard.shell"
	PartialTabs    = "wizard.tabs"
	PartialToasts  = "wizard.toasts"
	PartialStep1   = "wizard.step1"
	PartialStep2   = "wizard.step2"
	PartialStep3   = "wizard.step3"
	PartialSuccess = "wizard.success"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	partials         map[string]string
	classes          map[string]string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies the partial overrides of a resolved theme.
func WithTheme(themeCfg *theme.RendererConfig) Option {
	return func(cfg *config) {
		if themeCfg == nil {
			return
		}
		for key, path := range themeCfg.Partials {
			if strings.TrimSpace(path) == "" {
				continue
			}
			cfg.partials[key] = path
		}
	}
}

// WithChromeClasses overrides the CSS classes emitted on wizard chrome,
// keyed by "wizard", "tabs", "field", "chip" and the like.
func WithChromeClasses(classes map[string]string) Option {
	return func(cfg *config) {
		for key, class := range classes {
			cfg.classes[key] = strings.TrimSpace(class)
		}
	}
}

// Renderer produces the HTML fragment of the wizard: step indicator, the
// current step form and any pending toasts.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	partials  map[string]string
	classes   map[string]string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		partials:   theming.DefaultFallbacks(),
		classes:    map[string]string{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithFilters(templateFilters()),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		partials:  cfg.partials,
		classes:   chromeClasses(cfg.classes),
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Stylesheet returns the bundled CSS so pages without a static route can
// inline it.
func (r *Renderer) Stylesheet() string {
	return defaultStylesheet()
}

// Render executes the step partial for view.Screen, then wraps it in the
// shell together with the tabs and toasts partials.
func (r *Renderer) Render(_ context.Context, view render.View) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer not configured")
	}

	data := map[string]any{
		"view":    view,
		"classes": r.classes,
	}

	body, err := r.partial(screenPartial(view.Screen), data)
	if err != nil {
		return nil, err
	}
	tabs := ""
	if view.Screen != render.ScreenSuccess {
		if tabs, err = r.partial(PartialTabs, data); err != nil {
			return nil, err
		}
	}
	toasts, err := r.partial(PartialToasts, data)
	if err != nil {
		return nil, err
	}

	data["body"] = body
	data["tabs"] = tabs
	data["toasts"] = toasts
	html, err := r.partial(PartialShell, data)
	if err != nil {
		return nil, err
	}
	return []byte(html), nil
}

func (r *Renderer) partial(key string, data map[string]any) (string, error) {
	path, ok := r.partials[key]
	if !ok || path == "" {
		return "", fmt.Errorf("vanilla renderer: no template for partial %q", key)
	}
	out, err := r.templates.RenderTemplate(path, data)
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render %s: %w", key, err)
	}
	return out, nil
}

func screenPartial(screen string) string {
	switch screen {
	case render.ScreenStep2:
		return PartialStep2
	case render.ScreenStep3:
		return PartialStep3
	case render.ScreenSuccess:
		return PartialSuccess
	default:
		return PartialStep1
	}
}
