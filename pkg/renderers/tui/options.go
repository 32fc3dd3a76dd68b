package tui

import (
	"io"

	"github.com/goliatone/go-ideaform/pkg/catalog"
)

// OutputFormat controls how the collected idea is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional formatting hints the runner applies when printing
// messages. Keep minimal to avoid coupling the flow to ANSI specifics.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures the Runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the default survey driver prints informational lines.
func WithOutput(out io.Writer) Option {
	return func(r *Runner) {
		if out != nil {
			r.out = out
		}
	}
}

// WithOutputFormat selects the serialization used by Runner.Encode.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Runner) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithCatalog replaces the embedded copy catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(r *Runner) {
		if cat != nil {
			r.catalog = cat
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

// WithCollectOnly stops after step 3 validates instead of submitting, so the
// payload can be piped elsewhere.
func WithCollectOnly(enabled bool) Option {
	return func(r *Runner) {
		r.collectOnly = enabled
	}
}
