package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-ideaform/pkg/catalog"
	"github.com/goliatone/go-ideaform/pkg/render"
)

// Renderer draws a wizard screen as plain text. The runner prints it before
// each step and it doubles as the text/plain renderer of the HTTP site.
type Renderer struct {
	theme Theme
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer constructs a text renderer using theme prefixes.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, view render.View) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	var b strings.Builder
	if view.Screen == render.ScreenSuccess {
		r.writeSuccess(&b, view)
	} else {
		r.writeStep(&b, view)
	}
	for _, toast := range view.Toasts {
		line := toast.Title
		if toast.Detail != "" {
			line += ": " + toast.Detail
		}
		prefix := r.theme.InfoPrefix
		if toast.Kind == "error" {
			prefix = r.theme.ErrorPrefix
		}
		fmt.Fprintf(&b, "%s%s\n", prefix, line)
	}
	return []byte(b.String()), nil
}

func (r *Renderer) writeStep(b *strings.Builder, view render.View) {
	if view.Title != "" {
		fmt.Fprintf(b, "%s\n", view.Title)
	}
	var tabs []string
	for _, tab := range view.Tabs {
		marker := " "
		switch {
		case tab.Current:
			marker = ">"
		case tab.Complete:
			marker = "x"
		}
		tabs = append(tabs, fmt.Sprintf("[%s] %d. %s", marker, tab.Number, tab.Title))
	}
	if len(tabs) > 0 {
		fmt.Fprintf(b, "%s\n", strings.Join(tabs, "  "))
	}
	fmt.Fprintf(b, "\n%s: %s\n", view.StepLabel, view.StepTitle)
	if view.StepDescription != "" {
		fmt.Fprintf(b, "%s\n", view.StepDescription)
	}
	for _, alert := range view.Alerts {
		fmt.Fprintf(b, "%s%s\n", r.theme.ErrorPrefix, alert)
	}
	for _, failure := range view.Errors {
		label := view.Fields[string(failure.Field)].Label
		if label == "" {
			label = string(failure.Field)
		}
		fmt.Fprintf(b, "%s%s\n", r.theme.ErrorPrefix, invalidLine(label, failure.Message))
	}
}

func (r *Renderer) writeSuccess(b *strings.Builder, view render.View) {
	fmt.Fprintf(b, "%s\n", view.Success.Title)
	if view.Receipt != nil {
		fmt.Fprintf(b, "Your idea number: %s\n", view.Receipt.Display)
	}
	if body := catalog.PlainText(view.Success.Body); body != "" {
		fmt.Fprintf(b, "%s\n", body)
	}
	for idx, step := range view.Success.NextSteps {
		fmt.Fprintf(b, "  %d. %s\n", idx+1, catalog.PlainText(step))
	}
}

func invalidLine(label, message string) string {
	return fmt.Sprintf("Invalid %s: %s", label, message)
}
