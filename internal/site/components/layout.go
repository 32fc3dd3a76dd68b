// Package components renders the HTML document shell around the wizard.
package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// PageConfig describes the document around the wizard fragment.
type PageConfig struct {
	Title       string
	Description string
	Theme       string
	Variant     string
	Stylesheet  string
}

// Layout wraps content in the HTML document shell.
func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = "Submit an idea"
	}
	if config.Stylesheet == "" {
		config.Stylesheet = "/static/ideaform.css"
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			g.If(config.Theme != "", g.Attr("data-theme", config.Theme)),
			g.If(config.Variant != "", g.Attr("data-variant", config.Variant)),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				g.If(config.Description != "", Meta(Name("description"), Content(config.Description))),
				Link(Rel("stylesheet"), Href(config.Stylesheet)),
			),
			Body(
				Main(
					Class("ideaform-page"),
					g.Group(content),
				),
			),
		),
	})
}
