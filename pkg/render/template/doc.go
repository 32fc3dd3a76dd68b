// Package template defines the renderer-agnostic template interface. The
// gotemplate subpackage provides the pongo2 implementation.
package template
