package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrUnknownFormat is returned for output formats other than json, form
	// and pretty.
	ErrUnknownFormat = errors.New("tui: unknown output format")
	// ErrNoWizard is returned when Run is called without a wizard.
	ErrNoWizard = errors.New("tui: wizard is nil")
)
