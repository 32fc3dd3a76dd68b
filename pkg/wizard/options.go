package wizard

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-ideaform/pkg/model"
	"github.com/goliatone/go-ideaform/pkg/notify"
)

// Submitter delivers a completed form and returns the backend receipt.
// *submission.Client satisfies it.
type Submitter interface {
	Submit(ctx context.Context, data model.FormData) (model.Receipt, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, data model.FormData) (model.Receipt, error)

func (fn SubmitterFunc) Submit(ctx context.Context, data model.FormData) (model.Receipt, error) {
	return fn(ctx, data)
}

// Option configures the Wizard.
type Option func(*Wizard)

// WithSubmitter sets the submission capability.
func WithSubmitter(submitter Submitter) Option {
	return func(w *Wizard) {
		w.submitter = submitter
	}
}

// WithNotifier sets where success and failure notifications go.
func WithNotifier(notifier notify.Notifier) Option {
	return func(w *Wizard) {
		if notifier != nil {
			w.notifier = notifier
		}
	}
}

// WithLogger sets the logger used for the submission failure diagnostic.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithData seeds the wizard with prefilled values. The wizard still starts on
// step 1.
func WithData(data model.FormData) Option {
	return func(w *Wizard) {
		w.data = data.Clone()
	}
}
