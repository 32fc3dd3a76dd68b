// Package wizard implements the three step idea submission flow as a guarded
// state machine:
//
//	Step1 -> Step2 -> Step3 -> Submitting -> Submitted
//	                    ^           |
//	                    +-- failure +
//
// Forward moves run the current step guard, backward moves are unconditional,
// and Submitted returns to an empty Step1 through Reset. Front-ends (HTTP,
// terminal) drive the same Wizard and only render its Snapshot.
package wizard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/goliatone/go-ideaform/pkg/model"
	"github.com/goliatone/go-ideaform/pkg/notify"
	"github.com/goliatone/go-ideaform/pkg/submission"
	"github.com/goliatone/go-ideaform/pkg/validation"
)

// Notification titles raised by Submit.
const (
	TitleSubmitted       = "Idea submitted"
	TitleSubmissionError = "Submission failed"
)

const fallbackFailureDetail = "Something went wrong. Please try again."

// Snapshot is a read-only copy of the wizard state.
type Snapshot struct {
	State   State          `json:"state"`
	Data    model.FormData `json:"data"`
	Errors  Errors         `json:"errors"`
	Receipt *model.Receipt `json:"receipt,omitempty"`
}

// Step is the form step on screen, 0 once submitted.
func (s Snapshot) Step() int {
	return s.State.Step()
}

// Reachable reports whether a step indicator for step can be clicked.
func (s Snapshot) Reachable(step int) bool {
	current := s.Step()
	return s.State.Editable() && step >= FirstStep && step <= current
}

// Wizard owns FormData and the current state. It is safe for concurrent use
// so an HTTP session can be shared by overlapping requests.
type Wizard struct {
	mu        sync.Mutex
	state     State
	data      model.FormData
	visible   Errors
	receipt   *model.Receipt
	submitter Submitter
	notifier  notify.Notifier
	logger    *slog.Logger
}

// New returns a wizard on step 1 with empty data unless WithData was given.
func New(options ...Option) *Wizard {
	w := &Wizard{
		state:    StateStep1,
		notifier: notify.Discard,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w
}

// Snapshot returns a copy of the current state.
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Wizard) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:  w.state,
		Data:   w.data.Clone(),
		Errors: w.visible,
	}
	if w.receipt != nil {
		receipt := *w.receipt
		snap.Receipt = &receipt
	}
	return snap
}

// State reports the current state.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Data returns a copy of the accumulated form data.
func (w *Wizard) Data() model.FormData {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.data.Clone()
}

// Errors returns the errors currently visible to the user.
func (w *Wizard) Errors() Errors {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

// Receipt returns the backend receipt once submitted.
func (w *Wizard) Receipt() (model.Receipt, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.receipt == nil {
		return model.Receipt{}, false
	}
	return *w.receipt, true
}

// Update merges patch into the form data. Only the named fields change and
// free-text values are stored trimmed. Fields already showing an error are
// validated again so corrected input clears its message.
func (w *Wizard) Update(patch model.Patch) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.state.Editable() {
		return ErrLocked
	}
	w.data = patch.Trimmed().Apply(w.data)
	for _, field := range patch.Fields() {
		w.revalidateLocked(field)
	}
	return nil
}

// Blur validates a single field and shows or clears its error.
func (w *Wizard) Blur(field model.Field) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.state.Editable() {
		return ErrLocked
	}
	if field.Step() == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	w.visible.set(field, validation.ValidateField(field, w.data))
	return nil
}

// ToggleTag adds or removes a problem tag. Removing is always allowed; adding
// beyond model.MaxProblems is rejected and leaves the selection unchanged.
func (w *Wizard) ToggleTag(tag model.Tag) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.state.Editable() {
		return ErrLocked
	}
	if !tag.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}

	if idx := slices.Index(w.data.ProblemsSolved, tag); idx >= 0 {
		w.data.ProblemsSolved = slices.Delete(slices.Clone(w.data.ProblemsSolved), idx, idx+1)
	} else {
		if len(w.data.ProblemsSolved) >= model.MaxProblems {
			return ErrTagLimit
		}
		w.data.ProblemsSolved = append(slices.Clone(w.data.ProblemsSolved), tag)
	}
	w.revalidateLocked(model.FieldProblemsSolved)
	return nil
}

// Next runs the current step guard and advances on success. On failure every
// error of the step becomes visible and a *validation.Error is returned.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var target State
	switch w.state {
	case StateStep1:
		target = StateStep2
	case StateStep2:
		target = StateStep3
	default:
		return fmt.Errorf("%w: next from %s", ErrInvalidTransition, w.state)
	}

	step := w.state.Step()
	if failures := w.visible.showStep(step, w.data); len(failures) > 0 {
		return validation.NewError(step, failures)
	}
	w.state = target
	return nil
}

// Back moves to the previous step without validation.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.state {
	case StateStep2:
		w.state = StateStep1
	case StateStep3:
		w.state = StateStep2
	default:
		return fmt.Errorf("%w: back from %s", ErrInvalidTransition, w.state)
	}
	return nil
}

// GoTo jumps to a step at or before the current one, as a step indicator
// click does. Steps ahead of the current one are rejected.
func (w *Wizard) GoTo(step int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.state.Editable() {
		return fmt.Errorf("%w: goto from %s", ErrInvalidTransition, w.state)
	}
	target, ok := stateForStep(step)
	if !ok {
		return fmt.Errorf("%w: step %d", ErrInvalidTransition, step)
	}
	if step > w.state.Step() {
		return ErrStepAhead
	}
	w.state = target
	return nil
}

// Submit validates consent and every step, then hands the data to the
// Submitter. Only one submission runs at a time; the lock is released while
// the request is in flight so snapshots keep working. On failure the wizard
// returns to step 3 with data intact and raises an error notification.
func (w *Wizard) Submit(ctx context.Context) (model.Receipt, error) {
	w.mu.Lock()
	switch w.state {
	case StateStep3:
	case StateSubmitting:
		w.mu.Unlock()
		return model.Receipt{}, ErrSubmissionInFlight
	default:
		state := w.state
		w.mu.Unlock()
		return model.Receipt{}, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, state)
	}

	if failures := w.visible.showStep(3, w.data); len(failures) > 0 {
		w.mu.Unlock()
		return model.Receipt{}, validation.NewError(3, failures)
	}
	for step := FirstStep; step < LastStep; step++ {
		if failures := w.visible.showStep(step, w.data); len(failures) > 0 {
			w.state, _ = stateForStep(step)
			w.mu.Unlock()
			return model.Receipt{}, validation.NewError(step, failures)
		}
	}
	if w.submitter == nil {
		w.mu.Unlock()
		return model.Receipt{}, ErrNoSubmitter
	}

	w.state = StateSubmitting
	payload := w.data.Clone()
	submitter := w.submitter
	w.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	receipt, err := submitter.Submit(ctx, payload)

	w.mu.Lock()
	notifier := w.notifier
	if err != nil {
		w.state = StateStep3
		w.mu.Unlock()

		w.logger.Warn("idea submission failed",
			slog.String("scope", "wizard.submit"),
			slog.String("error", err.Error()),
		)
		detail := submission.Detail(err)
		if detail == "" {
			detail = fallbackFailureDetail
		}
		notifier.Notify(notify.Notification{
			Kind:   notify.KindError,
			Title:  TitleSubmissionError,
			Detail: detail,
		})
		return model.Receipt{}, fmt.Errorf("wizard: submit: %w", err)
	}

	w.state = StateSubmitted
	w.receipt = &receipt
	w.mu.Unlock()

	notifier.Notify(notify.Notification{
		Kind:   notify.KindSuccess,
		Title:  TitleSubmitted,
		Detail: fmt.Sprintf("Your idea number is #%d", receipt.IdeaNumber),
	})
	return receipt, nil
}

// Reset clears the data after a successful submission ("submit another").
func (w *Wizard) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateSubmitted {
		return fmt.Errorf("%w: reset from %s", ErrInvalidTransition, w.state)
	}
	w.state = StateStep1
	w.data = model.FormData{}
	w.visible = Errors{}
	w.receipt = nil
	return nil
}

func (w *Wizard) revalidateLocked(field model.Field) {
	if w.visible.Message(field) == "" {
		return
	}
	w.visible.set(field, validation.ValidateField(field, w.data))
}
