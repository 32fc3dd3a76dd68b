package wizard

import (
	"errors"

	"github.com/goliatone/go-ideaform/pkg/model"
	"github.com/goliatone/go-ideaform/pkg/validation"
)

var (
	// ErrInvalidTransition is returned for any transition the state machine
	// does not define.
	ErrInvalidTransition = errors.New("wizard: invalid transition")
	// ErrStepAhead is returned when jumping to a step after the current one.
	ErrStepAhead = errors.New("wizard: step is ahead of the current step")
	// ErrLocked is returned when data changes while submitting or submitted.
	ErrLocked = errors.New("wizard: form is locked")
	// ErrUnknownTag is returned when toggling a tag outside the vocabulary.
	ErrUnknownTag = errors.New("wizard: unknown problem tag")
	// ErrUnknownField is returned when blurring a field that does not exist.
	ErrUnknownField = errors.New("wizard: unknown field")
	// ErrTagLimit is returned when selecting more than model.MaxProblems tags.
	ErrTagLimit = errors.New("wizard: problem selection limit reached")
	// ErrSubmissionInFlight is returned when Submit is called while a
	// submission is already running.
	ErrSubmissionInFlight = errors.New("wizard: submission already in flight")
	// ErrNoSubmitter is returned by Submit when the wizard was built without
	// a Submitter.
	ErrNoSubmitter = errors.New("wizard: no submitter configured")
)

// Errors holds the field errors currently visible to the user, one typed
// record per step.
type Errors struct {
	Step1 validation.Step1Errors `json:"step1"`
	Step2 validation.Step2Errors `json:"step2"`
	Step3 validation.Step3Errors `json:"step3"`
}

// Empty reports whether no error is visible.
func (e Errors) Empty() bool {
	return e.Step1.Empty() && e.Step2.Empty() && e.Step3.Empty()
}

// For lists the visible errors of one step.
func (e Errors) For(step int) []validation.FieldError {
	switch step {
	case 1:
		return e.Step1.List()
	case 2:
		return e.Step2.List()
	case 3:
		return e.Step3.List()
	default:
		return nil
	}
}

// Message returns the visible error for field, or "".
func (e Errors) Message(field model.Field) string {
	switch field {
	case model.FieldFullName:
		return e.Step1.FullName
	case model.FieldEmail:
		return e.Step1.Email
	case model.FieldCategory:
		return e.Step2.Category
	case model.FieldIdeaTitle:
		return e.Step2.IdeaTitle
	case model.FieldDescription:
		return e.Step2.Description
	case model.FieldProblemsSolved:
		return e.Step2.ProblemsSolved
	case model.FieldUrgency:
		return e.Step3.Urgency
	case model.FieldBetaTesting:
		return e.Step3.BetaTesting
	case model.FieldPrivacyConsent:
		return e.Step3.PrivacyConsent
	default:
		return ""
	}
}

func (e *Errors) set(field model.Field, message string) {
	switch field {
	case model.FieldFullName:
		e.Step1.FullName = message
	case model.FieldEmail:
		e.Step1.Email = message
	case model.FieldCategory:
		e.Step2.Category = message
	case model.FieldIdeaTitle:
		e.Step2.IdeaTitle = message
	case model.FieldDescription:
		e.Step2.Description = message
	case model.FieldProblemsSolved:
		e.Step2.ProblemsSolved = message
	case model.FieldUrgency:
		e.Step3.Urgency = message
	case model.FieldBetaTesting:
		e.Step3.BetaTesting = message
	case model.FieldPrivacyConsent:
		e.Step3.PrivacyConsent = message
	}
}

// showStep replaces the visible errors of step with the guard result and
// returns the failures.
func (e *Errors) showStep(step int, data model.FormData) []validation.FieldError {
	switch step {
	case 1:
		e.Step1 = validation.ValidateStep1(data)
		return e.Step1.List()
	case 2:
		e.Step2 = validation.ValidateStep2(data)
		return e.Step2.List()
	case 3:
		e.Step3 = validation.ValidateStep3(data)
		return e.Step3.List()
	default:
		return nil
	}
}
