package wizard

import "fmt"

// State is the wizard position.
type State int

const (
	StateStep1 State = iota + 1
	StateStep2
	StateStep3
	StateSubmitting
	StateSubmitted
)

// Step numbers exposed to step indicators.
const (
	FirstStep = 1
	LastStep  = 3
)

func (s State) String() string {
	switch s {
	case StateStep1:
		return "step1"
	case StateStep2:
		return "step2"
	case StateStep3:
		return "step3"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Step reports the form step shown for the state. Submitting keeps step 3 on
// screen; Submitted has no form step.
func (s State) Step() int {
	switch s {
	case StateStep1:
		return 1
	case StateStep2:
		return 2
	case StateStep3, StateSubmitting:
		return 3
	default:
		return 0
	}
}

// Editable reports whether form data may change in this state.
func (s State) Editable() bool {
	return s == StateStep1 || s == StateStep2 || s == StateStep3
}

func stateForStep(step int) (State, bool) {
	switch step {
	case 1:
		return StateStep1, true
	case 2:
		return StateStep2, true
	case 3:
		return StateStep3, true
	default:
		return 0, false
	}
}
