package site

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/form/v4"

	"github.com/goliatone/go-ideaform/pkg/model"
)

// Names of the non-field inputs posted by the step forms.
const (
	fieldAction       = "action"
	fieldCSRF         = "_csrf"
	fieldConsentShown = "consentShown"
)

// Posted actions. Toggle and blur carry their target after the colon.
const (
	ActionContinue = "continue"
	ActionBack     = "back"
	ActionSubmit   = "submit"
	ActionToggle   = "toggle"
	ActionBlur     = "blur"
)

// stepInput mirrors the inputs of every step form. Only keys present in the
// post become part of the patch, so a step never clears another step's data.
type stepInput struct {
	Action         string `form:"action"`
	FullName       string `form:"fullName"`
	Email          string `form:"email"`
	Company        string `form:"company"`
	Category       string `form:"category"`
	IdeaTitle      string `form:"ideaTitle"`
	Description    string `form:"description"`
	Urgency        string `form:"urgency"`
	BetaTesting    string `form:"betaTesting"`
	PrivacyConsent bool   `form:"privacyConsent"`
}

// Action is a parsed action value.
type Action struct {
	Name   string
	Target string
}

func parseAction(raw string) (Action, error) {
	name, target, _ := strings.Cut(strings.TrimSpace(raw), ":")
	switch name {
	case "":
		return Action{Name: ActionContinue}, nil
	case ActionContinue, ActionBack, ActionSubmit:
		return Action{Name: name}, nil
	case ActionToggle, ActionBlur:
		if target == "" {
			return Action{}, fmt.Errorf("site: action %q needs a target", name)
		}
		return Action{Name: name, Target: target}, nil
	default:
		return Action{}, fmt.Errorf("site: unknown action %q", raw)
	}
}

type stepDecoder struct {
	decoder *form.Decoder
}

func newStepDecoder() *stepDecoder {
	return &stepDecoder{decoder: form.NewDecoder()}
}

// Decode turns posted values into the requested action and a patch of the
// fields present.
func (d *stepDecoder) Decode(values url.Values) (Action, model.Patch, error) {
	var input stepInput
	if err := d.decoder.Decode(&input, values); err != nil {
		return Action{}, model.Patch{}, fmt.Errorf("site: decode form: %w", err)
	}
	action, err := parseAction(input.Action)
	if err != nil {
		return Action{}, model.Patch{}, err
	}

	var patch model.Patch
	if values.Has(string(model.FieldFullName)) {
		patch.FullName = model.Ptr(input.FullName)
	}
	if values.Has(string(model.FieldEmail)) {
		patch.Email = model.Ptr(input.Email)
	}
	if values.Has(string(model.FieldCompany)) {
		patch.Company = model.Ptr(input.Company)
	}
	if values.Has(string(model.FieldCategory)) {
		patch.Category = model.Ptr(model.Category(input.Category))
	}
	if values.Has(string(model.FieldIdeaTitle)) {
		patch.IdeaTitle = model.Ptr(input.IdeaTitle)
	}
	if values.Has(string(model.FieldDescription)) {
		patch.Description = model.Ptr(input.Description)
	}
	if values.Has(string(model.FieldUrgency)) {
		patch.Urgency = model.Ptr(model.Urgency(input.Urgency))
	}
	if values.Has(string(model.FieldBetaTesting)) {
		patch.BetaTesting = model.Ptr(model.BetaTesting(input.BetaTesting))
	}
	// an unchecked box posts nothing, so consent is only read from the form
	// that rendered it
	if values.Has(fieldConsentShown) || values.Has(string(model.FieldPrivacyConsent)) {
		patch.PrivacyConsent = model.Ptr(input.PrivacyConsent)
	}
	return action, patch, nil
}
