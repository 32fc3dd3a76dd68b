// Package validation holds the pure per-step guards of the idea wizard. Each
// step owns a typed error record; a zero record means the step may advance.
// Guards never mutate data and never panic.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-ideaform/pkg/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError is a single field scoped validation failure.
type FieldError struct {
	Field   model.Field `json:"field"`
	Message string      `json:"message"`
}

// Step1Errors covers the contact step.
type Step1Errors struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

func (e Step1Errors) Empty() bool {
	return e == Step1Errors{}
}

func (e Step1Errors) List() []FieldError {
	return collect(
		FieldError{model.FieldFullName, e.FullName},
		FieldError{model.FieldEmail, e.Email},
	)
}

// Step2Errors covers the idea details step.
type Step2Errors struct {
	Category       string `json:"category,omitempty"`
	IdeaTitle      string `json:"ideaTitle,omitempty"`
	Description    string `json:"description,omitempty"`
	ProblemsSolved string `json:"problemsSolved,omitempty"`
}

func (e Step2Errors) Empty() bool {
	return e == Step2Errors{}
}

func (e Step2Errors) List() []FieldError {
	return collect(
		FieldError{model.FieldCategory, e.Category},
		FieldError{model.FieldIdeaTitle, e.IdeaTitle},
		FieldError{model.FieldDescription, e.Description},
		FieldError{model.FieldProblemsSolved, e.ProblemsSolved},
	)
}

// Step3Errors covers preferences and consent. Urgency and BetaTesting only
// fail when a value outside the vocabulary was supplied.
type Step3Errors struct {
	Urgency        string `json:"urgency,omitempty"`
	BetaTesting    string `json:"betaTesting,omitempty"`
	PrivacyConsent string `json:"privacyConsent,omitempty"`
}

func (e Step3Errors) Empty() bool {
	return e == Step3Errors{}
}

func (e Step3Errors) List() []FieldError {
	return collect(
		FieldError{model.FieldUrgency, e.Urgency},
		FieldError{model.FieldBetaTesting, e.BetaTesting},
		FieldError{model.FieldPrivacyConsent, e.PrivacyConsent},
	)
}

// ValidateStep1 checks fullName presence and email shape.
func ValidateStep1(data model.FormData) Step1Errors {
	return Step1Errors{
		FullName: checkFullName(data.FullName),
		Email:    checkEmail(data.Email),
	}
}

// ValidateStep2 checks category, title, description and the problem set.
func ValidateStep2(data model.FormData) Step2Errors {
	return Step2Errors{
		Category:       checkCategory(data.Category),
		IdeaTitle:      checkIdeaTitle(data.IdeaTitle),
		Description:    checkDescription(data.Description),
		ProblemsSolved: checkProblems(data.ProblemsSolved),
	}
}

// ValidateStep3 checks consent plus the optional enumerations.
func ValidateStep3(data model.FormData) Step3Errors {
	return Step3Errors{
		Urgency:        checkUrgency(data.Urgency),
		BetaTesting:    checkBetaTesting(data.BetaTesting),
		PrivacyConsent: checkConsent(data.PrivacyConsent),
	}
}

// ValidateStep returns the field errors of the given step (1-3). Unknown steps
// yield no errors.
func ValidateStep(step int, data model.FormData) []FieldError {
	switch step {
	case 1:
		return ValidateStep1(data).List()
	case 2:
		return ValidateStep2(data).List()
	case 3:
		return ValidateStep3(data).List()
	default:
		return nil
	}
}

// ValidateAll runs every step guard in order.
func ValidateAll(data model.FormData) []FieldError {
	var out []FieldError
	for step := 1; step <= 3; step++ {
		out = append(out, ValidateStep(step, data)...)
	}
	return out
}

// ValidateField evaluates a single field, as done on blur. An empty string
// means the field is valid.
func ValidateField(field model.Field, data model.FormData) string {
	switch field {
	case model.FieldFullName:
		return checkFullName(data.FullName)
	case model.FieldEmail:
		return checkEmail(data.Email)
	case model.FieldCategory:
		return checkCategory(data.Category)
	case model.FieldIdeaTitle:
		return checkIdeaTitle(data.IdeaTitle)
	case model.FieldDescription:
		return checkDescription(data.Description)
	case model.FieldProblemsSolved:
		return checkProblems(data.ProblemsSolved)
	case model.FieldUrgency:
		return checkUrgency(data.Urgency)
	case model.FieldBetaTesting:
		return checkBetaTesting(data.BetaTesting)
	case model.FieldPrivacyConsent:
		return checkConsent(data.PrivacyConsent)
	default:
		return ""
	}
}

// IsEmail reports whether value has a standard email shape. Surrounding
// whitespace makes the value invalid, matching what the backend accepts.
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

func checkFullName(value string) string {
	if strings.TrimSpace(value) == "" {
		return MsgFullNameRequired
	}
	return ""
}

func checkEmail(value string) string {
	if strings.TrimSpace(value) == "" {
		return MsgEmailRequired
	}
	if !IsEmail(value) {
		return MsgEmailInvalid
	}
	return ""
}

func checkCategory(value model.Category) string {
	if !value.Valid() {
		return MsgCategoryRequired
	}
	return ""
}

func checkIdeaTitle(value string) string {
	if strings.TrimSpace(value) == "" {
		return MsgIdeaTitleRequired
	}
	if utf8.RuneCountInString(value) > model.MaxTitleLength {
		return MsgIdeaTitleTooLong
	}
	return ""
}

func checkDescription(value string) string {
	if strings.TrimSpace(value) == "" {
		return MsgDescriptionRequired
	}
	if utf8.RuneCountInString(value) > model.MaxDescriptionLength {
		return MsgDescriptionTooLong
	}
	return ""
}

func checkProblems(tags []model.Tag) string {
	seen := make(map[model.Tag]struct{}, len(tags))
	for _, tag := range tags {
		if !tag.Valid() {
			return MsgUnknownProblem
		}
		if _, dup := seen[tag]; dup {
			return MsgProblemsDuplicate
		}
		seen[tag] = struct{}{}
	}
	switch {
	case len(tags) < model.MinProblems:
		return MsgProblemsRequired
	case len(tags) > model.MaxProblems:
		return MsgProblemsTooMany
	default:
		return ""
	}
}

func checkUrgency(value model.Urgency) string {
	if !value.Valid() {
		return MsgUrgencyInvalid
	}
	return ""
}

func checkBetaTesting(value model.BetaTesting) string {
	if !value.Valid() {
		return MsgBetaTestingInvalid
	}
	return ""
}

func checkConsent(value bool) string {
	if !value {
		return MsgPrivacyConsentNeeded
	}
	return ""
}

func collect(candidates ...FieldError) []FieldError {
	var out []FieldError
	for _, candidate := range candidates {
		if candidate.Message != "" {
			out = append(out, candidate)
		}
	}
	return out
}
