package model

import "slices"

// Limits enforced by the step validators.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 2000
	MinProblems          = 1
	MaxProblems          = 3
)

// Field identifies a FormData member using its JSON name.
type Field string

const (
	FieldFullName       Field = "fullName"
	FieldEmail          Field = "email"
	FieldCompany        Field = "company"
	FieldCategory       Field = "category"
	FieldIdeaTitle      Field = "ideaTitle"
	FieldDescription    Field = "description"
	FieldProblemsSolved Field = "problemsSolved"
	FieldUrgency        Field = "urgency"
	FieldBetaTesting    Field = "betaTesting"
	FieldPrivacyConsent Field = "privacyConsent"
)

// Fields lists every FormData field in wizard order.
func Fields() []Field {
	return []Field{
		FieldFullName, FieldEmail, FieldCompany,
		FieldCategory, FieldIdeaTitle, FieldDescription, FieldProblemsSolved,
		FieldUrgency, FieldBetaTesting, FieldPrivacyConsent,
	}
}

// ParseField resolves a JSON field name.
func ParseField(raw string) (Field, bool) {
	for _, field := range Fields() {
		if string(field) == raw {
			return field, true
		}
	}
	return "", false
}

// Step reports the wizard step (1-3) that owns the field.
func (f Field) Step() int {
	switch f {
	case FieldFullName, FieldEmail, FieldCompany:
		return 1
	case FieldCategory, FieldIdeaTitle, FieldDescription, FieldProblemsSolved:
		return 2
	case FieldUrgency, FieldBetaTesting, FieldPrivacyConsent:
		return 3
	default:
		return 0
	}
}

// FormData is the single entity accumulated across the wizard steps.
type FormData struct {
	FullName       string      `json:"fullName"`
	Email          string      `json:"email"`
	Company        string      `json:"company"`
	Category       Category    `json:"category"`
	IdeaTitle      string      `json:"ideaTitle"`
	Description    string      `json:"description"`
	ProblemsSolved []Tag       `json:"problemsSolved"`
	Urgency        Urgency     `json:"urgency"`
	BetaTesting    BetaTesting `json:"betaTesting"`
	PrivacyConsent bool        `json:"privacyConsent"`
}

// Clone returns a deep copy so callers can hand out snapshots safely.
func (d FormData) Clone() FormData {
	out := d
	if d.ProblemsSolved != nil {
		out.ProblemsSolved = slices.Clone(d.ProblemsSolved)
	}
	return out
}

// HasProblem reports whether tag is part of the selection.
func (d FormData) HasProblem(tag Tag) bool {
	return slices.Contains(d.ProblemsSolved, tag)
}

// Receipt is the acknowledgement returned by the backend after a successful
// submission.
type Receipt struct {
	IdeaNumber int `json:"ideaNumber"`
}
