package model

import (
	"slices"
	"strings"
)

// Patch is a partial FormData update. Nil members are left untouched when the
// patch is applied.
type Patch struct {
	FullName       *string
	Email          *string
	Company        *string
	Category       *Category
	IdeaTitle      *string
	Description    *string
	ProblemsSolved *[]Tag
	Urgency        *Urgency
	BetaTesting    *BetaTesting
	PrivacyConsent *bool
}

// Apply returns a copy of data with the named fields overwritten.
func (p Patch) Apply(data FormData) FormData {
	out := data.Clone()
	if p.FullName != nil {
		out.FullName = *p.FullName
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.Company != nil {
		out.Company = *p.Company
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.IdeaTitle != nil {
		out.IdeaTitle = *p.IdeaTitle
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.ProblemsSolved != nil {
		out.ProblemsSolved = slices.Clone(*p.ProblemsSolved)
	}
	if p.Urgency != nil {
		out.Urgency = *p.Urgency
	}
	if p.BetaTesting != nil {
		out.BetaTesting = *p.BetaTesting
	}
	if p.PrivacyConsent != nil {
		out.PrivacyConsent = *p.PrivacyConsent
	}
	return out
}

// Trimmed returns a copy of p with surrounding whitespace removed from the
// free-text fields, so the stored value is the one that gets submitted.
func (p Patch) Trimmed() Patch {
	out := p
	out.FullName = trimmed(p.FullName)
	out.Email = trimmed(p.Email)
	out.Company = trimmed(p.Company)
	out.IdeaTitle = trimmed(p.IdeaTitle)
	out.Description = trimmed(p.Description)
	return out
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	return Ptr(strings.TrimSpace(*value))
}

// Fields lists the fields the patch touches, in wizard order.
func (p Patch) Fields() []Field {
	touched := map[Field]bool{
		FieldFullName:       p.FullName != nil,
		FieldEmail:          p.Email != nil,
		FieldCompany:        p.Company != nil,
		FieldCategory:       p.Category != nil,
		FieldIdeaTitle:      p.IdeaTitle != nil,
		FieldDescription:    p.Description != nil,
		FieldProblemsSolved: p.ProblemsSolved != nil,
		FieldUrgency:        p.Urgency != nil,
		FieldBetaTesting:    p.BetaTesting != nil,
		FieldPrivacyConsent: p.PrivacyConsent != nil,
	}
	var out []Field
	for _, field := range Fields() {
		if touched[field] {
			out = append(out, field)
		}
	}
	return out
}

// Empty reports whether the patch names no fields.
func (p Patch) Empty() bool {
	return len(p.Fields()) == 0
}

// Ptr is a small helper for building patches inline.
func Ptr[T any](v T) *T {
	return &v
}
