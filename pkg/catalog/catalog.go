// Package catalog holds the user facing copy of the idea wizard together with
// the labels of every closed vocabulary (categories, problem tags, urgency and
// beta testing options). Catalogs are YAML or JSON documents; rich text is
// sanitised when loaded so templates may render it unescaped.
package catalog

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-ideaform/pkg/model"
)

// Catalog is a loaded copy document.
type Catalog struct {
	Source      string
	Form        FormCopy
	Steps       []StepCopy
	Fields      map[model.Field]FieldCopy
	Categories  []Option
	Problems    []Option
	Urgency     []Option
	BetaTesting []Option
	Privacy     PrivacyCopy
	Success     SuccessCopy
	Buttons     Buttons
}

// FormCopy is the wizard heading.
type FormCopy struct {
	Title     string `json:"title" yaml:"title"`
	Intro     string `json:"intro" yaml:"intro"`
	StepLabel string `json:"stepLabel" yaml:"stepLabel"`
}

// StepCopy titles one wizard step.
type StepCopy struct {
	Number      int    `json:"number" yaml:"number"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// FieldCopy labels one form field.
type FieldCopy struct {
	Label       string `json:"label" yaml:"label"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string `json:"help,omitempty" yaml:"help,omitempty"`
}

// Option is one entry of a closed vocabulary.
type Option struct {
	Value       string `json:"value" yaml:"value"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PrivacyCopy is the consent notice. Notice is sanitised HTML.
type PrivacyCopy struct {
	Notice string `json:"notice" yaml:"notice"`
}

// SuccessCopy is shown after submission. Body and NextSteps are sanitised
// HTML.
type SuccessCopy struct {
	Title     string   `json:"title" yaml:"title"`
	Body      string   `json:"body" yaml:"body"`
	NextSteps []string `json:"nextSteps" yaml:"nextSteps"`
}

// Buttons labels the wizard actions.
type Buttons struct {
	Continue   string `json:"continue" yaml:"continue"`
	Back       string `json:"back" yaml:"back"`
	Submit     string `json:"submit" yaml:"submit"`
	Submitting string `json:"submitting" yaml:"submitting"`
	Another    string `json:"another" yaml:"another"`
}

// Step returns the copy for step n.
func (c *Catalog) Step(n int) (StepCopy, bool) {
	if c == nil {
		return StepCopy{}, false
	}
	for _, step := range c.Steps {
		if step.Number == n {
			return step, true
		}
	}
	return StepCopy{}, false
}

// StepLabel renders FormCopy.StepLabel, e.g. "Step 2 of 3".
func (c *Catalog) StepLabel(step, total int) string {
	if c == nil || c.Form.StepLabel == "" {
		return "Step " + strconv.Itoa(step) + " of " + strconv.Itoa(total)
	}
	return strings.NewReplacer(
		"{step}", strconv.Itoa(step),
		"{total}", strconv.Itoa(total),
	).Replace(c.Form.StepLabel)
}

// Field returns the copy for field, falling back to its JSON name as label.
func (c *Catalog) Field(field model.Field) FieldCopy {
	if c != nil {
		if fc, ok := c.Fields[field]; ok {
			return fc
		}
	}
	return FieldCopy{Label: string(field)}
}

// CategoryLabel resolves a category label.
func (c *Catalog) CategoryLabel(value model.Category) string {
	return c.label(c.categories(), string(value))
}

// ProblemLabel resolves a problem tag label.
func (c *Catalog) ProblemLabel(value model.Tag) string {
	return c.label(c.problems(), string(value))
}

// UrgencyLabel resolves an urgency label.
func (c *Catalog) UrgencyLabel(value model.Urgency) string {
	return c.label(c.urgency(), string(value))
}

// BetaTestingLabel resolves a beta testing label.
func (c *Catalog) BetaTestingLabel(value model.BetaTesting) string {
	return c.label(c.betaTesting(), string(value))
}

func (c *Catalog) label(options []Option, value string) string {
	if value == "" {
		return ""
	}
	for _, opt := range options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

func (c *Catalog) categories() []Option {
	if c == nil {
		return nil
	}
	return c.Categories
}

func (c *Catalog) problems() []Option {
	if c == nil {
		return nil
	}
	return c.Problems
}

func (c *Catalog) urgency() []Option {
	if c == nil {
		return nil
	}
	return c.Urgency
}

func (c *Catalog) betaTesting() []Option {
	if c == nil {
		return nil
	}
	return c.BetaTesting
}
