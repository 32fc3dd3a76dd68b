package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goliatone/go-ideaform/pkg/catalog"
	"github.com/goliatone/go-ideaform/pkg/model"
	"github.com/goliatone/go-ideaform/pkg/notify"
	"github.com/goliatone/go-ideaform/pkg/render"
	"github.com/goliatone/go-ideaform/pkg/submission"
	"github.com/goliatone/go-ideaform/pkg/validation"
	"github.com/goliatone/go-ideaform/pkg/wizard"
)

const (
	navContinue = 0
	navBack     = 1
)

// Result is what a terminal session produced.
type Result struct {
	// Data is the last payload that passed every guard.
	Data model.FormData
	// Receipt is set once an idea was accepted by the backend.
	Receipt *model.Receipt
}

// Runner walks a wizard.Wizard through terminal prompts. Each answer is
// validated before it reaches the wizard so invalid input is asked again
// straight away.
type Runner struct {
	driver       PromptDriver
	out          io.Writer
	outputFormat OutputFormat
	catalog      *catalog.Catalog
	screens      *Renderer
	theme        Theme
	collectOnly  bool
}

var _ notify.Notifier = (*Runner)(nil)

// NewRunner constructs a runner with defaults (survey driver, JSON output,
// embedded catalog).
func NewRunner(options ...Option) *Runner {
	r := &Runner{
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	if r.catalog == nil {
		r.catalog = catalog.Default()
	}
	r.screens = NewRenderer(r.theme)
	return r
}

// Wizard builds a wizard whose notifications are printed by the runner.
func (r *Runner) Wizard(options ...wizard.Option) *wizard.Wizard {
	return wizard.New(append(options, wizard.WithNotifier(r))...)
}

// Notify prints a notification as an info line.
func (r *Runner) Notify(n notify.Notification) {
	prefix := r.theme.InfoPrefix
	if n.Kind == notify.KindError {
		prefix = r.theme.ErrorPrefix
	}
	line := n.Title
	if n.Detail != "" {
		line += ": " + n.Detail
	}
	_ = r.driver.Info(context.Background(), prefix+line)
}

// ContentType reports the media type of Encode output.
func (r *Runner) ContentType() string {
	return ContentTypeFor(r.outputFormat)
}

// Encode serializes data in the configured output format.
func (r *Runner) Encode(data model.FormData) ([]byte, error) {
	return Encode(r.outputFormat, data)
}

// Run prompts until the user leaves the success screen, or, in collect-only
// mode, until step 3 validates.
func (r *Runner) Run(ctx context.Context, w *wizard.Wizard) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("tui: context is required")
	}
	if w == nil {
		return Result{}, ErrNoWizard
	}

	var result Result
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		snap := w.Snapshot()
		if err := r.show(ctx, snap); err != nil {
			return result, err
		}

		var (
			done bool
			err  error
		)
		switch snap.State {
		case wizard.StateStep1:
			err = r.step1(ctx, w)
		case wizard.StateStep2:
			err = r.step2(ctx, w)
		case wizard.StateStep3:
			done, err = r.step3(ctx, w, &result)
		case wizard.StateSubmitted:
			done, err = r.submitted(ctx, w)
		default:
			err = fmt.Errorf("tui: unexpected wizard state %s", snap.State)
		}
		if err != nil {
			return result, err
		}
		if done {
			return result, nil
		}
	}
}

func (r *Runner) show(ctx context.Context, snap wizard.Snapshot) error {
	screen, err := r.screens.Render(ctx, render.NewView(snap, r.catalog))
	if err != nil {
		return err
	}
	return r.driver.Info(ctx, strings.TrimRight(string(screen), "\n"))
}

func (r *Runner) step1(ctx context.Context, w *wizard.Wizard) error {
	if err := r.askText(ctx, w, model.FieldFullName, false); err != nil {
		return err
	}
	if err := r.askText(ctx, w, model.FieldEmail, false); err != nil {
		return err
	}
	if err := r.askText(ctx, w, model.FieldCompany, false); err != nil {
		return err
	}
	return stepError(w.Next())
}

func (r *Runner) step2(ctx context.Context, w *wizard.Wizard) error {
	if err := r.askCategory(ctx, w); err != nil {
		return err
	}
	if err := r.askText(ctx, w, model.FieldIdeaTitle, false); err != nil {
		return err
	}
	if err := r.askText(ctx, w, model.FieldDescription, true); err != nil {
		return err
	}
	if err := r.askProblems(ctx, w); err != nil {
		return err
	}

	choice, err := r.navigate(ctx, r.catalog.Buttons.Continue)
	if err != nil {
		return err
	}
	if choice == navBack {
		return w.Back()
	}
	return stepError(w.Next())
}

func (r *Runner) step3(ctx context.Context, w *wizard.Wizard, result *Result) (bool, error) {
	urgency, err := r.askOptional(ctx, model.FieldUrgency, r.catalog.Urgency, string(w.Data().Urgency))
	if err != nil {
		return false, err
	}
	beta, err := r.askOptional(ctx, model.FieldBetaTesting, r.catalog.BetaTesting, string(w.Data().BetaTesting))
	if err != nil {
		return false, err
	}
	consent, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: r.prompt(catalog.PlainText(r.catalog.Privacy.Notice)),
		Default: w.Data().PrivacyConsent,
		Help:    r.catalog.Field(model.FieldPrivacyConsent).Help,
	})
	if err != nil {
		return false, err
	}
	patch := model.Patch{
		Urgency:        model.Ptr(model.Urgency(urgency)),
		BetaTesting:    model.Ptr(model.BetaTesting(beta)),
		PrivacyConsent: model.Ptr(consent),
	}
	if err := w.Update(patch); err != nil {
		return false, err
	}

	primary := r.catalog.Buttons.Submit
	if r.collectOnly {
		primary = "Finish"
	}
	choice, err := r.navigate(ctx, primary)
	if err != nil {
		return false, err
	}
	if choice == navBack {
		return false, w.Back()
	}
	if r.collectOnly {
		return r.finish(w, result)
	}
	return false, r.submit(ctx, w, result)
}

// finish validates every step without submitting. Failing fields are shown
// and the wizard jumps to the first step that needs attention.
func (r *Runner) finish(w *wizard.Wizard, result *Result) (bool, error) {
	data := w.Data()
	failures := validation.ValidateAll(data)
	if len(failures) == 0 {
		result.Data = data
		return true, nil
	}
	for _, failure := range failures {
		if err := w.Blur(failure.Field); err != nil {
			return false, err
		}
	}
	return false, w.GoTo(failures[0].Field.Step())
}

func (r *Runner) submit(ctx context.Context, w *wizard.Wizard, result *Result) error {
	for {
		data := w.Data()
		receipt, err := w.Submit(ctx)
		if err == nil {
			result.Data = data
			result.Receipt = &receipt
			return nil
		}

		var invalid *validation.Error
		if errors.As(err, &invalid) {
			// the wizard moved to the failing step; the next screen lists why
			return nil
		}
		if errors.Is(err, wizard.ErrNoSubmitter) {
			return err
		}

		var serverErr *submission.ServerError
		if errors.As(err, &serverErr) && len(serverErr.Fields) > 0 {
			mapping := render.MapErrorPayload(serverErr.Fields)
			for _, field := range model.Fields() {
				for _, message := range mapping.Fields[field] {
					r.invalid(ctx, field, message)
				}
			}
			for _, message := range mapping.Form {
				_ = r.driver.Info(ctx, r.theme.ErrorPrefix+message)
			}
		}

		retry, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: r.prompt("Try submitting again?"),
			Default: true,
		})
		if err != nil {
			return err
		}
		if !retry {
			return nil
		}
	}
}

func (r *Runner) submitted(ctx context.Context, w *wizard.Wizard) (bool, error) {
	another, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: r.prompt(r.catalog.Buttons.Another + "?"),
	})
	if err != nil {
		return false, err
	}
	if !another {
		return true, nil
	}
	return false, w.Reset()
}

// askText prompts for a free text field until the answer passes the field
// validator, then stores it.
func (r *Runner) askText(ctx context.Context, w *wizard.Wizard, field model.Field, multiline bool) error {
	fc := r.catalog.Field(field)
	for {
		current := textValue(w.Data(), field)
		var (
			answer string
			err    error
		)
		if multiline {
			answer, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message: r.prompt(fc.Label),
				Default: current,
				Help:    fc.Help,
			})
		} else {
			answer, err = r.driver.Input(ctx, InputConfig{
				Message: r.prompt(fc.Label),
				Default: current,
				Help:    fc.Help,
			})
		}
		if err != nil {
			return err
		}

		patch := textPatch(field, strings.TrimSpace(answer))
		if message := validation.ValidateField(field, patch.Apply(w.Data())); message != "" {
			r.invalid(ctx, field, message)
			continue
		}
		return w.Update(patch)
	}
}

func (r *Runner) askCategory(ctx context.Context, w *wizard.Wizard) error {
	labels, values := optionLists(r.catalog.Categories)
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      r.prompt(r.catalog.Field(model.FieldCategory).Label),
		Options:      labels,
		DefaultIndex: max(slices.Index(values, string(w.Data().Category)), 0),
		Help:         r.catalog.Field(model.FieldCategory).Help,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(values) {
		return fmt.Errorf("tui: category selection %d out of range", idx)
	}
	return w.Update(model.Patch{Category: model.Ptr(model.Category(values[idx]))})
}

// askProblems offers the tag chips as a multi-select. Selections are applied
// through ToggleTag so the wizard enforces the cap.
func (r *Runner) askProblems(ctx context.Context, w *wizard.Wizard) error {
	labels, values := optionLists(r.catalog.Problems)
	fc := r.catalog.Field(model.FieldProblemsSolved)
	for {
		var defaults []int
		for _, tag := range w.Data().ProblemsSolved {
			if idx := slices.Index(values, string(tag)); idx >= 0 {
				defaults = append(defaults, idx)
			}
		}
		picked, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  r.prompt(fc.Label),
			Options:  labels,
			Defaults: defaults,
			Help:     fc.Help,
		})
		if err != nil {
			return err
		}

		var wanted []model.Tag
		for _, idx := range picked {
			if idx >= 0 && idx < len(values) {
				wanted = append(wanted, model.Tag(values[idx]))
			}
		}
		if err := syncTags(w, wanted); err != nil {
			if errors.Is(err, wizard.ErrTagLimit) {
				r.invalid(ctx, model.FieldProblemsSolved, validation.MsgProblemsTooMany)
				continue
			}
			return err
		}
		if message := validation.ValidateField(model.FieldProblemsSolved, w.Data()); message != "" {
			r.invalid(ctx, model.FieldProblemsSolved, message)
			continue
		}
		return nil
	}
}

// askOptional prompts for an optional closed choice. The first entry leaves
// the value unset.
func (r *Runner) askOptional(ctx context.Context, field model.Field, options []catalog.Option, current string) (string, error) {
	labels, values := optionLists(options)
	labels = append([]string{"Skip"}, labels...)
	values = append([]string{""}, values...)
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      r.prompt(r.catalog.Field(field).Label),
		Options:      labels,
		DefaultIndex: max(slices.Index(values, current), 0),
		Help:         r.catalog.Field(field).Help,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(values) {
		return "", fmt.Errorf("tui: %s selection %d out of range", field, idx)
	}
	return values[idx], nil
}

func (r *Runner) navigate(ctx context.Context, primary string) (int, error) {
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: r.prompt("Next"),
		Options: []string{primary, r.catalog.Buttons.Back},
	})
	if err != nil {
		return 0, err
	}
	if idx == navBack {
		return navBack, nil
	}
	return navContinue, nil
}

func (r *Runner) invalid(ctx context.Context, field model.Field, message string) {
	label := r.catalog.Field(field).Label
	if label == "" {
		label = string(field)
	}
	_ = r.driver.Info(ctx, r.theme.ErrorPrefix+invalidLine(label, message))
}

func (r *Runner) prompt(message string) string {
	return r.theme.PromptPrefix + message
}

// syncTags toggles the wizard selection towards wanted: removals first, then
// additions in the order picked.
func syncTags(w *wizard.Wizard, wanted []model.Tag) error {
	for _, tag := range w.Data().ProblemsSolved {
		if !slices.Contains(wanted, tag) {
			if err := w.ToggleTag(tag); err != nil {
				return err
			}
		}
	}
	for _, tag := range wanted {
		if w.Data().HasProblem(tag) {
			continue
		}
		if err := w.ToggleTag(tag); err != nil {
			return err
		}
	}
	return nil
}

// stepError swallows guard failures; the wizard shows them on the next
// screen.
func stepError(err error) error {
	var invalid *validation.Error
	if errors.As(err, &invalid) {
		return nil
	}
	return err
}

func textValue(data model.FormData, field model.Field) string {
	switch field {
	case model.FieldFullName:
		return data.FullName
	case model.FieldEmail:
		return data.Email
	case model.FieldCompany:
		return data.Company
	case model.FieldIdeaTitle:
		return data.IdeaTitle
	case model.FieldDescription:
		return data.Description
	default:
		return ""
	}
}

func textPatch(field model.Field, value string) model.Patch {
	switch field {
	case model.FieldFullName:
		return model.Patch{FullName: &value}
	case model.FieldEmail:
		return model.Patch{Email: &value}
	case model.FieldCompany:
		return model.Patch{Company: &value}
	case model.FieldIdeaTitle:
		return model.Patch{IdeaTitle: &value}
	case model.FieldDescription:
		return model.Patch{Description: &value}
	default:
		return model.Patch{}
	}
}

func optionLists(options []catalog.Option) ([]string, []string) {
	labels := make([]string, len(options))
	values := make([]string, len(options))
	for i, opt := range options {
		labels[i] = opt.Label
		values[i] = opt.Value
	}
	return labels, values
}
