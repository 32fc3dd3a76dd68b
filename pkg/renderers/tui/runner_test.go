package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ideaform/pkg/model"
	"github.com/goliatone/go-ideaform/pkg/submission"
	"github.com/goliatone/go-ideaform/pkg/wizard"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	prompts      []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.prompts = append(s.prompts, cfg.Message)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	s.prompts = append(s.prompts, cfg.Message)
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	s.prompts = append(s.prompts, cfg.Message)
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	s.prompts = append(s.prompts, cfg.Message)
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	s.prompts = append(s.prompts, cfg.Message)
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) sawInfo(fragment string) bool {
	for _, msg := range s.infoMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

func acceptingSubmitter(number int) wizard.Submitter {
	return wizard.SubmitterFunc(func(context.Context, model.FormData) (model.Receipt, error) {
		return model.Receipt{IdeaNumber: number}, nil
	})
}

func TestRunner_FullFlow(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "Jane Doe", "jane", "jane@x.com", "", "Quarterly pack"},
		textAreas: []string{"A template pack for quarterly reviews."},
		// category, step 2 nav, urgency, beta testing, step 3 nav
		selectIdx: []int{1, 0, 2, 1, 0},
		multiIdx:  [][]int{{0, 1, 2, 3}, {0}},
		confirm:   []bool{true, false},
	}
	runner := NewRunner(WithPromptDriver(driver))
	w := runner.Wizard(wizard.WithSubmitter(acceptingSubmitter(482)))

	result, err := runner.Run(context.Background(), w)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := model.FormData{
		FullName:       "Jane Doe",
		Email:          "jane@x.com",
		Category:       model.CategoryToolsTemplates,
		IdeaTitle:      "Quarterly pack",
		Description:    "A template pack for quarterly reviews.",
		ProblemsSolved: []model.Tag{model.TagBenchmarking},
		Urgency:        model.UrgencyImportant,
		BetaTesting:    model.BetaTestingYes,
		PrivacyConsent: true,
	}
	if diff := cmp.Diff(want, result.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if result.Receipt == nil || result.Receipt.IdeaNumber != 482 {
		t.Fatalf("expected receipt 482, got %+v", result.Receipt)
	}

	for _, fragment := range []string{
		"Invalid Full name: Please enter your name",
		"Invalid Work email: Please enter a valid email address",
		"Invalid Problems it solves: Pick no more than 3 problems",
		"Idea submitted: Your idea number is #482",
		"Your idea number: #482",
	} {
		if !driver.sawInfo(fragment) {
			t.Fatalf("expected info %q, got %q", fragment, driver.infoMessages)
		}
	}
	if driver.multiPos != 2 {
		t.Fatalf("expected the chip prompt to repeat once, got %d prompts", driver.multiPos)
	}
}

func TestRunner_SubmitFailureOffersRetry(t *testing.T) {
	attempts := 0
	submitter := wizard.SubmitterFunc(func(context.Context, model.FormData) (model.Receipt, error) {
		attempts++
		if attempts == 1 {
			return model.Receipt{}, &submission.ServerError{Status: 500, Message: "Failed to submit idea"}
		}
		return model.Receipt{IdeaNumber: 7}, nil
	})
	driver := &stubDriver{
		// urgency skip, beta skip, submit
		selectIdx: []int{0, 0, 0},
		// consent, retry, submit another
		confirm: []bool{true, true, false},
	}
	runner := NewRunner(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))
	w := runner.Wizard(wizard.WithSubmitter(submitter), wizard.WithData(completeData()))
	advance(t, w, 3)

	result, err := runner.Run(context.Background(), w)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected two attempts, got %d", attempts)
	}
	if result.Receipt == nil || result.Receipt.IdeaNumber != 7 {
		t.Fatalf("expected receipt 7, got %+v", result.Receipt)
	}
	if !driver.sawInfo("! Submission failed: Failed to submit idea") {
		t.Fatalf("expected failure notification, got %q", driver.infoMessages)
	}
}

func TestRunner_ServerFieldErrorsArePrinted(t *testing.T) {
	submitter := wizard.SubmitterFunc(func(context.Context, model.FormData) (model.Receipt, error) {
		return model.Receipt{}, &submission.ServerError{
			Status:  400,
			Message: "Invalid idea submission",
			Fields:  map[string][]string{"/email": {"address is blocked"}},
		}
	})
	driver := &stubDriver{
		// urgency, beta, submit, then the re-prompted step 3 goes back
		selectIdx: []int{0, 0, 0, 0, 0, 1},
		// consent, no retry, consent again
		confirm: []bool{true, false, true},
	}
	runner := NewRunner(WithPromptDriver(driver))
	w := runner.Wizard(wizard.WithSubmitter(submitter), wizard.WithData(completeData()))
	advance(t, w, 3)

	// the script runs out on step 2, which ends the session
	if _, err := runner.Run(context.Background(), w); err == nil {
		t.Fatalf("expected the exhausted script to stop the run")
	}
	if !driver.sawInfo("Invalid Work email: address is blocked") {
		t.Fatalf("expected mapped field error, got %q", driver.infoMessages)
	}
	if w.State() != wizard.StateStep2 {
		t.Fatalf("expected wizard on step 2 after back, got %s", w.State())
	}
}

func TestRunner_SubmitWithoutConsentReprompts(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{0, 0, 0, 0, 0, 0},
		confirm:   []bool{false, true, false},
	}
	runner := NewRunner(WithPromptDriver(driver))
	w := runner.Wizard(wizard.WithSubmitter(acceptingSubmitter(9)), wizard.WithData(completeData()))
	advance(t, w, 3)

	result, err := runner.Run(context.Background(), w)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !driver.sawInfo("Invalid Privacy: Please accept the privacy policy to submit") {
		t.Fatalf("expected consent error, got %q", driver.infoMessages)
	}
	if result.Receipt == nil || result.Receipt.IdeaNumber != 9 {
		t.Fatalf("expected receipt 9, got %+v", result.Receipt)
	}
}

func TestRunner_CollectOnly(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{3, 0, 0},
		confirm:   []bool{true},
	}
	runner := NewRunner(WithPromptDriver(driver), WithCollectOnly(true), WithOutputFormat(OutputFormatPrettyText))
	w := runner.Wizard(wizard.WithData(completeData()))
	advance(t, w, 3)

	result, err := runner.Run(context.Background(), w)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Receipt != nil {
		t.Fatalf("collect-only must not submit")
	}
	if result.Data.Urgency != model.UrgencyCritical {
		t.Fatalf("expected critical urgency, got %q", result.Data.Urgency)
	}
	if runner.ContentType() != "text/plain" {
		t.Fatalf("unexpected content type %q", runner.ContentType())
	}
	out, err := runner.Encode(result.Data)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(out), "urgency=critical\n") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunner_AbortStopsRun(t *testing.T) {
	runner := NewRunner(WithPromptDriver(&stubDriver{}))
	if _, err := runner.Run(context.Background(), runner.Wizard()); err == nil {
		t.Fatalf("expected driver error to stop the run")
	}
	if _, err := runner.Run(context.Background(), nil); !errors.Is(err, ErrNoWizard) {
		t.Fatalf("expected ErrNoWizard, got %v", err)
	}
}

func completeData() model.FormData {
	return model.FormData{
		FullName:       "Jane Doe",
		Email:          "jane@x.com",
		Category:       model.CategoryToolsTemplates,
		IdeaTitle:      "Quarterly benchmark pack",
		Description:    "A template pack for quarterly reviews.",
		ProblemsSolved: []model.Tag{model.TagBenchmarking},
	}
}

func advance(t *testing.T, w *wizard.Wizard, step int) {
	t.Helper()
	for w.State().Step() < step {
		if err := w.Next(); err != nil {
			t.Fatalf("next: %v", err)
		}
	}
}
