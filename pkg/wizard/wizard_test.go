package wizard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ideaform/pkg/model"
	"github.com/goliatone/go-ideaform/pkg/notify"
	"github.com/goliatone/go-ideaform/pkg/submission"
	"github.com/goliatone/go-ideaform/pkg/validation"
	"github.com/goliatone/go-ideaform/pkg/wizard"
)

func completeData() model.FormData {
	return model.FormData{
		FullName:       "Jane Doe",
		Email:          "jane@x.com",
		Category:       model.CategoryToolsTemplates,
		IdeaTitle:      "Quarterly benchmark pack",
		Description:    "A template pack for quarterly reviews.",
		ProblemsSolved: []model.Tag{model.TagBenchmarking},
		PrivacyConsent: true,
	}
}

// advanceTo walks a wizard seeded with complete data to step.
func advanceTo(t *testing.T, w *wizard.Wizard, step int) {
	t.Helper()
	for w.State().Step() < step {
		if err := w.Next(); err != nil {
			t.Fatalf("next: %v", err)
		}
	}
}

func TestWizard_Step1Scenario(t *testing.T) {
	w := wizard.New()
	if err := w.Update(model.Patch{FullName: model.Ptr("Jane Doe"), Email: model.Ptr("jane@x.com")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	snap := w.Snapshot()
	if snap.State != wizard.StateStep2 {
		t.Fatalf("expected step2, got %s", snap.State)
	}
	if !snap.Errors.Empty() {
		t.Fatalf("expected no visible errors, got %+v", snap.Errors)
	}
}

func TestWizard_Step1GuardBlocks(t *testing.T) {
	cases := []struct {
		name string
		data model.FormData
		want []validation.FieldError
	}{
		{
			name: "empty",
			want: []validation.FieldError{
				{Field: model.FieldFullName, Message: validation.MsgFullNameRequired},
				{Field: model.FieldEmail, Message: validation.MsgEmailRequired},
			},
		},
		{
			name: "bad email",
			data: model.FormData{FullName: "Jane", Email: "jane@x"},
			want: []validation.FieldError{
				{Field: model.FieldEmail, Message: validation.MsgEmailInvalid},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := wizard.New(wizard.WithData(tc.data))
			err := w.Next()
			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if diff := cmp.Diff(tc.want, verr.Fields); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.want, w.Errors().For(1)); diff != "" {
				t.Fatalf("visible errors mismatch (-want +got):\n%s", diff)
			}
			if w.State() != wizard.StateStep1 {
				t.Fatalf("expected to stay on step1, got %s", w.State())
			}
		})
	}
}

func TestWizard_EmptyTitleShowsInlineError(t *testing.T) {
	data := completeData()
	data.IdeaTitle = ""
	w := wizard.New(wizard.WithData(data))
	advanceTo(t, w, 2)

	if err := w.Next(); err == nil {
		t.Fatalf("expected step 2 guard to fail")
	}
	if w.State() != wizard.StateStep2 {
		t.Fatalf("expected to stay on step2, got %s", w.State())
	}
	if got := w.Errors().Message(model.FieldIdeaTitle); got != "Give your idea a short title" {
		t.Fatalf("unexpected title error %q", got)
	}
}

func TestWizard_UpdateClearsFixedErrors(t *testing.T) {
	w := wizard.New()
	_ = w.Next()
	if w.Errors().Message(model.FieldEmail) == "" {
		t.Fatalf("expected email error to be visible")
	}

	if err := w.Update(model.Patch{Email: model.Ptr("jane@")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := w.Errors().Message(model.FieldEmail); got != validation.MsgEmailInvalid {
		t.Fatalf("expected invalid email message, got %q", got)
	}
	if err := w.Update(model.Patch{Email: model.Ptr("jane@x.com")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := w.Errors().Message(model.FieldEmail); got != "" {
		t.Fatalf("expected email error cleared, got %q", got)
	}
	if got := w.Errors().Message(model.FieldFullName); got != validation.MsgFullNameRequired {
		t.Fatalf("untouched field error should remain, got %q", got)
	}
}

func TestWizard_UpdateStoresTrimmedText(t *testing.T) {
	w := wizard.New()
	err := w.Update(model.Patch{FullName: model.Ptr(" Jane Doe "), Email: model.Ptr(" jane@x.com ")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	data := w.Data()
	if data.FullName != "Jane Doe" || data.Email != "jane@x.com" {
		t.Fatalf("expected trimmed contact details, got %q %q", data.FullName, data.Email)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
}

func TestWizard_UpdateDoesNotRevealUntouchedErrors(t *testing.T) {
	w := wizard.New()
	if err := w.Update(model.Patch{Email: model.Ptr("nope")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !w.Errors().Empty() {
		t.Fatalf("typing should not reveal errors before blur, got %+v", w.Errors())
	}
	if err := w.Blur(model.FieldEmail); err != nil {
		t.Fatalf("blur: %v", err)
	}
	if got := w.Errors().Message(model.FieldEmail); got != validation.MsgEmailInvalid {
		t.Fatalf("expected blur to show email error, got %q", got)
	}
	if err := w.Blur(model.Field("nickname")); !errors.Is(err, wizard.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestWizard_ToggleTagCap(t *testing.T) {
	w := wizard.New()
	for _, tag := range []model.Tag{model.TagBenchmarking, model.TagGrowthPlanning, model.TagRiskVisibility} {
		if err := w.ToggleTag(tag); err != nil {
			t.Fatalf("toggle %s: %v", tag, err)
		}
	}
	if err := w.ToggleTag(model.TagTeamAlignment); !errors.Is(err, wizard.ErrTagLimit) {
		t.Fatalf("expected ErrTagLimit, got %v", err)
	}
	data := w.Data()
	if data.HasProblem(model.TagTeamAlignment) {
		t.Fatalf("fourth chip must remain unselected")
	}
	want := []model.Tag{model.TagBenchmarking, model.TagGrowthPlanning, model.TagRiskVisibility}
	if diff := cmp.Diff(want, data.ProblemsSolved); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}

	if err := w.ToggleTag(model.TagGrowthPlanning); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := w.ToggleTag(model.TagTeamAlignment); err != nil {
		t.Fatalf("add after remove: %v", err)
	}
	want = []model.Tag{model.TagBenchmarking, model.TagRiskVisibility, model.TagTeamAlignment}
	if diff := cmp.Diff(want, w.Data().ProblemsSolved); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}

	if err := w.ToggleTag(model.Tag("vibes")); !errors.Is(err, wizard.ErrUnknownTag) {
		t.Fatalf("expected ErrUnknownTag, got %v", err)
	}
}

func TestWizard_BackAndGoTo(t *testing.T) {
	w := wizard.New(wizard.WithData(completeData()))
	if err := w.Back(); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Fatalf("back from step1 should be invalid, got %v", err)
	}
	if err := w.GoTo(2); !errors.Is(err, wizard.ErrStepAhead) {
		t.Fatalf("expected ErrStepAhead, got %v", err)
	}
	advanceTo(t, w, 3)
	if !w.Snapshot().Reachable(2) || w.Snapshot().Reachable(4) {
		t.Fatalf("unexpected reachability on step 3")
	}

	// Back is unconditional even when the data would fail the step guard.
	if err := w.Update(model.Patch{FullName: model.Ptr("")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := w.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if w.State() != wizard.StateStep2 {
		t.Fatalf("expected step2, got %s", w.State())
	}
	if err := w.GoTo(1); err != nil {
		t.Fatalf("goto 1: %v", err)
	}
	if err := w.GoTo(3); !errors.Is(err, wizard.ErrStepAhead) {
		t.Fatalf("expected ErrStepAhead, got %v", err)
	}
	if err := w.GoTo(7); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := w.Next(); err == nil {
		t.Fatalf("expected step1 guard to fail after clearing name")
	}
}

func TestWizard_NextFromStep3IsInvalid(t *testing.T) {
	w := wizard.New(wizard.WithData(completeData()))
	advanceTo(t, w, 3)
	if err := w.Next(); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestWizard_SubmitRequiresConsent(t *testing.T) {
	data := completeData()
	data.PrivacyConsent = false
	calls := 0
	w := wizard.New(
		wizard.WithData(data),
		wizard.WithSubmitter(wizard.SubmitterFunc(func(context.Context, model.FormData) (model.Receipt, error) {
			calls++
			return model.Receipt{IdeaNumber: 1}, nil
		})),
	)
	advanceTo(t, w, 3)

	_, err := w.Submit(context.Background())
	var verr *validation.Error
	if !errors.As(err, &verr) || verr.Step != 3 {
		t.Fatalf("expected step 3 validation error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("submitter must not be called without consent")
	}
	if got := w.Errors().Message(model.FieldPrivacyConsent); got != validation.MsgPrivacyConsentNeeded {
		t.Fatalf("unexpected consent message %q", got)
	}
	if w.State() != wizard.StateStep3 {
		t.Fatalf("expected step3, got %s", w.State())
	}
}

func TestWizard_SubmitJumpsToFirstFailingStep(t *testing.T) {
	w := wizard.New(wizard.WithData(completeData()), wizard.WithSubmitter(wizard.SubmitterFunc(
		func(context.Context, model.FormData) (model.Receipt, error) {
			t.Fatalf("submitter must not be called")
			return model.Receipt{}, nil
		})))
	advanceTo(t, w, 3)
	if err := w.Update(model.Patch{Description: model.Ptr("")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	_, err := w.Submit(context.Background())
	var verr *validation.Error
	if !errors.As(err, &verr) || verr.Step != 2 {
		t.Fatalf("expected step 2 validation error, got %v", err)
	}
	if w.State() != wizard.StateStep2 {
		t.Fatalf("expected step2, got %s", w.State())
	}
}

func TestWizard_SubmitSuccess(t *testing.T) {
	recorder := notify.NewRecorder()
	var sent model.FormData
	w := wizard.New(
		wizard.WithData(completeData()),
		wizard.WithNotifier(recorder),
		wizard.WithSubmitter(wizard.SubmitterFunc(func(_ context.Context, data model.FormData) (model.Receipt, error) {
			sent = data
			return model.Receipt{IdeaNumber: 482}, nil
		})),
	)
	advanceTo(t, w, 3)

	receipt, err := w.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.IdeaNumber != 482 {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
	if diff := cmp.Diff(completeData(), sent); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	snap := w.Snapshot()
	if snap.State != wizard.StateSubmitted || snap.Receipt == nil || snap.Receipt.IdeaNumber != 482 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	wantToasts := []notify.Notification{{Kind: notify.KindSuccess, Title: wizard.TitleSubmitted, Detail: "Your idea number is #482"}}
	if diff := cmp.Diff(wantToasts, recorder.Drain()); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}

	if err := w.Update(model.Patch{FullName: model.Ptr("x")}); !errors.Is(err, wizard.ErrLocked) {
		t.Fatalf("expected ErrLocked after submit, got %v", err)
	}
	if err := w.Back(); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if err := w.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	snap = w.Snapshot()
	if snap.State != wizard.StateStep1 || snap.Receipt != nil {
		t.Fatalf("unexpected snapshot after reset %+v", snap)
	}
	if diff := cmp.Diff(model.FormData{}, snap.Data); diff != "" {
		t.Fatalf("data not cleared (-want +got):\n%s", diff)
	}
}

func TestWizard_SubmitFailureKeepsData(t *testing.T) {
	recorder := notify.NewRecorder()
	w := wizard.New(
		wizard.WithData(completeData()),
		wizard.WithNotifier(recorder),
		wizard.WithSubmitter(wizard.SubmitterFunc(func(context.Context, model.FormData) (model.Receipt, error) {
			return model.Receipt{}, &submission.ServerError{Status: 500, Message: "Failed to submit idea"}
		})),
	)
	advanceTo(t, w, 3)

	_, err := w.Submit(context.Background())
	var serverErr *submission.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected wrapped ServerError, got %v", err)
	}
	if w.State() != wizard.StateStep3 {
		t.Fatalf("expected step3 after failure, got %s", w.State())
	}
	if diff := cmp.Diff(completeData(), w.Data()); diff != "" {
		t.Fatalf("data changed after failure (-want +got):\n%s", diff)
	}
	want := []notify.Notification{{Kind: notify.KindError, Title: "Submission failed", Detail: "Failed to submit idea"}}
	if diff := cmp.Diff(want, recorder.Drain()); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
	if err := w.Reset(); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Fatalf("reset should only work once submitted, got %v", err)
	}
}

func TestWizard_OneSubmissionInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	w := wizard.New(
		wizard.WithData(completeData()),
		wizard.WithSubmitter(wizard.SubmitterFunc(func(context.Context, model.FormData) (model.Receipt, error) {
			close(started)
			<-release
			return model.Receipt{IdeaNumber: 9}, nil
		})),
	)
	advanceTo(t, w, 3)

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background())
		done <- err
	}()
	<-started

	if w.State() != wizard.StateSubmitting {
		t.Fatalf("expected submitting, got %s", w.State())
	}
	if _, err := w.Submit(context.Background()); !errors.Is(err, wizard.ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}
	if err := w.Update(model.Patch{Company: model.Ptr("Acme")}); !errors.Is(err, wizard.ErrLocked) {
		t.Fatalf("expected ErrLocked while submitting, got %v", err)
	}
	if err := w.Back(); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition while submitting, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got, ok := w.Receipt(); !ok || got.IdeaNumber != 9 {
		t.Fatalf("unexpected receipt %+v", got)
	}
}

func TestWizard_SubmitWithoutSubmitter(t *testing.T) {
	w := wizard.New(wizard.WithData(completeData()))
	advanceTo(t, w, 3)
	if _, err := w.Submit(context.Background()); !errors.Is(err, wizard.ErrNoSubmitter) {
		t.Fatalf("expected ErrNoSubmitter, got %v", err)
	}
	if w.State() != wizard.StateStep3 {
		t.Fatalf("expected step3, got %s", w.State())
	}
}

func TestWizard_SubmitFromStep1IsInvalid(t *testing.T) {
	w := wizard.New(wizard.WithData(completeData()))
	if _, err := w.Submit(context.Background()); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
