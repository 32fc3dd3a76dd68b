package model_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ideaform/pkg/model"
)

func sampleData() model.FormData {
	return model.FormData{
		FullName:       "Jane Doe",
		Email:          "jane@x.com",
		Company:        "Acme",
		Category:       model.CategoryToolsTemplates,
		IdeaTitle:      "Quarterly benchmark pack",
		Description:    "A template pack for quarterly benchmarking.",
		ProblemsSolved: []model.Tag{model.TagBenchmarking, model.TagReportingTime},
		Urgency:        model.UrgencyImportant,
		BetaTesting:    model.BetaTestingYes,
		PrivacyConsent: true,
	}
}

func TestPatchApply_OnlyTouchesNamedFields(t *testing.T) {
	before := sampleData()
	beforeJSON, err := json.Marshal(before)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	after := model.Patch{IdeaTitle: model.Ptr("Renamed")}.Apply(before)

	if after.IdeaTitle != "Renamed" {
		t.Fatalf("idea title not applied, got %q", after.IdeaTitle)
	}

	want := before
	want.IdeaTitle = "Renamed"
	if diff := cmp.Diff(want, after); diff != "" {
		t.Fatalf("unexpected field changes (-want +got):\n%s", diff)
	}

	// the source value must not be mutated
	again, err := json.Marshal(before)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(again) != string(beforeJSON) {
		t.Fatalf("source mutated:\nbefore %s\nafter  %s", beforeJSON, again)
	}
}

func TestPatchApply_ProblemsSolvedIsCopied(t *testing.T) {
	tags := []model.Tag{model.TagGrowthPlanning}
	after := model.Patch{ProblemsSolved: &tags}.Apply(model.FormData{})

	tags[0] = model.TagRiskVisibility
	if after.ProblemsSolved[0] != model.TagGrowthPlanning {
		t.Fatalf("patch aliases caller slice: %v", after.ProblemsSolved)
	}
}

func TestPatchApply_EmptyPatchIsIdentity(t *testing.T) {
	before := sampleData()
	if diff := cmp.Diff(before, model.Patch{}.Apply(before)); diff != "" {
		t.Fatalf("empty patch changed data (-want +got):\n%s", diff)
	}
	if !(model.Patch{}).Empty() {
		t.Fatalf("expected empty patch")
	}
}

func TestPatchTrimmed(t *testing.T) {
	patch := model.Patch{
		FullName:    model.Ptr("  Jane Doe "),
		Email:       model.Ptr("jane@x.com \n"),
		Description: model.Ptr("\tA template pack. "),
		Category:    model.Ptr(model.CategoryOther),
	}
	got := patch.Trimmed().Apply(model.FormData{Company: "  kept  "})
	want := model.FormData{
		FullName:    "Jane Doe",
		Email:       "jane@x.com",
		Company:     "  kept  ",
		Category:    model.CategoryOther,
		Description: "A template pack.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("trimmed patch (-want +got):\n%s", diff)
	}
	if *patch.Email != "jane@x.com \n" {
		t.Fatalf("Trimmed must not modify the receiver, got %q", *patch.Email)
	}
	if patch.Trimmed().IdeaTitle != nil {
		t.Fatalf("absent fields must stay absent")
	}
}

func TestPatchFields(t *testing.T) {
	patch := model.Patch{
		PrivacyConsent: model.Ptr(true),
		FullName:       model.Ptr("Jane"),
		Category:       model.Ptr(model.CategoryOther),
	}
	want := []model.Field{model.FieldFullName, model.FieldCategory, model.FieldPrivacyConsent}
	if diff := cmp.Diff(want, patch.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFormDataJSONNames(t *testing.T) {
	raw, err := json.Marshal(sampleData())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range model.Fields() {
		if _, ok := decoded[string(field)]; !ok {
			t.Fatalf("missing json member %q in %s", field, raw)
		}
	}
}

func TestFieldStep(t *testing.T) {
	cases := map[model.Field]int{
		model.FieldEmail:          1,
		model.FieldProblemsSolved: 2,
		model.FieldPrivacyConsent: 3,
		model.Field("unknown"):    0,
	}
	for field, want := range cases {
		if got := field.Step(); got != want {
			t.Fatalf("%s: want step %d, got %d", field, want, got)
		}
	}
}

func TestVocabularyValidity(t *testing.T) {
	if model.Category("").Valid() {
		t.Fatalf("empty category must be invalid")
	}
	if !model.Urgency("").Valid() || !model.BetaTesting("").Valid() {
		t.Fatalf("optional enums accept empty values")
	}
	if model.Tag("growth").Valid() {
		t.Fatalf("unexpected tag accepted")
	}
	for _, tag := range model.Tags() {
		if !tag.Valid() {
			t.Fatalf("vocabulary tag %q rejected", tag)
		}
	}
}
