package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ideaform/pkg/model"
	"github.com/goliatone/go-ideaform/pkg/render"
)

func TestMapErrorPayload(t *testing.T) {
	payload := map[string][]string{
		"/body/email":               {"Email invalid"},
		"fullName":                  {"Name is required", " Name is required "},
		"$.body.problemsSolved[3]":  {"Too many problems"},
		"request.payload.ideaTitle": {"Title too long"},
		"non_field_errors":          {"Form level error"},
		"/body/nickname":            {"Should fall back to form errors"},
		"":                          {"Unscoped form error"},
		"/description":              {"  "},
	}

	mapped := render.MapErrorPayload(payload)

	wantFields := map[model.Field][]string{
		model.FieldEmail:          {"Email invalid"},
		model.FieldFullName:       {"Name is required"},
		model.FieldProblemsSolved: {"Too many problems"},
		model.FieldIdeaTitle:      {"Title too long"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Unscoped form error", "Should fall back to form errors", "Form level error"}
	if diff := cmp.Diff(wantForm, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_StableOrder(t *testing.T) {
	payload := map[string][]string{
		"zeta":         {"Zeta failed"},
		"alpha":        {"Alpha failed"},
		"mid":          {"Mid failed"},
		"/body/email":  {"Blocked domain"},
		"email":        {"Already used"},
		"quota.global": {"Quota reached"},
	}
	want := render.ErrorMapping{
		Fields: map[model.Field][]string{model.FieldEmail: {"Blocked domain", "Already used"}},
		Form:   []string{"Alpha failed", "Mid failed", "Quota reached", "Zeta failed"},
	}
	for i := 0; i < 20; i++ {
		if diff := cmp.Diff(want, render.MapErrorPayload(payload)); diff != "" {
			t.Fatalf("run %d (-want +got):\n%s", i, diff)
		}
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	if !render.MapErrorPayload(nil).Empty() {
		t.Fatalf("nil payload should map to an empty mapping")
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
