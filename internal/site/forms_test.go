package site

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ideaform/pkg/model"
)

func TestStepDecoder_PatchesOnlyPostedFields(t *testing.T) {
	action, patch, err := newStepDecoder().Decode(url.Values{
		"action":   {"continue"},
		"fullName": {"Jane Doe"},
		"email":    {""},
		"_csrf":    {"token"},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if action.Name != ActionContinue {
		t.Fatalf("unexpected action %+v", action)
	}
	if diff := cmp.Diff([]model.Field{model.FieldFullName, model.FieldEmail}, patch.Fields()); diff != "" {
		t.Fatalf("patched fields (-want +got):\n%s", diff)
	}
	got := patch.Apply(model.FormData{Email: "old@x.com", IdeaTitle: "kept"})
	want := model.FormData{FullName: "Jane Doe", IdeaTitle: "kept"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("applied patch (-want +got):\n%s", diff)
	}
}

func TestStepDecoder_Consent(t *testing.T) {
	decoder := newStepDecoder()

	_, patch, err := decoder.Decode(url.Values{"consentShown": {"true"}})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if patch.PrivacyConsent == nil || *patch.PrivacyConsent {
		t.Fatalf("an unchecked box must withdraw consent, got %v", patch.PrivacyConsent)
	}

	_, patch, err = decoder.Decode(url.Values{"consentShown": {"true"}, "privacyConsent": {"true"}})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if patch.PrivacyConsent == nil || !*patch.PrivacyConsent {
		t.Fatalf("expected consent, got %v", patch.PrivacyConsent)
	}

	_, patch, err = decoder.Decode(url.Values{"fullName": {"Jane"}})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if patch.PrivacyConsent != nil {
		t.Fatalf("other steps must not touch consent")
	}
}

func TestParseAction(t *testing.T) {
	cases := map[string]Action{
		"":                    {Name: ActionContinue},
		"back":                {Name: ActionBack},
		"submit":              {Name: ActionSubmit},
		"toggle:benchmarking": {Name: ActionToggle, Target: "benchmarking"},
		" blur:email ":        {Name: ActionBlur, Target: "email"},
	}
	for raw, want := range cases {
		got, err := parseAction(raw)
		if err != nil {
			t.Fatalf("parseAction(%q): %v", raw, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("parseAction(%q) (-want +got):\n%s", raw, diff)
		}
	}
	for _, raw := range []string{"toggle:", "launch"} {
		if _, err := parseAction(raw); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}
