package ideaform

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-ideaform/pkg/render"
	"github.com/goliatone/go-ideaform/pkg/submission"
	"github.com/goliatone/go-ideaform/pkg/wizard"
)

func TestRenderHTML_FirstStep(t *testing.T) {
	w := NewWizard("")
	out, err := RenderHTML(context.Background(), w, render.WithHiddenFields(render.CSRFToken("_csrf", "tok")))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{`data-theme="ideaform"`, `name="fullName"`, `value="tok"`} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
}

func TestNewWizard_SubmitsToEndpoint(t *testing.T) {
	w := NewWizard("http://127.0.0.1:1/api/submit-idea")
	if w.State() != wizard.StateStep1 {
		t.Fatalf("expected step1, got %s", w.State())
	}
	if submission.DefaultEndpoint == "" {
		t.Fatalf("default endpoint must be set")
	}
}

func TestEmbeddedFiles(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "wizard.tmpl"); err != nil {
		t.Fatalf("expected shell template: %v", err)
	}
	if _, err := fs.ReadFile(AssetsFS(), "ideaform.css"); err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
	if !strings.Contains(string(ContractDocument()), "submitIdea") {
		t.Fatalf("expected the submit operation in the contract")
	}
}
