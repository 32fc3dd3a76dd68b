package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ideaform/pkg/model"
	"github.com/goliatone/go-ideaform/pkg/wizard"
)

// CompleteFormData returns a submission that passes every step guard.
func CompleteFormData() model.FormData {
	return model.FormData{
		FullName:       "Jane Doe",
		Email:          "jane@x.com",
		Company:        "Acme Advisory",
		Category:       model.CategoryToolsTemplates,
		IdeaTitle:      "Quarterly benchmark pack",
		Description:    "A template pack for quarterly reviews.",
		ProblemsSolved: []model.Tag{model.TagBenchmarking, model.TagReportingTime},
		Urgency:        model.UrgencyImportant,
		BetaTesting:    model.BetaTestingYes,
		PrivacyConsent: true,
	}
}

// WizardAt returns a wizard seeded with data and advanced to step.
func WizardAt(t *testing.T, data model.FormData, step int, options ...wizard.Option) *wizard.Wizard {
	t.Helper()

	w := wizard.New(append([]wizard.Option{wizard.WithData(data)}, options...)...)
	for w.State().Step() < step {
		if err := w.Next(); err != nil {
			t.Fatalf("advance wizard to step %d: %v", step, err)
		}
	}
	return w
}

// SubmissionBackend is a stub idea backend recording every payload it
// receives and answering with a fixed status and body.
type SubmissionBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	status   int
	body     string
	payloads []model.FormData
}

// NewSubmissionBackend starts a backend that replies with status and a JSON
// body. The server is closed when the test ends.
func NewSubmissionBackend(t *testing.T, status int, body string) *SubmissionBackend {
	t.Helper()

	backend := &SubmissionBackend{status: status, body: body}
	backend.Server = httptest.NewServer(http.HandlerFunc(backend.serve))
	t.Cleanup(backend.Server.Close)
	return backend
}

// URL is the submit endpoint of the backend.
func (b *SubmissionBackend) URL() string {
	return b.Server.URL + "/api/submit-idea"
}

// Respond changes the canned reply.
func (b *SubmissionBackend) Respond(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = status
	b.body = body
}

// Payloads returns the decoded submissions received so far.
func (b *SubmissionBackend) Payloads() []model.FormData {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.FormData(nil), b.payloads...)
}

func (b *SubmissionBackend) serve(w http.ResponseWriter, r *http.Request) {
	var payload model.FormData
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error":"bad payload"}`, http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	b.payloads = append(b.payloads, payload)
	status, body := b.status, b.body
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
