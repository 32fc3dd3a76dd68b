package render_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ideaform/pkg/catalog"
	"github.com/goliatone/go-ideaform/pkg/model"
	"github.com/goliatone/go-ideaform/pkg/notify"
	"github.com/goliatone/go-ideaform/pkg/render"
	"github.com/goliatone/go-ideaform/pkg/theming"
	"github.com/goliatone/go-ideaform/pkg/validation"
	"github.com/goliatone/go-ideaform/pkg/wizard"
)

func TestNewView_Step2WithErrors(t *testing.T) {
	w := wizard.New(wizard.WithData(model.FormData{
		FullName:       "Jane Doe",
		Email:          "jane@x.com",
		ProblemsSolved: []model.Tag{model.TagBenchmarking, model.TagGrowthPlanning, model.TagRiskVisibility},
	}))
	if err := w.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	_ = w.Next()

	view := render.NewView(w.Snapshot(), catalog.Default(),
		render.WithHiddenFields(render.CSRFToken("_csrf", "tok"), render.Hidden("step", 2)),
		render.WithAlerts(" Server busy ", "Server busy"),
	)

	if view.Screen != render.ScreenStep2 || view.Step != 2 || view.StepLabel != "Step 2 of 3" {
		t.Fatalf("unexpected screen %s step %d label %q", view.Screen, view.Step, view.StepLabel)
	}
	if view.Action != "/submit-idea/step/2" || !view.CanGoBack {
		t.Fatalf("unexpected action %q canGoBack %v", view.Action, view.CanGoBack)
	}
	if got := view.Fields["ideaTitle"].Error; got != validation.MsgIdeaTitleRequired {
		t.Fatalf("expected title error, got %q", got)
	}
	if view.Fields["ideaTitle"].Counter != "0/100" {
		t.Fatalf("unexpected counter %q", view.Fields["ideaTitle"].Counter)
	}

	var tabs []bool
	for _, tab := range view.Tabs {
		tabs = append(tabs, tab.Reachable)
	}
	if diff := cmp.Diff([]bool{true, true, false}, tabs); diff != "" {
		t.Fatalf("tab reachability mismatch (-want +got):\n%s", diff)
	}

	disabled := 0
	for _, opt := range view.Problems {
		if opt.Disabled {
			disabled++
			if opt.Selected {
				t.Fatalf("selected chip %s must not be disabled", opt.Value)
			}
		}
	}
	if disabled != len(model.Tags())-model.MaxProblems {
		t.Fatalf("expected unselected chips disabled at cap, got %d", disabled)
	}

	wantHidden := []render.HiddenField{{Name: "_csrf", Value: "tok"}, {Name: "step", Value: "2"}}
	if diff := cmp.Diff(wantHidden, view.Hidden); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Server busy"}, view.Alerts); diff != "" {
		t.Fatalf("alerts mismatch (-want +got):\n%s", diff)
	}
}

func TestNewView_Success(t *testing.T) {
	w := wizard.New(
		wizard.WithData(model.FormData{
			FullName:       "Jane Doe",
			Email:          "jane@x.com",
			Category:       model.CategoryOther,
			IdeaTitle:      "Title",
			Description:    "Body",
			ProblemsSolved: []model.Tag{model.TagReportingTime},
			PrivacyConsent: true,
		}),
		wizard.WithSubmitter(wizard.SubmitterFunc(func(context.Context, model.FormData) (model.Receipt, error) {
			return model.Receipt{IdeaNumber: 482}, nil
		})),
	)
	_ = w.Next()
	_ = w.Next()
	if _, err := w.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	toasts := []notify.Notification{{Kind: notify.KindSuccess, Title: "Idea submitted"}}
	view := render.NewView(w.Snapshot(), nil, render.WithToasts(toasts))
	if view.Screen != render.ScreenSuccess {
		t.Fatalf("expected success screen, got %s", view.Screen)
	}
	if view.Receipt == nil || view.Receipt.Display != "#482" {
		t.Fatalf("unexpected receipt %+v", view.Receipt)
	}
	if diff := cmp.Diff([]render.Toast{{Kind: "success", Title: "Idea submitted"}}, view.Toasts); diff != "" {
		t.Fatalf("toasts mismatch (-want +got):\n%s", diff)
	}
	for _, tab := range view.Tabs {
		if tab.Reachable || !tab.Complete {
			t.Fatalf("tabs after submission should be complete and unreachable: %+v", tab)
		}
	}
}

func TestNewView_Theme(t *testing.T) {
	selector, err := theming.NewSelector()
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	selection, err := selector.Select("", "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	view := render.NewView(wizard.New().Snapshot(), nil,
		render.WithTheme(theming.RendererConfig(selection, theming.DefaultFallbacks())))
	if view.Theme == nil || view.Theme.Variant != "dark" {
		t.Fatalf("unexpected theme %+v", view.Theme)
	}
	if view.Theme.Stylesheet != "/static/ideaform.css" {
		t.Fatalf("unexpected stylesheet %q", view.Theme.Stylesheet)
	}
	if view.Theme.CSSVars["--surface"] != "#141a26" {
		t.Fatalf("dark tokens missing")
	}
}

func TestJSONRenderer(t *testing.T) {
	view := render.NewView(wizard.New().Snapshot(), nil)
	out, err := render.NewJSON(false).Render(context.Background(), view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["screen"] != "step1" {
		t.Fatalf("unexpected screen %v", decoded["screen"])
	}
}

func TestRegistryNegotiate(t *testing.T) {
	registry := render.NewRegistry()
	html := stubRenderer{name: "html", contentType: "text/html; charset=utf-8"}
	registry.MustRegister(html)
	registry.MustRegister(render.NewJSON(false))

	cases := map[string]string{
		"":                                  "html",
		"*/*":                               "html",
		"application/json":                  "json",
		"text/html,application/xhtml+xml":   "html",
		"application/xml, application/json": "json",
		"text/plain":                        "html",
	}
	for accept, want := range cases {
		got, err := registry.Negotiate(accept)
		if err != nil {
			t.Fatalf("negotiate %q: %v", accept, err)
		}
		if got.Name() != want {
			t.Fatalf("accept %q: want %s, got %s", accept, want, got.Name())
		}
	}
	if err := registry.Register(render.NewJSON(true)); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if diff := cmp.Diff([]string{"html", "json"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

type stubRenderer struct {
	name        string
	contentType string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return s.contentType }
func (s stubRenderer) Render(context.Context, render.View) ([]byte, error) {
	return []byte(s.name), nil
}
