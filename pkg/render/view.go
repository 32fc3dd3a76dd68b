package render

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-ideaform/pkg/catalog"
	"github.com/goliatone/go-ideaform/pkg/model"
	"github.com/goliatone/go-ideaform/pkg/notify"
	"github.com/goliatone/go-ideaform/pkg/theming"
	"github.com/goliatone/go-ideaform/pkg/validation"
	"github.com/goliatone/go-ideaform/pkg/wizard"
)

// Screens rendered by the wizard.
const (
	ScreenStep1   = "step1"
	ScreenStep2   = "step2"
	ScreenStep3   = "step3"
	ScreenSuccess = "success"
)

// View is the presentation snapshot handed to renderers. It is plain data so
// template engines can consume it after a JSON round trip.
type View struct {
	Screen          string                  `json:"screen"`
	Step            int                     `json:"step"`
	TotalSteps      int                     `json:"totalSteps"`
	StepLabel       string                  `json:"stepLabel"`
	Title           string                  `json:"title"`
	Intro           string                  `json:"intro"`
	StepTitle       string                  `json:"stepTitle"`
	StepDescription string                  `json:"stepDescription"`
	Action          string                  `json:"action"`
	ResetAction     string                  `json:"resetAction"`
	Tabs            []Tab                   `json:"tabs"`
	Fields          map[string]FieldView    `json:"fields"`
	Categories      []OptionView            `json:"categories"`
	Problems        []OptionView            `json:"problems"`
	ProblemsCount   int                     `json:"problemsCount"`
	ProblemsMax     int                     `json:"problemsMax"`
	Urgency         []OptionView            `json:"urgency"`
	BetaTesting     []OptionView            `json:"betaTesting"`
	PrivacyNotice   string                  `json:"privacyNotice"`
	Buttons         catalog.Buttons         `json:"buttons"`
	Submitting      bool                    `json:"submitting"`
	CanGoBack       bool                    `json:"canGoBack"`
	Errors          []validation.FieldError `json:"errors"`
	Alerts          []string                `json:"alerts"`
	Toasts          []Toast                 `json:"toasts"`
	Receipt         *ReceiptView            `json:"receipt,omitempty"`
	Success         catalog.SuccessCopy     `json:"success"`
	Hidden          []HiddenField           `json:"hidden"`
	Theme           *ThemeView              `json:"theme,omitempty"`
}

// Tab is one step indicator.
type Tab struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Href      string `json:"href"`
	Current   bool   `json:"current"`
	Reachable bool   `json:"reachable"`
	Complete  bool   `json:"complete"`
}

// FieldView carries the value, copy and visible error of one field.
type FieldView struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
	Help        string `json:"help,omitempty"`
	Value       string `json:"value"`
	Checked     bool   `json:"checked,omitempty"`
	Error       string `json:"error,omitempty"`
	Invalid     bool   `json:"invalid"`
	MaxLength   int    `json:"maxLength,omitempty"`
	Length      int    `json:"length,omitempty"`
	Counter     string `json:"counter,omitempty"`
}

// OptionView is one choice of a closed vocabulary.
type OptionView struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Selected    bool   `json:"selected"`
	Disabled    bool   `json:"disabled"`
}

// Toast is a rendered notification.
type Toast struct {
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// ReceiptView shows the idea number.
type ReceiptView struct {
	Number  int    `json:"number"`
	Display string `json:"display"`
}

// ThemeView is the subset of the theme configuration templates use.
type ThemeView struct {
	Name       string            `json:"name"`
	Variant    string            `json:"variant"`
	CSSVars    map[string]string `json:"cssVars"`
	Stylesheet string            `json:"stylesheet"`
	Style      string            `json:"style"`
}

// ViewOption configures NewView.
type ViewOption func(*viewConfig)

type viewConfig struct {
	basePath string
	toasts   []notify.Notification
	alerts   []string
	hidden   []HiddenField
	theme    *theme.RendererConfig
}

// WithBasePath sets the URL the wizard is mounted on ("/submit-idea").
func WithBasePath(path string) ViewOption {
	return func(cfg *viewConfig) {
		cfg.basePath = strings.TrimRight(strings.TrimSpace(path), "/")
	}
}

// WithToasts attaches notifications drained for this response.
func WithToasts(toasts []notify.Notification) ViewOption {
	return func(cfg *viewConfig) {
		cfg.toasts = append(cfg.toasts, toasts...)
	}
}

// WithAlerts attaches form-level messages, such as server side rejections.
func WithAlerts(alerts ...string) ViewOption {
	return func(cfg *viewConfig) {
		cfg.alerts = MergeFormErrors(cfg.alerts, alerts...)
	}
}

// WithHiddenFields adds hidden inputs to every step form.
func WithHiddenFields(fields ...HiddenField) ViewOption {
	return func(cfg *viewConfig) {
		cfg.hidden = append(cfg.hidden, fields...)
	}
}

// WithTheme applies a resolved theme configuration.
func WithTheme(config *theme.RendererConfig) ViewOption {
	return func(cfg *viewConfig) {
		cfg.theme = config
	}
}

// DisplayIdeaNumber formats an idea number as shown to users.
func DisplayIdeaNumber(number int) string {
	return fmt.Sprintf("#%d", number)
}

// NewView derives the presentation of snap using the copy in cat.
func NewView(snap wizard.Snapshot, cat *catalog.Catalog, options ...ViewOption) View {
	cfg := viewConfig{basePath: "/submit-idea"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cat == nil {
		cat = catalog.Default()
	}

	data := snap.Data
	step := snap.Step()
	view := View{
		Screen:        screenFor(snap.State),
		Step:          step,
		TotalSteps:    wizard.LastStep,
		Title:         cat.Form.Title,
		Intro:         cat.Form.Intro,
		Action:        cfg.basePath + "/step/" + fmt.Sprint(step),
		ResetAction:   cfg.basePath + "/reset",
		PrivacyNotice: cat.Privacy.Notice,
		Buttons:       cat.Buttons,
		Submitting:    snap.State == wizard.StateSubmitting,
		CanGoBack:     step > wizard.FirstStep,
		Errors:        snap.Errors.For(step),
		Alerts:        cfg.alerts,
		Success:       cat.Success,
		ProblemsCount: len(data.ProblemsSolved),
		ProblemsMax:   model.MaxProblems,
	}
	if step > 0 {
		view.StepLabel = cat.StepLabel(step, wizard.LastStep)
		if sc, ok := cat.Step(step); ok {
			view.StepTitle = sc.Title
			view.StepDescription = sc.Description
		}
	}

	for n := wizard.FirstStep; n <= wizard.LastStep; n++ {
		tab := Tab{
			Number:    n,
			Href:      cfg.basePath + "/step/" + fmt.Sprint(n),
			Current:   n == step,
			Reachable: snap.Reachable(n),
			Complete:  n < step || snap.State == wizard.StateSubmitted,
		}
		if sc, ok := cat.Step(n); ok {
			tab.Title = sc.Title
		}
		view.Tabs = append(view.Tabs, tab)
	}

	view.Fields = make(map[string]FieldView, len(model.Fields()))
	for _, field := range model.Fields() {
		view.Fields[string(field)] = fieldView(field, data, snap.Errors, cat)
	}

	limitReached := len(data.ProblemsSolved) >= model.MaxProblems
	for _, opt := range cat.Categories {
		view.Categories = append(view.Categories, optionView(opt, opt.Value == string(data.Category), false))
	}
	for _, opt := range cat.Problems {
		selected := data.HasProblem(model.Tag(opt.Value))
		view.Problems = append(view.Problems, optionView(opt, selected, limitReached && !selected))
	}
	for _, opt := range cat.Urgency {
		view.Urgency = append(view.Urgency, optionView(opt, opt.Value == string(data.Urgency), false))
	}
	for _, opt := range cat.BetaTesting {
		view.BetaTesting = append(view.BetaTesting, optionView(opt, opt.Value == string(data.BetaTesting), false))
	}

	for _, n := range cfg.toasts {
		view.Toasts = append(view.Toasts, Toast{Kind: string(n.Kind), Title: n.Title, Detail: n.Detail})
	}
	if snap.Receipt != nil {
		view.Receipt = &ReceiptView{
			Number:  snap.Receipt.IdeaNumber,
			Display: DisplayIdeaNumber(snap.Receipt.IdeaNumber),
		}
	}

	hidden := MergeHiddenFields(nil, cfg.hidden...)
	view.Hidden = SortedHiddenFields(hidden)
	view.Theme = themeView(cfg.theme)
	return view
}

func screenFor(state wizard.State) string {
	switch state {
	case wizard.StateStep1:
		return ScreenStep1
	case wizard.StateStep2:
		return ScreenStep2
	case wizard.StateStep3, wizard.StateSubmitting:
		return ScreenStep3
	case wizard.StateSubmitted:
		return ScreenSuccess
	default:
		return ScreenStep1
	}
}

func fieldView(field model.Field, data model.FormData, errs wizard.Errors, cat *catalog.Catalog) FieldView {
	fc := cat.Field(field)
	view := FieldView{
		Name:        string(field),
		ID:          "idea-" + string(field),
		Label:       fc.Label,
		Placeholder: fc.Placeholder,
		Help:        fc.Help,
		Error:       errs.Message(field),
	}
	view.Invalid = view.Error != ""

	switch field {
	case model.FieldFullName:
		view.Value = data.FullName
	case model.FieldEmail:
		view.Value = data.Email
	case model.FieldCompany:
		view.Value = data.Company
	case model.FieldCategory:
		view.Value = string(data.Category)
	case model.FieldIdeaTitle:
		view.Value = data.IdeaTitle
		view.MaxLength = model.MaxTitleLength
	case model.FieldDescription:
		view.Value = data.Description
		view.MaxLength = model.MaxDescriptionLength
	case model.FieldProblemsSolved:
		tags := make([]string, len(data.ProblemsSolved))
		for i, tag := range data.ProblemsSolved {
			tags[i] = string(tag)
		}
		view.Value = strings.Join(tags, ",")
	case model.FieldUrgency:
		view.Value = string(data.Urgency)
	case model.FieldBetaTesting:
		view.Value = string(data.BetaTesting)
	case model.FieldPrivacyConsent:
		view.Checked = data.PrivacyConsent
		view.Value = "true"
	}
	if view.MaxLength > 0 {
		view.Length = utf8.RuneCountInString(view.Value)
		view.Counter = fmt.Sprintf("%d/%d", view.Length, view.MaxLength)
	}
	return view
}

func optionView(opt catalog.Option, selected, disabled bool) OptionView {
	return OptionView{
		Value:       opt.Value,
		Label:       opt.Label,
		Description: opt.Description,
		Selected:    selected,
		Disabled:    disabled,
	}
}

func themeView(cfg *theme.RendererConfig) *ThemeView {
	if cfg == nil {
		return nil
	}
	view := &ThemeView{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		CSSVars: make(map[string]string, len(cfg.CSSVars)),
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key, value := range cfg.CSSVars {
		view.CSSVars[key] = value
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var style strings.Builder
	for _, key := range keys {
		style.WriteString(key)
		style.WriteString(": ")
		style.WriteString(cfg.CSSVars[key])
		style.WriteString("; ")
	}
	view.Style = strings.TrimSpace(style.String())
	if cfg.AssetURL != nil {
		view.Stylesheet = cfg.AssetURL(theming.StylesheetAsset)
	}
	return view
}
