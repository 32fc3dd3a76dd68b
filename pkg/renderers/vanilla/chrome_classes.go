package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassWizard     ChromeClass = "ideaform-wizard"
	ClassHeader     ChromeClass = "ideaform-header"
	ClassTabs       ChromeClass = "ideaform-tabs"
	ClassTab        ChromeClass = "ideaform-tab"
	ClassStep       ChromeClass = "ideaform-step"
	ClassStepLabel  ChromeClass = "ideaform-step-label"
	ClassField      ChromeClass = "ideaform-field"
	ClassFieldError ChromeClass = "ideaform-field-error"
	ClassCounter    ChromeClass = "ideaform-counter"
	ClassChips      ChromeClass = "ideaform-chips"
	ClassChip       ChromeClass = "ideaform-chip"
	ClassActions    ChromeClass = "ideaform-actions"
	ClassErrors     ChromeClass = "ideaform-errors"
	ClassToasts     ChromeClass = "ideaform-toasts"
	ClassToast      ChromeClass = "ideaform-toast"
	ClassSuccess    ChromeClass = "ideaform-success"
	ClassReceipt    ChromeClass = "ideaform-receipt"
)

// chromeKeys maps the template lookup key to its default class.
var chromeKeys = map[string]ChromeClass{
	"wizard":     ClassWizard,
	"header":     ClassHeader,
	"tabs":       ClassTabs,
	"tab":        ClassTab,
	"step":       ClassStep,
	"stepLabel":  ClassStepLabel,
	"field":      ClassField,
	"fieldError": ClassFieldError,
	"counter":    ClassCounter,
	"chips":      ClassChips,
	"chip":       ClassChip,
	"actions":    ClassActions,
	"errors":     ClassErrors,
	"toasts":     ClassToasts,
	"toast":      ClassToast,
	"success":    ClassSuccess,
	"receipt":    ClassReceipt,
}

// chromeClasses returns the class map handed to templates, with overrides
// replacing defaults. Blank overrides are ignored.
func chromeClasses(overrides map[string]string) map[string]string {
	out := make(map[string]string, len(chromeKeys))
	for key, class := range chromeKeys {
		out[key] = string(class)
	}
	for key, class := range overrides {
		if _, known := chromeKeys[key]; !known || class == "" {
			continue
		}
		out[key] = class
	}
	return out
}
