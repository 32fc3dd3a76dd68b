// Package theming wires go-theme manifests into the wizard renderers. It ships
// the default "ideaform" manifest, a selector over registered manifests and
// the conversion from a selection into the renderer configuration.
package theming

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

const (
	DefaultTheme   = "ideaform"
	DefaultVariant = "light"

	// StylesheetAsset is the asset key resolved to the wizard stylesheet URL.
	StylesheetAsset = "wizard.stylesheet"
)

var (
	// ErrUnknownTheme is returned when selecting a theme that was never
	// registered.
	ErrUnknownTheme = errors.New("theming: unknown theme")
	// ErrUnknownVariant is returned when the manifest has no such variant.
	ErrUnknownVariant = errors.New("theming: unknown variant")
)

// DefaultManifest returns a fresh copy of the built-in manifest.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":        "#2457d6",
			"brand-ink":    "#ffffff",
			"surface":      "#ffffff",
			"surface-alt":  "#f4f6fb",
			"text":         "#1b2233",
			"muted":        "#5d6780",
			"danger":       "#c62f3b",
			"success":      "#1f8a4c",
			"radius":       "10px",
			"chip-radius":  "999px",
			"font-family":  "system-ui, -apple-system, 'Segoe UI', sans-serif",
			"focus-ring":   "0 0 0 3px rgba(36, 87, 214, 0.35)",
			"toast-shadow": "0 8px 24px rgba(27, 34, 51, 0.18)",
		},
		Templates: map[string]string{},
		Assets: theme.Assets{
			Prefix: "/static",
			Files: map[string]string{
				StylesheetAsset: "ideaform.css",
			},
		},
		Variants: map[string]theme.Variant{
			"light": {
				Tokens: map[string]string{
					"surface": "#ffffff",
					"text":    "#1b2233",
				},
			},
			"dark": {
				Tokens: map[string]string{
					"surface":     "#141a26",
					"surface-alt": "#1d2535",
					"text":        "#e8ecf5",
					"muted":       "#9aa5bd",
					"brand":       "#6f94ff",
					"focus-ring":  "0 0 0 3px rgba(111, 148, 255, 0.45)",
				},
			},
		},
	}
}

// DefaultFallbacks maps partial names to the bundled vanilla templates,
// relative to the template root. Theme manifests override individual entries
// through their Templates map.
func DefaultFallbacks() map[string]string {
	return map[string]string{
		"wizard.shell":   "wizard.tmpl",
		"wizard.tabs":    "partials/tabs.tmpl",
		"wizard.toasts":  "partials/toasts.tmpl",
		"wizard.step1":   "steps/step1.tmpl",
		"wizard.step2":   "steps/step2.tmpl",
		"wizard.step3":   "steps/step3.tmpl",
		"wizard.success": "steps/success.tmpl",
	}
}

// Selector resolves theme and variant names against registered manifests.
// It satisfies theme.ThemeSelector.
type Selector struct {
	mu             sync.RWMutex
	registry       theme.ThemeProvider
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// Option configures a Selector.
type Option func(*Selector)

// WithDefaults changes the theme and variant used when a request names none.
func WithDefaults(themeName, variant string) Option {
	return func(s *Selector) {
		if trimmed := strings.TrimSpace(themeName); trimmed != "" {
			s.defaultTheme = trimmed
		}
		if trimmed := strings.TrimSpace(variant); trimmed != "" {
			s.defaultVariant = trimmed
		}
	}
}

// WithManifest registers an extra manifest at construction time.
func WithManifest(manifest *theme.Manifest) Option {
	return func(s *Selector) {
		_ = s.Register(manifest)
	}
}

// NewSelector builds a selector with DefaultManifest registered.
func NewSelector(options ...Option) (*Selector, error) {
	registry := theme.NewRegistry()
	s := &Selector{
		registry:       registry,
		manifests:      make(map[string]*theme.Manifest),
		defaultTheme:   DefaultTheme,
		defaultVariant: DefaultVariant,
	}
	if err := s.Register(DefaultManifest()); err != nil {
		return nil, err
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if _, ok := s.manifest(s.defaultTheme); !ok {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownTheme, s.defaultTheme)
	}
	return s, nil
}

// Register adds a manifest. Registering the same name twice fails.
func (s *Selector) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return errors.New("theming: manifest name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[manifest.Name]; exists {
		return fmt.Errorf("theming: theme %q already registered", manifest.Name)
	}
	if registry, ok := s.registry.(interface {
		Register(*theme.Manifest) error
	}); ok {
		if err := registry.Register(manifest); err != nil {
			return fmt.Errorf("theming: register %q: %w", manifest.Name, err)
		}
	}
	s.manifests[manifest.Name] = manifest
	return nil
}

// Themes lists registered theme names.
func (s *Selector) Themes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select returns the manifest for name and variant. Empty values fall back to
// the selector defaults; an unknown variant of a known theme is an error.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	variant = strings.TrimSpace(variant)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifest(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	if variant == "" {
		variant = s.defaultVariant
		if _, ok := manifest.Variants[variant]; !ok {
			variant = ""
		}
	} else if _, ok := manifest.Variants[variant]; !ok {
		return nil, fmt.Errorf("%w: %q for theme %q", ErrUnknownVariant, variant, name)
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

func (s *Selector) manifest(name string) (*theme.Manifest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	manifest, ok := s.manifests[name]
	return manifest, ok
}
