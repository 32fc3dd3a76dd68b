// Package site serves the idea wizard as server-rendered HTML. Every step is
// a plain form post followed by a redirect, so the wizard works without
// scripts. Clients asking for JSON or plain text get the view in that format
// instead.
package site

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-ideaform/internal/logger"
	"github.com/goliatone/go-ideaform/pkg/catalog"
	"github.com/goliatone/go-ideaform/pkg/notify"
	"github.com/goliatone/go-ideaform/pkg/render"
	"github.com/goliatone/go-ideaform/pkg/renderers/tui"
	"github.com/goliatone/go-ideaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-ideaform/pkg/theming"
	"github.com/goliatone/go-ideaform/pkg/wizard"
)

const (
	DefaultBasePath   = "/submit-idea"
	DefaultSessionTTL = 30 * time.Minute
)

// Server owns the routes, sessions and renderers of the wizard site.
type Server struct {
	basePath   string
	catalog    *catalog.Catalog
	submitter  wizard.Submitter
	logger     *slog.Logger
	ttl        time.Duration
	secure     bool
	themeName  string
	variant    string
	themeCfg   *theme.RendererConfig
	renderers  *render.Registry
	sessions   *Store
	decoder    *stepDecoder
	submitWait time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithBasePath mounts the wizard somewhere other than /submit-idea.
func WithBasePath(path string) Option {
	return func(s *Server) {
		path = "/" + strings.Trim(strings.TrimSpace(path), "/")
		if path != "/" {
			s.basePath = path
		}
	}
}

// WithSubmitter sets where completed ideas are sent.
func WithSubmitter(submitter wizard.Submitter) Option {
	return func(s *Server) {
		s.submitter = submitter
	}
}

func WithCatalog(cat *catalog.Catalog) Option {
	return func(s *Server) {
		if cat != nil {
			s.catalog = cat
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSessionTTL sets how long an idle session survives.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSecureCookies marks the session cookie Secure.
func WithSecureCookies(secure bool) Option {
	return func(s *Server) {
		s.secure = secure
	}
}

// WithTheme selects a registered theme and variant.
func WithTheme(name, variant string) Option {
	return func(s *Server) {
		s.themeName = name
		s.variant = variant
	}
}

// WithSubmitTimeout bounds how long a submission may take per request.
func WithSubmitTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.submitWait = timeout
		}
	}
}

// New resolves the theme, builds the renderers and returns a Server.
func New(options ...Option) (*Server, error) {
	s := &Server{
		basePath:   DefaultBasePath,
		catalog:    catalog.Default(),
		logger:     logger.Discard(),
		ttl:        DefaultSessionTTL,
		decoder:    newStepDecoder(),
		submitWait: 30 * time.Second,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	selector, err := theming.NewSelector()
	if err != nil {
		return nil, fmt.Errorf("site: theme selector: %w", err)
	}
	selection, err := selector.Select(s.themeName, s.variant)
	if err != nil {
		return nil, fmt.Errorf("site: select theme: %w", err)
	}
	s.themeCfg = theming.RendererConfig(selection, theming.DefaultFallbacks())

	html, err := vanilla.New(vanilla.WithTheme(s.themeCfg))
	if err != nil {
		return nil, fmt.Errorf("site: html renderer: %w", err)
	}
	s.renderers = render.NewRegistry()
	s.renderers.MustRegister(html)
	s.renderers.MustRegister(render.NewJSON(true))
	s.renderers.MustRegister(tui.NewRenderer(tui.Theme{}))

	s.sessions = NewStore(s.ttl, s.newWizard)
	s.sessions.secure = s.secure
	return s, nil
}

// Sessions exposes the session store, mainly so callers can run its sweeper.
func (s *Server) Sessions() *Store {
	return s.sessions
}

// BasePath reports where the wizard is mounted.
func (s *Server) BasePath() string {
	return s.basePath
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(vanilla.AssetsFS()))))
	r.Get("/healthz", health)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.basePath, http.StatusSeeOther)
	})

	r.Route(s.basePath, func(r chi.Router) {
		r.Get("/", s.show)
		r.Get("/step/{step}", s.goTo)
		r.Post("/step/{step}", s.post)
		r.Post("/reset", s.reset)
	})
	return r
}

func (s *Server) newWizard(notifier notify.Notifier) *wizard.Wizard {
	options := []wizard.Option{
		wizard.WithNotifier(notifier),
		wizard.WithLogger(s.logger),
	}
	if s.submitter != nil {
		options = append(options, wizard.WithSubmitter(s.submitter))
	}
	return wizard.New(options...)
}
