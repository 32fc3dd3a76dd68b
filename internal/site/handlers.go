package site

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	g "maragu.dev/gomponents"

	"github.com/goliatone/go-ideaform/internal/logger"
	"github.com/goliatone/go-ideaform/internal/site/components"
	"github.com/goliatone/go-ideaform/pkg/model"
	"github.com/goliatone/go-ideaform/pkg/render"
	"github.com/goliatone/go-ideaform/pkg/submission"
	"github.com/goliatone/go-ideaform/pkg/validation"
	"github.com/goliatone/go-ideaform/pkg/wizard"
)

// CSRFHeader may carry the token instead of the _csrf form field.
const CSRFHeader = "X-CSRF-Token"

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) show(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(w, r)
	s.respond(w, r, sess, http.StatusOK)
}

// goTo handles tab navigation. Steps ahead of the current one stay locked.
func (s *Server) goTo(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(w, r)
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := sess.Wizard.GoTo(step); err != nil {
		s.logger.Debug("tab navigation refused", logger.Scope("site.goto"), slog.Int("step", step), logger.Error(err))
		http.Redirect(w, r, s.basePath, http.StatusSeeOther)
		return
	}
	s.respond(w, r, sess, http.StatusOK)
}

func (s *Server) post(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	if !s.validCSRF(sess, r) {
		http.Error(w, "invalid or missing form token", http.StatusForbidden)
		return
	}
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	// a stale form from another tab or the back button
	if step != sess.Wizard.State().Step() {
		s.finish(w, r, sess, http.StatusConflict)
		return
	}

	action, patch, err := s.decoder.Decode(r.PostForm)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !patch.Empty() {
		if err := sess.Wizard.Update(patch); err != nil {
			s.finish(w, r, sess, http.StatusConflict)
			return
		}
	}

	status, err := s.apply(r.Context(), sess, action)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.finish(w, r, sess, status)
}

// apply runs action and returns the status for non-HTML clients. Errors are
// reserved for malformed requests.
func (s *Server) apply(ctx context.Context, sess *Session, action Action) (int, error) {
	w := sess.Wizard
	switch action.Name {
	case ActionContinue:
		return statusFor(w.Next()), nil
	case ActionBack:
		return statusFor(w.Back()), nil
	case ActionToggle:
		err := w.ToggleTag(model.Tag(action.Target))
		switch {
		case errors.Is(err, wizard.ErrUnknownTag):
			return 0, err
		case errors.Is(err, wizard.ErrTagLimit):
			return http.StatusOK, nil
		}
		return statusFor(err), nil
	case ActionBlur:
		field, ok := model.ParseField(action.Target)
		if !ok {
			return 0, fmt.Errorf("%w: %q", wizard.ErrUnknownField, action.Target)
		}
		return statusFor(w.Blur(field)), nil
	case ActionSubmit:
		return s.submit(ctx, sess), nil
	default:
		return 0, fmt.Errorf("site: unknown action %q", action.Name)
	}
}

func (s *Server) submit(ctx context.Context, sess *Session) int {
	// a visitor leaving the page must not abort the request; only the
	// configured timeout bounds it
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.submitWait)
	defer cancel()

	_, err := sess.Wizard.Submit(ctx)
	if err == nil {
		return http.StatusOK
	}

	var serverErr *submission.ServerError
	switch {
	case errors.As(err, &serverErr):
		if len(serverErr.Fields) > 0 {
			sess.AddAlerts(s.fieldAlerts(serverErr.Fields)...)
		}
		return http.StatusBadGateway
	case errors.Is(err, wizard.ErrNoSubmitter):
		s.logger.Error("submission is not configured", logger.Scope("site.submit"))
		return http.StatusServiceUnavailable
	case errors.Is(err, wizard.ErrSubmissionInFlight):
		return http.StatusConflict
	}
	return statusFor(err)
}

// fieldAlerts turns backend rejections into messages naming the field.
func (s *Server) fieldAlerts(fields map[string][]string) []string {
	mapping := render.MapErrorPayload(fields)
	alerts := append([]string(nil), mapping.Form...)
	for _, field := range model.Fields() {
		label := s.catalog.Field(field).Label
		for _, msg := range mapping.Fields[field] {
			alerts = append(alerts, label+": "+msg)
		}
	}
	return alerts
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	if !s.validCSRF(sess, r) {
		http.Error(w, "invalid or missing form token", http.StatusForbidden)
		return
	}
	s.finish(w, r, sess, statusFor(sess.Wizard.Reset()))
}

// finish redirects browsers back to the wizard and renders the view for
// everyone else.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, sess *Session, status int) {
	if s.wantsHTML(r) {
		http.Redirect(w, r, s.basePath, http.StatusSeeOther)
		return
	}
	s.respond(w, r, sess, status)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, sess *Session, status int) {
	renderer, err := s.renderers.Negotiate(r.Header.Get("Accept"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	view := render.NewView(sess.Wizard.Snapshot(), s.catalog,
		render.WithBasePath(s.basePath),
		render.WithToasts(sess.Toasts.Drain()),
		render.WithAlerts(sess.TakeAlerts()...),
		render.WithHiddenFields(render.CSRFToken(fieldCSRF, sess.CSRF)),
		render.WithTheme(s.themeCfg),
	)
	body, err := renderer.Render(r.Context(), view)
	if err != nil {
		s.logger.Error("render failed", logger.Scope("site.render"), slog.String("renderer", renderer.Name()), logger.Error(err))
		http.Error(w, "could not render the form", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	if !isHTML(renderer.ContentType()) {
		w.WriteHeader(status)
		_, _ = w.Write(body)
		return
	}

	page := components.Layout(components.PageConfig{
		Title:       view.Title,
		Description: view.Intro,
		Theme:       s.themeCfg.Theme,
		Variant:     s.themeCfg.Variant,
		Stylesheet:  stylesheetOf(view),
	}, g.Raw(string(body)))
	w.WriteHeader(http.StatusOK)
	if err := page.Render(w); err != nil {
		s.logger.Warn("write page", logger.Scope("site.render"), logger.Error(err))
	}
}

func (s *Server) wantsHTML(r *http.Request) bool {
	renderer, err := s.renderers.Negotiate(r.Header.Get("Accept"))
	return err == nil && isHTML(renderer.ContentType())
}

func (s *Server) validCSRF(sess *Session, r *http.Request) bool {
	token := r.PostForm.Get(fieldCSRF)
	if token == "" {
		token = r.Header.Get(CSRFHeader)
	}
	return token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(sess.CSRF)) == 1
}

// statusFor maps wizard outcomes to the status sent to non-HTML clients.
func statusFor(err error) int {
	var invalid *validation.Error
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, wizard.ErrInvalidTransition), errors.Is(err, wizard.ErrLocked), errors.Is(err, wizard.ErrStepAhead):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func isHTML(contentType string) bool {
	return strings.HasPrefix(contentType, "text/html")
}

func stylesheetOf(view render.View) string {
	if view.Theme != nil {
		return view.Theme.Stylesheet
	}
	return ""
}
