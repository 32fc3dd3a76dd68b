package site

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-ideaform/pkg/notify"
	"github.com/goliatone/go-ideaform/pkg/render"
	"github.com/goliatone/go-ideaform/pkg/wizard"
)

// SessionCookie carries the session id.
const SessionCookie = "ideaform_session"

// Session is one visitor's wizard plus the transient state shown on the next
// render.
type Session struct {
	ID     string
	CSRF   string
	Wizard *wizard.Wizard
	Toasts *notify.Recorder

	mu       sync.Mutex
	alerts   []string
	lastSeen time.Time
}

// AddAlerts queues form-level messages for the next render.
func (s *Session) AddAlerts(alerts ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = render.MergeFormErrors(s.alerts, alerts...)
}

// TakeAlerts returns and clears the queued alerts.
func (s *Session) TakeAlerts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.alerts
	s.alerts = nil
	return out
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// WizardFactory builds the wizard of a new session. notifier receives the
// session's toasts.
type WizardFactory func(notifier notify.Notifier) *wizard.Wizard

// Store keeps sessions in memory. Nothing survives a restart.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	secure   bool
	path     string
	now      func() time.Time
	factory  WizardFactory
}

// NewStore returns a store expiring sessions idle for longer than ttl.
func NewStore(ttl time.Duration, factory WizardFactory) *Store {
	if factory == nil {
		factory = func(n notify.Notifier) *wizard.Wizard { return wizard.New(wizard.WithNotifier(n)) }
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		path:     "/",
		now:      time.Now,
		factory:  factory,
	}
}

// Load returns the session named by the request cookie, creating one (and
// setting the cookie) when it is missing or expired.
func (s *Store) Load(w http.ResponseWriter, r *http.Request) *Session {
	now := s.now()
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		s.mu.Lock()
		sess, ok := s.sessions[cookie.Value]
		s.mu.Unlock()
		if ok && !s.expired(sess, now) {
			sess.touch(now)
			s.setCookie(w, sess.ID)
			return sess
		}
	}

	toasts := notify.NewRecorder()
	sess := &Session{
		ID:       uuid.NewString(),
		CSRF:     uuid.NewString(),
		Wizard:   s.factory(toasts),
		Toasts:   toasts,
		lastSeen: now,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.setCookie(w, sess.ID)
	return sess
}

// setCookie (re)issues the session cookie so its lifetime follows the idle
// ttl rather than the first visit.
func (s *Store) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     s.path,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.idleSince()) > s.ttl
}
