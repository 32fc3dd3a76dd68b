// Package devbackend is a local stand-in for the idea submission service. It
// validates requests against the published contract, hands out increasing
// idea numbers and keeps recent submissions in memory.
package devbackend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-ideaform/internal/logger"
	"github.com/goliatone/go-ideaform/pkg/contract"
	"github.com/goliatone/go-ideaform/pkg/model"
)

const (
	// DefaultRecentLimit is how many ideas GET RecentPath returns without a
	// limit parameter.
	DefaultRecentLimit = 20
	// MaxStored bounds the in-memory history.
	MaxStored = 100

	maxBodyBytes = 64 << 10

	msgFailed  = "Failed to submit idea"
	msgInvalid = "Invalid idea submission"
)

// StoredIdea is one accepted submission.
type StoredIdea struct {
	IdeaNumber int            `json:"ideaNumber"`
	ReceivedAt time.Time      `json:"receivedAt"`
	Idea       model.FormData `json:"idea"`
}

type failure struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// Backend serves the submission contract.
type Backend struct {
	contract   *contract.Contract
	logger     *slog.Logger
	now        func() time.Time
	failStatus int

	mu     sync.Mutex
	next   int
	stored []StoredIdea
}

// Option configures a Backend.
type Option func(*Backend)

// WithSeed sets the first idea number handed out. Values below 1 are ignored.
func WithSeed(seed int) Option {
	return func(b *Backend) {
		if seed >= 1 {
			b.next = seed
		}
	}
}

// WithFailure makes every submission fail with status. Zero disables it.
func WithFailure(status int) Option {
	return func(b *Backend) {
		b.failStatus = status
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		if now != nil {
			b.now = now
		}
	}
}

// New loads the embedded contract and returns a backend.
func New(options ...Option) (*Backend, error) {
	c, err := contract.Load(context.Background())
	if err != nil {
		return nil, err
	}
	b := &Backend{
		contract: c,
		logger:   logger.Discard(),
		now:      time.Now,
		next:     1,
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b, nil
}

// Handler returns the chi router serving the contract paths and /healthz.
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post(contract.SubmitPath, b.submit)
	r.Get(contract.RecentPath, b.recent)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

// Recent returns up to limit stored ideas, newest first.
func (b *Backend) Recent(limit int) []StoredIdea {
	b.mu.Lock()
	defer b.mu.Unlock()
	if limit <= 0 || limit > len(b.stored) {
		limit = len(b.stored)
	}
	out := make([]StoredIdea, 0, limit)
	for i := len(b.stored) - 1; i >= 0 && len(out) < limit; i-- {
		entry := b.stored[i]
		entry.Idea = entry.Idea.Clone()
		out = append(out, entry)
	}
	return out
}

func (b *Backend) submit(w http.ResponseWriter, r *http.Request) {
	log := b.logger.With(logger.Scope("devbackend.submit"))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, failure{Error: msgInvalid})
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	if err := b.contract.ValidateRequest(r.Context(), r); err != nil {
		log.Info("rejected submission", logger.Error(err))
		writeJSON(w, http.StatusBadRequest, failure{Error: msgInvalid, Fields: contract.FieldErrors(err)})
		return
	}
	if b.failStatus != 0 {
		log.Info("forced failure", slog.Int("status", b.failStatus))
		writeJSON(w, b.failStatus, failure{Error: msgFailed})
		return
	}

	var idea model.FormData
	if err := json.Unmarshal(body, &idea); err != nil {
		writeJSON(w, http.StatusBadRequest, failure{Error: msgInvalid})
		return
	}

	b.mu.Lock()
	number := b.next
	b.next++
	b.stored = append(b.stored, StoredIdea{IdeaNumber: number, ReceivedAt: b.now().UTC(), Idea: idea})
	if len(b.stored) > MaxStored {
		b.stored = b.stored[len(b.stored)-MaxStored:]
	}
	b.mu.Unlock()

	log.Info("idea accepted", slog.Int("ideaNumber", number), slog.String("category", string(idea.Category)))
	writeJSON(w, http.StatusOK, model.Receipt{IdeaNumber: number})
}

func (b *Backend) recent(w http.ResponseWriter, r *http.Request) {
	if err := b.contract.ValidateRequest(r.Context(), r); err != nil {
		writeJSON(w, http.StatusBadRequest, failure{Error: "Invalid limit", Fields: contract.FieldErrors(err)})
		return
	}
	limit := DefaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, failure{Error: "Invalid limit"})
			return
		}
		limit = parsed
	}
	writeJSON(w, http.StatusOK, map[string][]StoredIdea{"ideas": b.Recent(limit)})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
