// Package notify models the transient notifications (toasts) raised by the
// wizard. Notifier is injected where notifications originate instead of being
// reached through a package level singleton.
package notify

import (
	"strings"
	"sync"
)

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notification is a dismissible, user visible message.
type Notification struct {
	Kind   Kind   `json:"kind"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// Notifier receives notifications.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (fn NotifierFunc) Notify(n Notification) {
	if fn != nil {
		fn(n)
	}
}

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(Notification) {})

// Recorder queues notifications until they are drained, which is how the
// HTTP front-end turns them into one-shot toasts. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	queue []Notification
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(n Notification) {
	n.Title = strings.TrimSpace(n.Title)
	n.Detail = strings.TrimSpace(n.Detail)
	if n.Title == "" && n.Detail == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, n)
}

// Pending returns a copy of the queued notifications without consuming them.
func (r *Recorder) Pending() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.queue...)
}

// Drain returns and clears the queued notifications, dropping exact
// duplicates while preserving order.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	queued := r.queue
	r.queue = nil
	r.mu.Unlock()

	if len(queued) == 0 {
		return nil
	}
	out := make([]Notification, 0, len(queued))
	seen := make(map[Notification]struct{}, len(queued))
	for _, n := range queued {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Multi fans a notification out to several notifiers.
func Multi(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(n Notification) {
		for _, target := range notifiers {
			if target != nil {
				target.Notify(n)
			}
		}
	})
}
