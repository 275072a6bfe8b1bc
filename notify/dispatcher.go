/*
Package notify manages the queue of transient user-facing messages.

PURPOSE:
  Every mutation outcome (success or failure) surfaces to the user as a
  short-lived message. This package owns the live queue: messages enter on
  Push, and leave either when their lifetime expires or when the user
  dismisses them - whichever happens first. Both paths are terminal.

LIFECYCLE:
  Active -> Expired    (automatic, per-message timer started at creation)
  Active -> Dismissed  (explicit user action)

TIMER MODEL:
  Expiry is fire-and-forget: the timer is never cancelled. Dismissal just
  removes the id from the live set, and the timer firing later finds nothing
  to remove. Removal by id is therefore idempotent by construction - the
  scheduled task checks membership before acting.

IDENTITY:
  Ids are wall-clock milliseconds, bumped monotonically on collision so two
  messages created in the same millisecond still get distinct ids within the
  live queue.

NO PERSISTENCE:
  Messages are purely in-memory and transient. Nothing here survives a
  restart, and nothing retries.

SEE ALSO:
  - api/handlers.go: Pushes a message after every mutation outcome
*/
package notify

import (
	"sync"
	"time"
)

// DefaultLifetime is how long a message stays in the live queue before
// auto-expiry removes it.
const DefaultLifetime = 5000 * time.Millisecond

// Kind is the severity of a message.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Message is one transient notification.
type Message struct {
	ID        int64     `json:"id"`
	Kind      Kind      `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"-"`
}

// Dispatcher holds the live queue. Safe for concurrent use.
type Dispatcher struct {
	mu       sync.Mutex
	lifetime time.Duration
	live     map[int64]Message
	order    []int64 // insertion order, for stable Active() output
	lastID   int64
}

// NewDispatcher creates a dispatcher with the default 5 second lifetime.
func NewDispatcher() *Dispatcher {
	return NewDispatcherWithLifetime(DefaultLifetime)
}

// NewDispatcherWithLifetime creates a dispatcher with a custom lifetime.
// Tests use short lifetimes to exercise expiry without real 5s waits.
func NewDispatcherWithLifetime(lifetime time.Duration) *Dispatcher {
	return &Dispatcher{
		lifetime: lifetime,
		live:     make(map[int64]Message),
	}
}

// Push adds a message to the live queue and schedules its expiry.
func (d *Dispatcher) Push(kind Kind, title, body string) Message {
	d.mu.Lock()

	id := time.Now().UnixMilli()
	if id <= d.lastID {
		id = d.lastID + 1
	}
	d.lastID = id

	msg := Message{
		ID:        id,
		Kind:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}
	d.live[id] = msg
	d.order = append(d.order, id)
	d.mu.Unlock()

	// Fire-and-forget. Dismiss is a no-op if the id is already gone.
	time.AfterFunc(d.lifetime, func() { d.Dismiss(id) })

	return msg
}

// Dismiss removes a message from the live queue. Removing an id that is
// absent (already expired, already dismissed, never existed) is a no-op.
func (d *Dispatcher) Dismiss(id int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.live[id]; !ok {
		return
	}
	delete(d.live, id)
	for i, oid := range d.order {
		if oid == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Active returns the live messages in creation order.
func (d *Dispatcher) Active() []Message {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Message, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.live[id])
	}
	return out
}
