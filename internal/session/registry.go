package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/smartsession/backend/internal/engine"
	"github.com/smartsession/backend/internal/landmark"
)

// ErrProducerAttached is returned when a second producer tries to claim a
// session that already has one. The existing producer stays authoritative.
var ErrProducerAttached = errors.New("producer already attached")

// Registry maps session identifiers to live sessions. Sessions are created
// by producer attach and destroyed by producer detach; observers come and go
// freely.
type Registry struct {
	tick time.Duration
	th   engine.Thresholds

	mu       sync.RWMutex
	sessions map[string]*registered
}

type registered struct {
	session *Session
	cancel  context.CancelFunc
}

func NewRegistry(tick time.Duration, th engine.Thresholds) *Registry {
	return &Registry{
		tick:     tick,
		th:       th,
		sessions: make(map[string]*registered),
	}
}

// AttachProducer creates the session and starts its broadcast ticker. At
// most one producer per session: a second attach fails with
// ErrProducerAttached and leaves the existing session untouched.
func (r *Registry) AttachProducer(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; ok {
		return nil, ErrProducerAttached
	}

	s := newSession(id, r.th)
	ctx, cancel := context.WithCancel(context.Background())
	r.sessions[id] = &registered{session: s, cancel: cancel}
	go s.run(ctx, r.tick)

	log.Printf("session %s: producer attached", id)
	return s, nil
}

// DetachProducer tears the session down: cancels its ticker, notifies every
// observer with session_ended, and removes it from the registry. No-op for
// unknown ids.
func (r *Registry) DetachProducer(id string) {
	r.mu.Lock()
	reg, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	reg.cancel()
	reg.session.end()
	log.Printf("session %s: producer detached, session ended", id)
}

// AttachObserver adds the observer to the session's fan-out set; it receives
// the current state immediately. When no session exists for the id the
// observer is told so via session_ended rather than being left silent.
func (r *Registry) AttachObserver(id string, o Observer) bool {
	r.mu.RLock()
	reg, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		o.Send(EncodeSessionEnded())
		return false
	}
	reg.session.addObserver(o)
	return true
}

// DetachObserver removes one observer; the producer and other observers are
// unaffected.
func (r *Registry) DetachObserver(id, observerID string) {
	r.mu.RLock()
	reg, ok := r.sessions[id]
	r.mu.RUnlock()

	if ok {
		reg.session.removeObserver(observerID)
	}
}

// Ingest routes one frame to its session's single-writer path. Frames for
// unknown sessions are dropped.
func (r *Registry) Ingest(id string, f landmark.Frame) {
	r.mu.RLock()
	reg, ok := r.sessions[id]
	r.mu.RUnlock()

	if ok {
		reg.session.Ingest(f)
	}
}

// Get returns the live session for id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	return reg.session, true
}

// Summary describes one active session for the listing endpoint.
type Summary struct {
	ID         string       `json:"id"`
	State      engine.State `json:"state"`
	Calibrated bool         `json:"calibrated"`
	Observers  int          `json:"observers"`
}

// Summaries lists all active sessions.
func (r *Registry) Summaries() []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Summary, 0, len(r.sessions))
	for id, reg := range r.sessions {
		out = append(out, Summary{
			ID:         id,
			State:      reg.session.Latest().State,
			Calibrated: reg.session.Calibrated(),
			Observers:  reg.session.ObserverCount(),
		})
	}
	return out
}
