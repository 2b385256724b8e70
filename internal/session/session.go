// Package session binds one producing connection to its observers and owns
// all per-session behavioral state: calibration, temporal tracking, the
// current resolved state, and the fixed-cadence fan-out.
package session

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/smartsession/backend/internal/engine"
	"github.com/smartsession/backend/internal/landmark"
)

// Observer is a fan-out target, implemented by the transport layer. Send
// must not block; it returns false when the observer cannot keep up or is
// gone, after which the session drops it.
type Observer interface {
	ID() string
	Send(data []byte) bool
}

// Snapshot is the resolver output published atomically by the ingest path
// and read by the broadcast ticker.
type Snapshot struct {
	State       engine.State
	Reasons     []string
	TimestampMs int64
}

// Session owns one producer's behavioral state. All mutation happens on the
// single ingest path (one producer per session); the broadcast ticker only
// reads the atomically published snapshot, so the hot path takes no lock.
type Session struct {
	ID string

	th         engine.Thresholds
	calibrator *engine.Calibrator
	tracker    *engine.Tracker

	latest atomic.Pointer[Snapshot]

	mu        sync.Mutex
	observers map[string]Observer
}

func newSession(id string, th engine.Thresholds) *Session {
	s := &Session{
		ID:         id,
		th:         th,
		calibrator: engine.NewCalibrator(th.CalibrationFrames),
		tracker:    engine.NewTracker(th),
		observers:  make(map[string]Observer),
	}
	s.latest.Store(&Snapshot{State: engine.Focused, TimestampMs: time.Now().UnixMilli()})
	return s
}

// Calibrated reports whether the baseline has locked.
func (s *Session) Calibrated() bool {
	return s.calibrator.Complete()
}

// Latest returns the most recently resolved snapshot.
func (s *Session) Latest() Snapshot {
	return *s.latest.Load()
}

// Ingest folds one frame into the session and publishes the resolved state.
// Must only be called from the session's single producer path.
func (s *Session) Ingest(f landmark.Frame) {
	if f.FaceCount != 1 {
		// No usable geometry: gaze and stillness accumulators are left
		// untouched, and the calibration run (if any) is broken. The
		// face count alone drives the resolver.
		s.calibrator.Interrupt()
		sig := s.tracker.Last()
		s.publish(engine.Resolve(f.FaceCount, sig.GazeAwaySeconds, false), nil, f.TimestampMs)
		return
	}

	g, ok := landmark.Normalize(f)
	if !ok {
		// Corrupt payload: dropped without any state change.
		return
	}

	sig := s.tracker.Update(g)

	if !s.calibrator.Complete() {
		if sig.Direction.OnScreen() {
			s.calibrator.Observe(g)
		} else {
			s.calibrator.Interrupt()
		}
	}

	confused := false
	var reasons []string
	if b := s.calibrator.Baseline(); b != nil {
		ind := engine.EvaluateConfusion(g, b, sig, s.th)
		confused = ind.Confused()
		if confused {
			reasons = ind.Reasons()
		}
	}

	state := engine.Resolve(f.FaceCount, sig.GazeAwaySeconds, confused)
	if state != engine.Confused {
		reasons = nil
	}
	s.publish(state, reasons, f.TimestampMs)
}

func (s *Session) publish(state engine.State, reasons []string, tsMs int64) {
	s.latest.Store(&Snapshot{State: state, Reasons: reasons, TimestampMs: tsMs})
}

func (s *Session) addObserver(o Observer) {
	s.mu.Lock()
	s.observers[o.ID()] = o
	s.mu.Unlock()

	// Late joiners get the current state immediately instead of waiting
	// for the next tick.
	if !o.Send(encodeUpdate(s.Latest())) {
		s.removeObserver(o.ID())
	}
}

func (s *Session) removeObserver(id string) {
	s.mu.Lock()
	delete(s.observers, id)
	s.mu.Unlock()
}

func (s *Session) observerSnapshot() []Observer {
	s.mu.Lock()
	defer s.mu.Unlock()
	obs := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		obs = append(obs, o)
	}
	return obs
}

// ObserverCount reports the current fan-out set size.
func (s *Session) ObserverCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

// run pushes the latest snapshot to every observer on each tick until the
// context is cancelled. Tick cadence is independent of frame arrival.
func (s *Session) run(ctx context.Context, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.broadcast(encodeUpdate(s.Latest()))
		}
	}
}

func (s *Session) broadcast(data []byte) {
	if data == nil {
		return
	}
	for _, o := range s.observerSnapshot() {
		if !o.Send(data) {
			log.Printf("session %s: observer %s too slow, dropping", s.ID, o.ID())
			s.removeObserver(o.ID())
		}
	}
}

// end notifies all observers that the session is gone and clears the set.
func (s *Session) end() {
	data := EncodeSessionEnded()
	s.mu.Lock()
	obs := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		obs = append(obs, o)
	}
	s.observers = make(map[string]Observer)
	s.mu.Unlock()

	for _, o := range obs {
		o.Send(data)
	}
}

func encodeUpdate(snap Snapshot) []byte {
	return marshal(StateUpdate{
		Type:        MsgStateUpdate,
		State:       snap.State,
		TimestampMs: snap.TimestampMs,
		Reasons:     snap.Reasons,
	})
}
