package capture

import (
	"errors"
	"fmt"
	"log"

	"snapgrab/internal/frame"
)

// State is a step of a capture session.
type State int

const (
	StateIdle State = iota
	StateStarted
	StateFrameAvailable
	StateFrameFailed
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarted:
		return "started"
	case StateFrameAvailable:
		return "frame-available"
	case StateFrameFailed:
		return "frame-failed"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// FrameError reports a failed session step.
type FrameError struct {
	Op  string
	Err error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("capture %s: %v", e.Op, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }

// Session runs one Start, NextFrame, Stop bracket per call.
type Session struct {
	// Observe, if set, is called with every state transition while the
	// handle is held.
	Observe func(State)
}

// CaptureOnce grabs a single frame from h with a default Session.
func CaptureOnce(h *Handle) (*frame.Raw, error) {
	var s Session
	return s.Capture(h)
}

// Capture takes exclusive access to h, starts the resource, waits for one
// frame and stops the resource again. Stop runs on every path once the
// session has begun, so a failed attempt never leaves the resource capturing.
// Nothing is retried.
func (s *Session) Capture(h *Handle) (*frame.Raw, error) {
	if h == nil {
		return nil, &FrameError{Op: "start", Err: ErrNotStarted}
	}
	var raw *frame.Raw
	err := h.With(func(res Resource) error {
		var err error
		raw, err = s.run(res)
		return err
	})
	return raw, err
}

func (s *Session) run(res Resource) (raw *frame.Raw, err error) {
	s.set(StateIdle)

	defer func() {
		stopErr := res.Stop()
		s.set(StateStopped)
		if stopErr == nil {
			return
		}
		log.Printf("Failed to stop capture: %v", stopErr)
		if raw == nil {
			err = errors.Join(err, &FrameError{Op: "stop", Err: stopErr})
		}
	}()

	if err := res.Start(); err != nil {
		s.set(StateFrameFailed)
		return nil, &FrameError{Op: "start", Err: err}
	}
	s.set(StateStarted)

	raw, err = res.NextFrame()
	if err == nil && raw == nil {
		err = errors.New("backend returned no frame")
	}
	if err != nil {
		s.set(StateFrameFailed)
		return nil, &FrameError{Op: "next frame", Err: err}
	}

	s.set(StateFrameAvailable)
	return raw, nil
}

func (s *Session) set(st State) {
	captureDebugf("session state=%s", st)
	if s.Observe != nil {
		s.Observe(st)
	}
}
