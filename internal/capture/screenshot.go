package capture

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/kbinani/screenshot"

	"snapgrab/internal/frame"
)

type grabFunc func(image.Rectangle) (*image.RGBA, error)

type grabResult struct {
	raw *frame.Raw
	err error
}

// screenshotResource grabs a display region with kbinani/screenshot. While
// started, a producer goroutine grabs at the configured frame rate into a
// one-slot queue that keeps only the newest result.
type screenshotResource struct {
	cfg    Config
	region image.Rectangle
	grab   grabFunc

	mu      sync.Mutex
	running bool
	frames  chan grabResult
	stopCh  chan struct{}
	done    chan struct{}
}

func newScreenshotResource(cfg Config) (*screenshotResource, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, ErrNoDisplays
	}
	idx := cfg.displayIndex()
	if idx >= n {
		return nil, fmt.Errorf("%w: index %d out of range (have %d displays)", ErrDisplayNotFound, idx, n)
	}

	region, err := cropRegion(screenshot.GetDisplayBounds(idx), cfg.Crop)
	if err != nil {
		return nil, err
	}
	return newGrabber(cfg, region, screenshot.CaptureRect), nil
}

func newGrabber(cfg Config, region image.Rectangle, grab grabFunc) *screenshotResource {
	return &screenshotResource{
		cfg:    cfg,
		region: region,
		grab:   grab,
	}
}

func (s *screenshotResource) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyStarted
	}
	s.running = true
	s.frames = make(chan grabResult, 1)
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.frames, s.stopCh, s.done)
	return nil
}

func (s *screenshotResource) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	stopCh, done := s.stopCh, s.done
	s.frames = nil
	s.mu.Unlock()

	close(stopCh)
	<-done
	return nil
}

func (s *screenshotResource) NextFrame() (*frame.Raw, error) {
	s.mu.Lock()
	frames := s.frames
	s.mu.Unlock()
	if frames == nil {
		return nil, ErrNotStarted
	}

	timer := time.NewTimer(s.cfg.FrameTimeout)
	defer timer.Stop()

	select {
	case r := <-frames:
		return r.raw, r.err
	case <-timer.C:
		return nil, fmt.Errorf("%w after %s", ErrFrameTimeout, s.cfg.FrameTimeout)
	}
}

func (s *screenshotResource) loop(frames chan grabResult, stopCh, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.FrameRate))
	defer ticker.Stop()

	for {
		s.produce(frames)
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}
	}
}

func (s *screenshotResource) produce(frames chan grabResult) {
	var r grabResult
	img, err := s.grab(s.region)
	if err != nil {
		r.err = fmt.Errorf("screenshot capture failed: %w", err)
	} else {
		r.raw, r.err = toRaw(img, img.Bounds(), s.cfg.OutputType, s.cfg.OutputResolution)
	}

	select {
	case frames <- r:
		return
	default:
	}
	// Queue full: drop the stale result so the next reader sees a fresh one.
	select {
	case <-frames:
		captureDebugf("screenshot dropped stale frame")
	default:
	}
	select {
	case frames <- r:
	default:
	}
}
