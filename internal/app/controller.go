// Package app connects user triggers to the capture pipeline.
package app

import (
	"errors"
	"image"
	"log"
	"sync"
	"sync/atomic"

	"snapgrab/internal/capture"
	"snapgrab/internal/clipboard"
	"snapgrab/internal/frame"
	"snapgrab/internal/sink"
)

const queueSize = 8

// ErrCaptureDisabled is the result of every trigger after the capture
// resource failed to build.
var ErrCaptureDisabled = errors.New("screen capture is disabled")

// Result is the outcome of one triggered capture.
type Result struct {
	Path          string
	Width, Height int
	Err           error
}

// Options configures a Controller.
type Options struct {
	Capture         capture.Config
	OutputPath      string
	CopyToClipboard bool
	// OnDisabled is called once, from the worker goroutine, when the capture
	// resource cannot be built.
	OnDisabled func(error)
}

// Controller runs captures one at a time on a single worker goroutine, in
// the order they were triggered.
type Controller struct {
	lazy       *capture.Lazy
	cfg        capture.Config
	output     string
	onDisabled func(error)

	save func(*image.NRGBA, string) error
	copy func(*image.NRGBA) error

	copyToClipboard atomic.Bool
	disabled        atomic.Bool

	triggers chan struct{}
	results  chan Result

	closeOnce sync.Once
	quit      chan struct{}
	done      chan struct{}
}

// New starts a controller that builds its capture resource through lazy on
// the first trigger.
func New(lazy *capture.Lazy, opts Options) *Controller {
	c := &Controller{
		lazy:       lazy,
		cfg:        opts.Capture,
		output:     opts.OutputPath,
		onDisabled: opts.OnDisabled,
		save:       sink.Save,
		copy:       clipboard.CopyImage,
		triggers:   make(chan struct{}, queueSize),
		results:    make(chan Result, queueSize),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	c.copyToClipboard.Store(opts.CopyToClipboard)
	go c.run()
	return c
}

// Trigger queues a capture. It reports false when the queue is full or the
// controller is closed.
func (c *Controller) Trigger() bool {
	select {
	case <-c.quit:
		return false
	default:
	}
	select {
	case c.triggers <- struct{}{}:
		return true
	default:
		log.Println("Capture queue is full, ignoring trigger")
		return false
	}
}

// Results delivers one Result per accepted trigger. Results are dropped if
// the reader falls behind by more than the queue size.
func (c *Controller) Results() <-chan Result {
	return c.results
}

// Disabled reports whether the capture resource failed to build.
func (c *Controller) Disabled() bool {
	return c.disabled.Load()
}

// SetCopyToClipboard turns the post-save clipboard copy on or off for later
// captures.
func (c *Controller) SetCopyToClipboard(on bool) {
	c.copyToClipboard.Store(on)
}

// Close stops the worker after the capture in flight, if any, finishes.
// Queued triggers are discarded.
func (c *Controller) Close() {
	c.closeOnce.Do(func() { close(c.quit) })
	<-c.done
}

func (c *Controller) run() {
	defer close(c.done)
	for {
		select {
		case <-c.quit:
			return
		case <-c.triggers:
		}

		res := c.capture()
		if res.Err != nil {
			log.Printf("Capture failed: %v", res.Err)
		} else {
			log.Printf("Screenshot saved to: %s (%dx%d)", res.Path, res.Width, res.Height)
		}

		select {
		case c.results <- res:
		default:
			log.Println("Warning: capture result dropped, no reader")
		}
	}
}

func (c *Controller) capture() Result {
	if c.disabled.Load() {
		return Result{Path: c.output, Err: ErrCaptureDisabled}
	}

	h, err := c.lazy.Get(c.cfg)
	if err != nil {
		c.disabled.Store(true)
		if c.onDisabled != nil {
			c.onDisabled(err)
		}
		return Result{Path: c.output, Err: err}
	}

	raw, err := capture.CaptureOnce(h)
	if err != nil {
		return Result{Path: c.output, Err: err}
	}
	img, err := frame.Decode(raw)
	if err != nil {
		return Result{Path: c.output, Err: err}
	}
	if err := c.save(img, c.output); err != nil {
		return Result{Path: c.output, Err: err}
	}

	if c.copyToClipboard.Load() {
		if err := c.copy(img); err != nil {
			log.Printf("Failed to copy screenshot to clipboard: %v", err)
		}
	}
	return Result{Path: c.output, Width: raw.Width, Height: raw.Height}
}
