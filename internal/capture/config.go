package capture

import (
	"fmt"
	"image"
	"slices"
	"strings"
	"time"

	"snapgrab/internal/frame"
)

const (
	BackendAuto       = "auto"
	BackendScreenshot = "screenshot"
	BackendPortal     = "portal"
)

const (
	defaultFrameRate    = 1
	maxFrameRate        = 60
	defaultFrameTimeout = 8 * time.Second
)

// Resolution is an output size preset expressed as a target height.
type Resolution int

const (
	ResolutionNative Resolution = iota
	Resolution480p
	Resolution720p
	Resolution1080p
	Resolution1440p
	Resolution2160p
	Resolution4320p
)

var resolutionHeights = map[Resolution]int{
	Resolution480p:  480,
	Resolution720p:  720,
	Resolution1080p: 1080,
	Resolution1440p: 1440,
	Resolution2160p: 2160,
	Resolution4320p: 4320,
}

// Height is the preset's target height, or 0 for native.
func (r Resolution) Height() int {
	return resolutionHeights[r]
}

func (r Resolution) String() string {
	if r == ResolutionNative {
		return "native"
	}
	if h, ok := resolutionHeights[r]; ok {
		return fmt.Sprintf("%dp", h)
	}
	return fmt.Sprintf("Resolution(%d)", int(r))
}

// ParseResolution accepts "native" (or "") and presets such as "1080p".
func ParseResolution(s string) (Resolution, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "native" {
		return ResolutionNative, nil
	}
	for r, h := range resolutionHeights {
		if s == fmt.Sprintf("%dp", h) {
			return r, nil
		}
	}
	return ResolutionNative, fmt.Errorf("unknown output resolution %q", s)
}

// targetSize scales w x h down to the preset height keeping the aspect
// ratio. Sources already at or below the preset are left alone.
func targetSize(w, h int, r Resolution) (int, int) {
	target := r.Height()
	if target == 0 || h <= target || h == 0 {
		return w, h
	}
	nw := (w*target + h/2) / h
	if nw < 1 {
		nw = 1
	}
	return nw, target
}

// Area is a crop rectangle relative to the captured display's origin.
type Area struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (a Area) Rect() image.Rectangle {
	return image.Rect(a.X, a.Y, a.X+a.Width, a.Y+a.Height)
}

// cropRegion maps crop into bounds. A nil crop selects all of bounds.
func cropRegion(bounds image.Rectangle, crop *Area) (image.Rectangle, error) {
	if crop == nil {
		return bounds, nil
	}
	r := crop.Rect().Add(bounds.Min)
	if !r.In(bounds) {
		return image.Rectangle{}, fmt.Errorf("%w: %v not inside %v", ErrCropOutOfBounds, r, bounds)
	}
	return r, nil
}

// Config describes how the capture resource is built. It is copied when the
// resource is built and never changes afterwards.
type Config struct {
	// FrameRate is the producer rate in frames per second; 0 means 1.
	FrameRate int
	// Display indexes the active displays; nil selects the primary display.
	Display *int

	ShowCursor      bool
	ShowHighlight   bool
	ExcludedTargets []string

	OutputType       frame.Encoding
	OutputResolution Resolution
	Crop             *Area

	// Backend selects the grab mechanism: "auto", "screenshot" or "portal".
	Backend string
	// FrameTimeout bounds the wait for the next frame; 0 means 8s.
	FrameTimeout time.Duration
}

// DefaultConfig captures the primary display once per request as BGRA at
// native resolution.
func DefaultConfig() Config {
	return Config{
		FrameRate:        defaultFrameRate,
		OutputType:       frame.EncodingBGRA,
		OutputResolution: ResolutionNative,
		Backend:          BackendAuto,
		FrameTimeout:     defaultFrameTimeout,
	}
}

// clone returns a deep copy with zero values replaced by defaults.
func (c Config) clone() Config {
	if c.FrameRate == 0 {
		c.FrameRate = defaultFrameRate
	}
	if c.OutputType == frame.EncodingUnknown {
		c.OutputType = frame.EncodingBGRA
	}
	if c.FrameTimeout == 0 {
		c.FrameTimeout = defaultFrameTimeout
	}
	if c.Display != nil {
		d := *c.Display
		c.Display = &d
	}
	if c.Crop != nil {
		a := *c.Crop
		c.Crop = &a
	}
	c.ExcludedTargets = slices.Clone(c.ExcludedTargets)
	return c
}

func (c Config) displayIndex() int {
	if c.Display == nil {
		return 0
	}
	return *c.Display
}

// Validate checks the configuration without touching the host.
func (c Config) Validate() error {
	if c.FrameRate < 1 || c.FrameRate > maxFrameRate {
		return fmt.Errorf("%w: frame rate must be 1-%d, got %d", ErrInvalidConfig, maxFrameRate, c.FrameRate)
	}
	if c.Display != nil && *c.Display < 0 {
		return fmt.Errorf("%w: display index %d", ErrInvalidConfig, *c.Display)
	}
	if c.Crop != nil {
		if c.Crop.Width <= 0 || c.Crop.Height <= 0 {
			return fmt.Errorf("%w: crop size %dx%d", ErrInvalidConfig, c.Crop.Width, c.Crop.Height)
		}
		if c.Crop.X < 0 || c.Crop.Y < 0 {
			return fmt.Errorf("%w: crop origin %d,%d", ErrInvalidConfig, c.Crop.X, c.Crop.Y)
		}
	}
	if c.OutputResolution != ResolutionNative && c.OutputResolution.Height() == 0 {
		return fmt.Errorf("%w: output resolution %v", ErrInvalidConfig, c.OutputResolution)
	}
	if c.FrameTimeout < 0 {
		return fmt.Errorf("%w: frame timeout %v", ErrInvalidConfig, c.FrameTimeout)
	}
	return nil
}
