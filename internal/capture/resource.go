// Package capture builds the display capture resource, guards it for
// exclusive use and runs single-frame capture sessions against it.
package capture

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"snapgrab/internal/frame"
)

var (
	ErrInvalidConfig      = errors.New("invalid capture configuration")
	ErrUnsupportedBackend = errors.New("capture backend is not supported on this host")
	ErrBackendUnavailable = errors.New("capture backend is not available")
	ErrNoDisplays         = errors.New("no active displays found")
	ErrDisplayNotFound    = errors.New("display not found")
	ErrCropOutOfBounds    = errors.New("crop area is outside the captured display")
	ErrNotStarted         = errors.New("capture has not been started")
	ErrAlreadyStarted     = errors.New("capture already started")
	ErrFrameTimeout       = errors.New("timed out waiting for frame")
)

// Resource is a configured ability to grab display frames. Implementations
// are not safe for concurrent use; Handle serializes access.
type Resource interface {
	// Start begins producing frames.
	Start() error
	// NextFrame blocks until a frame is available, the backend fails or the
	// configured frame timeout passes.
	NextFrame() (*frame.Raw, error)
	// Stop ends the capture and releases platform capture state. Stopping an
	// idle resource is a no-op.
	Stop() error
}

// Builder constructs a Resource from a configuration.
type Builder func(Config) (Resource, error)

// BuildError reports that the capture resource could not be constructed.
type BuildError struct {
	Backend string
	Err     error
}

func (e *BuildError) Error() string {
	if e.Backend == "" {
		return fmt.Sprintf("build capture resource: %v", e.Err)
	}
	return fmt.Sprintf("build %s capture resource: %v", e.Backend, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Build constructs the resource described by cfg on this host.
func Build(cfg Config) (Resource, error) {
	cfg = cfg.clone()

	backend, err := resolveBackend(cfg.Backend)
	if err != nil {
		return nil, &BuildError{Backend: cfg.Backend, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &BuildError{Backend: backend, Err: err}
	}
	switch cfg.OutputType {
	case frame.EncodingBGRA, frame.EncodingRGBA:
	default:
		return nil, &BuildError{Backend: backend, Err: fmt.Errorf("%w: %s output", frame.ErrUnsupportedEncoding, cfg.OutputType)}
	}

	var res Resource
	switch backend {
	case BackendScreenshot:
		res, err = newScreenshotResource(cfg)
	case BackendPortal:
		res, err = newPortalResource(cfg)
	}
	if err != nil {
		return nil, &BuildError{Backend: backend, Err: err}
	}

	warnIgnoredOptions(backend, cfg)
	captureDebugf("built backend=%s output=%s resolution=%s fps=%d", backend, cfg.OutputType, cfg.OutputResolution, cfg.FrameRate)
	return res, nil
}

// resolveBackend maps a configured backend name to a concrete backend. Auto
// prefers the desktop portal on Wayland sessions without an X server.
func resolveBackend(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendAuto:
		if runtime.GOOS == "linux" && os.Getenv("WAYLAND_DISPLAY") != "" && os.Getenv("DISPLAY") == "" {
			return BackendPortal, nil
		}
		return BackendScreenshot, nil
	case BackendScreenshot:
		return BackendScreenshot, nil
	case BackendPortal:
		if runtime.GOOS != "linux" {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedBackend, name)
		}
		return BackendPortal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedBackend, name)
	}
}

func warnIgnoredOptions(backend string, cfg Config) {
	if cfg.ShowCursor {
		log.Printf("Capture option show_cursor is not supported by the %s backend, ignoring", backend)
	}
	if cfg.ShowHighlight {
		log.Printf("Capture option show_highlight is not supported by the %s backend, ignoring", backend)
	}
	if len(cfg.ExcludedTargets) > 0 {
		log.Printf("Capture option excluded_targets is not supported by the %s backend, ignoring %d targets", backend, len(cfg.ExcludedTargets))
	}
}
