package capture

import (
	"fmt"
	"image"

	"snapgrab/internal/frame"
	"snapgrab/internal/portal"
)

// portalResource takes one desktop screenshot per frame request through the
// xdg-desktop-portal Screenshot interface.
type portalResource struct {
	cfg     Config
	shoot   func(portal.ScreenshotOptions) (string, error)
	load    func(uri string, remove bool) (image.Image, error)
	running bool
}

func newPortalResource(cfg Config) (*portalResource, error) {
	if cfg.displayIndex() != 0 {
		return nil, fmt.Errorf("%w: the portal backend only captures the primary desktop", ErrDisplayNotFound)
	}
	if !portal.Available() {
		return nil, fmt.Errorf("%w: no screenshot portal on the session bus", ErrBackendUnavailable)
	}
	return &portalResource{
		cfg:   cfg,
		shoot: portal.Screenshot,
		load:  portal.LoadImage,
	}, nil
}

func (p *portalResource) Start() error {
	if p.running {
		return ErrAlreadyStarted
	}
	p.running = true
	return nil
}

func (p *portalResource) Stop() error {
	p.running = false
	return nil
}

func (p *portalResource) NextFrame() (*frame.Raw, error) {
	if !p.running {
		return nil, ErrNotStarted
	}

	uri, err := p.shoot(portal.ScreenshotOptions{Timeout: p.cfg.FrameTimeout})
	if err != nil {
		return nil, err
	}
	img, err := p.load(uri, true)
	if img == nil {
		return nil, err
	}
	if err != nil {
		captureDebugf("portal screenshot cleanup: %v", err)
	}

	region, err := cropRegion(img.Bounds(), p.cfg.Crop)
	if err != nil {
		return nil, err
	}
	return toRaw(img, region, p.cfg.OutputType, p.cfg.OutputResolution)
}
