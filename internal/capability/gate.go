// Package capability decides whether this host can capture the screen at all
// and, where the platform has a consent model, whether the process may.
package capability

import "errors"

var (
	ErrUnsupported      = errors.New("screen capture is not supported on this host")
	ErrPermissionDenied = errors.New("screen capture permission was denied")
)

// Probe answers the host questions the gate asks.
type Probe interface {
	Supported() bool
	HasPermission() bool
	// RequestPermission prompts the user if the platform has a prompt and
	// reports whether access is now granted.
	RequestPermission() bool
}

// Check runs the startup gate against p. Permission is requested at most
// once, and only when the host supports capture and access is not yet
// granted.
func Check(p Probe) error {
	if !p.Supported() {
		return ErrUnsupported
	}
	if p.HasPermission() {
		return nil
	}
	if !p.RequestPermission() {
		return ErrPermissionDenied
	}
	return nil
}

// CheckHost runs Check against the probe for the running platform.
func CheckHost() error {
	return Check(hostProbe{})
}
