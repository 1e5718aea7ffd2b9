//go:build darwin && cgo

package capability

/*
#cgo LDFLAGS: -framework CoreGraphics
#include <CoreGraphics/CoreGraphics.h>

int hasScreenCaptureAccess() {
    return CGPreflightScreenCaptureAccess();
}

int requestScreenCaptureAccess() {
    return CGRequestScreenCaptureAccess();
}
*/
import "C"

type hostProbe struct{}

func (hostProbe) Supported() bool { return true }

func (hostProbe) HasPermission() bool {
	return C.hasScreenCaptureAccess() != 0
}

// RequestPermission shows the Screen Recording consent dialog. macOS only
// applies a new grant after the process restarts.
func (hostProbe) RequestPermission() bool {
	return C.requestScreenCaptureAccess() != 0
}
