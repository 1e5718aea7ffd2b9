//go:build windows

package capability

import "golang.org/x/sys/windows"

const smCMonitors = 80

var procGetSystemMetrics = windows.NewLazySystemDLL("user32.dll").NewProc("GetSystemMetrics")

// hostProbe reports support when the desktop has at least one monitor.
// Windows has no screen capture consent model.
type hostProbe struct{}

func (hostProbe) Supported() bool {
	if err := procGetSystemMetrics.Find(); err != nil {
		return false
	}
	n, _, _ := procGetSystemMetrics.Call(smCMonitors)
	return n > 0
}

func (hostProbe) HasPermission() bool { return true }

func (hostProbe) RequestPermission() bool { return true }
