//go:build linux

package capability

import (
	"os"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"snapgrab/internal/portal"
)

// hostProbe accepts an X11 display with at least one screen, or a Wayland
// session that exposes the desktop screenshot portal. The portal asks for
// consent on every request, so there is no standing permission to check.
type hostProbe struct{}

func (hostProbe) Supported() bool {
	if os.Getenv("DISPLAY") != "" && x11Screens() > 0 {
		return true
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return portal.Available()
	}
	return false
}

func (hostProbe) HasPermission() bool { return true }

func (hostProbe) RequestPermission() bool { return true }

func x11Screens() int {
	conn, err := xgb.NewConn()
	if err != nil {
		return 0
	}
	defer conn.Close()
	return len(xproto.Setup(conn).Roots)
}
