// Package startup registers snapgrab to launch when the user logs in.
package startup

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupported = errors.New("start on login is not supported on this platform")

const appName = "snapgrab"

// desktopEntry is the XDG autostart entry launching exe.
func desktopEntry(exe string) string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", appName)
	fmt.Fprintf(&b, "Exec=%s\n", quoteExec(exe))
	b.WriteString("X-GNOME-Autostart-enabled=true\n")
	b.WriteString("NoDisplay=true\n")
	return b.String()
}

// quoteExec quotes an Exec path that contains reserved characters, following
// the freedesktop Exec key rules.
func quoteExec(s string) string {
	if !strings.ContainsAny(s, " \t\n\"'\\><~|&;$*?#()`") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + r.Replace(s) + `"`
}
