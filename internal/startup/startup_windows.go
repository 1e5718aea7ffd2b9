//go:build windows

package startup

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

func shortcutPath() string {
	appData := os.Getenv("APPDATA")
	return filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs", "Startup", "SnapGrab.lnk")
}

func IsEnabled() bool {
	_, err := os.Stat(shortcutPath())
	return err == nil
}

func Enable() error {
	exePath, err := os.Executable()
	if err != nil {
		return err
	}

	// Single quotes are literal in PowerShell; double any embedded ones.
	quote := func(s string) string { return "'" + strings.ReplaceAll(s, "'", "''") + "'" }
	script := "$WshShell = New-Object -ComObject WScript.Shell; " +
		"$Shortcut = $WshShell.CreateShortcut(" + quote(shortcutPath()) + "); " +
		"$Shortcut.TargetPath = " + quote(exePath) + "; " +
		"$Shortcut.Save()"

	cmd := exec.Command("powershell", "-NoProfile", "-ExecutionPolicy", "Bypass", "-Command", script)
	return cmd.Run()
}

func Disable() error {
	if err := os.Remove(shortcutPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
