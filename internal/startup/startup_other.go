//go:build !linux && !windows

package startup

func IsEnabled() bool { return false }

func Enable() error { return ErrUnsupported }

func Disable() error { return nil }
