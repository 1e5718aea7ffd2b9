//go:build windows

package instance

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

// Acquire creates a named session-wide mutex.
func Acquire(name string) (*Lock, error) {
	mutexName, err := windows.UTF16PtrFromString("Local\\" + name + "-SingleInstance-Mutex")
	if err != nil {
		return nil, err
	}
	h, err := windows.CreateMutex(nil, false, mutexName)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		if h != 0 {
			windows.CloseHandle(h)
		}
		return nil, ErrAlreadyRunning
	}
	if err != nil {
		return nil, fmt.Errorf("create instance mutex: %w", err)
	}
	return &Lock{release: func() error { return windows.CloseHandle(h) }}, nil
}
