// Package instance keeps a second copy of snapgrab from running in the same
// user session.
package instance

import "errors"

var ErrAlreadyRunning = errors.New("another instance is already running")

// Lock is held for the life of the process.
type Lock struct {
	release func() error
}

// Release gives the lock up. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.release == nil {
		return nil
	}
	release := l.release
	l.release = nil
	return release()
}
