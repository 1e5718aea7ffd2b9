package capture

import (
	"errors"
	"sync"
)

// Handle owns a built Resource and the lock that serializes every use of it.
type Handle struct {
	mu  sync.Mutex
	res Resource
}

// With runs fn while holding exclusive access to the resource. The lock is
// released on every exit path, including a panic in fn.
func (h *Handle) With(fn func(Resource) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.res)
}

// Lazy builds the capture handle on first use and remembers the outcome.
type Lazy struct {
	build Builder

	once   sync.Once
	handle *Handle
	err    error
}

// NewLazy returns a Lazy that constructs its resource with build, or with
// Build when build is nil.
func NewLazy(build Builder) *Lazy {
	if build == nil {
		build = Build
	}
	return &Lazy{build: build}
}

// Get returns the shared handle, building it from cfg on the first call.
// The first call's result, handle or *BuildError, is returned to every later
// caller; their cfg is ignored and a failed build is never retried.
func (l *Lazy) Get(cfg Config) (*Handle, error) {
	l.once.Do(func() {
		defer func() {
			if l.handle == nil && l.err == nil {
				l.err = &BuildError{Backend: cfg.Backend, Err: errors.New("build did not complete")}
			}
		}()
		res, err := l.build(cfg)
		if err == nil && res == nil {
			err = errors.New("builder returned no resource")
		}
		if err != nil {
			var be *BuildError
			if !errors.As(err, &be) {
				err = &BuildError{Backend: cfg.Backend, Err: err}
			}
			l.err = err
			return
		}
		l.handle = &Handle{res: res}
	})
	return l.handle, l.err
}
