package capture

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestLazyBuildsOnceUnderConcurrency(t *testing.T) {
	var builds atomic.Int32
	release := make(chan struct{})
	lazy := NewLazy(func(Config) (Resource, error) {
		builds.Add(1)
		<-release
		return &fakeResource{}, nil
	})

	const callers = 16
	handles := make([]*Handle, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i], errs[i] = lazy.Get(DefaultConfig())
		}(i)
	}
	close(release)
	wg.Wait()

	if n := builds.Load(); n != 1 {
		t.Fatalf("builder ran %d times, want 1", n)
	}
	for i := range handles {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if handles[i] != handles[0] {
			t.Fatalf("caller %d observed a different handle", i)
		}
	}
}

func TestLazyCachesBuildFailure(t *testing.T) {
	var builds atomic.Int32
	cause := errors.New("backend exploded")
	lazy := NewLazy(func(Config) (Resource, error) {
		builds.Add(1)
		return nil, cause
	})

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, err := lazy.Get(Config{Backend: "screenshot"})
			if h != nil {
				t.Errorf("caller %d got a handle", i)
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()

	if n := builds.Load(); n != 1 {
		t.Fatalf("builder ran %d times, want 1", n)
	}
	for i, err := range errs {
		var be *BuildError
		if !errors.As(err, &be) {
			t.Fatalf("caller %d: err = %v, want *BuildError", i, err)
		}
		if !errors.Is(err, cause) {
			t.Fatalf("caller %d: cause lost: %v", i, err)
		}
		if err != errs[0] {
			t.Fatalf("caller %d observed a different error value", i)
		}
	}

	if _, err := lazy.Get(DefaultConfig()); !errors.Is(err, cause) {
		t.Fatalf("later call retried or changed error: %v", err)
	}
	if n := builds.Load(); n != 1 {
		t.Fatalf("failed build was retried")
	}
}

func TestLazyIgnoresLaterConfig(t *testing.T) {
	var seen []Config
	lazy := NewLazy(func(cfg Config) (Resource, error) {
		seen = append(seen, cfg)
		return &fakeResource{}, nil
	})

	first := DefaultConfig()
	first.FrameRate = 1
	second := DefaultConfig()
	second.FrameRate = 30

	h1, err := lazy.Get(first)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := lazy.Get(second)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Fatal("second Get returned a new handle")
	}
	if len(seen) != 1 || seen[0].FrameRate != 1 {
		t.Fatalf("builder saw %+v", seen)
	}
}

func TestLazyNilResourceIsBuildError(t *testing.T) {
	lazy := NewLazy(func(Config) (Resource, error) { return nil, nil })
	h, err := lazy.Get(DefaultConfig())
	var be *BuildError
	if h != nil || !errors.As(err, &be) {
		t.Fatalf("Get = %v, %v", h, err)
	}
}

func TestHandleWithSerializes(t *testing.T) {
	h := &Handle{res: &fakeResource{}}
	var active, maxActive atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.With(func(Resource) error {
				n := active.Add(1)
				for {
					m := maxActive.Load()
					if n <= m || maxActive.CompareAndSwap(m, n) {
						break
					}
				}
				active.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()
	if maxActive.Load() != 1 {
		t.Fatalf("max concurrent holders = %d", maxActive.Load())
	}
}
