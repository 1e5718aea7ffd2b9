package capture

import (
	"errors"
	"sync"

	"snapgrab/internal/frame"
)

// fakeResource scripts NextFrame results and records lifecycle calls.
type fakeResource struct {
	mu       sync.Mutex
	started  bool
	starts   int
	stops    int
	results  []fakeResult
	startErr error
	stopErr  error
	// block, if set, is waited on inside NextFrame.
	block chan struct{}
	// inFlight tracks concurrent Start..Stop brackets.
	inFlight    int
	maxInFlight int
}

type fakeResult struct {
	raw *frame.Raw
	err error
}

var errFakeFrame = errors.New("fake frame failure")

func (f *fakeResource) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	if f.startErr != nil {
		return f.startErr
	}
	if f.started {
		return ErrAlreadyStarted
	}
	f.started = true
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	return nil
}

func (f *fakeResource) NextFrame() (*frame.Raw, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.started {
		return nil, ErrNotStarted
	}
	if len(f.results) == 0 {
		return &frame.Raw{Encoding: frame.EncodingBGRA, Width: 1, Height: 1, Data: []byte{1, 2, 3, 4}}, nil
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r.raw, r.err
}

func (f *fakeResource) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	if f.started {
		f.started = false
		f.inFlight--
	}
	return f.stopErr
}

func (f *fakeResource) snapshot() (starts, stops int, started bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts, f.stops, f.started
}
