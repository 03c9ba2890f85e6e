package export

import (
	"sync"
	"time"
)

type Status int

const (
	StatusReady Status = iota
	StatusPreparing
	StatusDone
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPreparing:
		return "preparing"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	}
	return "ready"
}

// Indicator tracks the state of one export button. A finished export shows
// Done or Failed for the revert delay, then goes back to Ready.
type Indicator struct {
	mu     sync.RWMutex
	status Status
	delay  time.Duration
	timer  *time.Timer
	gen    int
}

func NewIndicator(delay time.Duration) *Indicator {
	return &Indicator{delay: delay}
}

// TryStart moves Ready to Preparing. It reports false while an export is
// running or its result is still on display.
func (i *Indicator) TryStart() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.status != StatusReady {
		return false
	}
	i.status = StatusPreparing
	return true
}

func (i *Indicator) Finish(err error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.status != StatusPreparing {
		return
	}
	if err != nil {
		i.status = StatusFailed
	} else {
		i.status = StatusDone
	}

	if i.timer != nil {
		i.timer.Stop()
	}
	i.gen++
	gen := i.gen
	i.timer = time.AfterFunc(i.delay, func() { i.revert(gen) })
}

func (i *Indicator) Status() Status {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.status
}

// Stop cancels a pending revert and resets to Ready.
func (i *Indicator) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.timer != nil {
		i.timer.Stop()
		i.timer = nil
	}
	i.gen++
	i.status = StatusReady
}

func (i *Indicator) revert(gen int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	// A later Finish or Stop owns the indicator now.
	if gen != i.gen {
		return
	}
	if i.status == StatusDone || i.status == StatusFailed {
		i.status = StatusReady
	}
	i.timer = nil
}
