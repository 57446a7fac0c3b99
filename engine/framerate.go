package engine

import (
	"time"
)

// Frame intervals the host should tick at.
const (
	ElevatedFrameInterval = time.Second / 60
	IdleFrameInterval     = 250 * time.Millisecond
)

// maxGestureHold bounds a request held for the length of a gesture, in case
// the gesture source never delivers its end.
const maxGestureHold = 10 * time.Second

// RateRequest is a scoped claim on an elevated frame rate. It ends exactly
// once: on Release or when its bound elapses, whichever comes first.
type RateRequest struct {
	owner    *FrameRate
	expires  time.Time
	released bool
}

// Release ends the request. Further calls do nothing.
func (r *RateRequest) Release() {
	if r == nil || r.released {
		return
	}
	r.released = true
	r.owner.drop(r)
}

// Released reports whether the request has ended.
func (r *RateRequest) Released() bool {
	return r == nil || r.released
}

// FrameRate tracks outstanding elevated frame-rate requests.
type FrameRate struct {
	clock  Clock
	active []*RateRequest

	// activations and deactivations count transitions of Elevated.
	activations   int
	deactivations int
}

func newFrameRate(clock Clock) *FrameRate {
	return &FrameRate{clock: clock}
}

// Acquire starts a request bounded by d.
func (f *FrameRate) Acquire(d time.Duration) *RateRequest {
	r := &RateRequest{owner: f, expires: f.clock.Now().Add(d)}
	if len(f.active) == 0 {
		f.activations++
	}
	f.active = append(f.active, r)
	return r
}

// Perform holds an elevated rate for d without keeping a handle.
func (f *FrameRate) Perform(d time.Duration) {
	f.Acquire(d)
}

// Elevated reports whether any request is outstanding.
func (f *FrameRate) Elevated() bool {
	return len(f.active) > 0
}

// expire releases every request whose bound has passed.
func (f *FrameRate) expire(now time.Time) {
	for _, r := range append([]*RateRequest(nil), f.active...) {
		if !now.Before(r.expires) {
			r.Release()
		}
	}
}

func (f *FrameRate) drop(r *RateRequest) {
	for i, a := range f.active {
		if a == r {
			f.active = append(f.active[:i], f.active[i+1:]...)
			if len(f.active) == 0 {
				f.deactivations++
			}
			return
		}
	}
}
