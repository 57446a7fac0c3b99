package engine

import (
	"time"

	"overlay-window/physics"
)

// Channel is one independently animated value.
type Channel int

const (
	ChannelX Channel = iota
	ChannelY
	ChannelWidth
	ChannelHeight
	ChannelAlpha
	ChannelScale
	ChannelBodyAlpha
	ChannelChromeAlpha
	ChannelGrabberMorph
	ChannelResizeChrome
	ChannelHeightPill
	ChannelWidthPill

	channelCount
)

var channelNames = [...]string{
	"x", "y", "width", "height", "alpha", "scale", "body-alpha",
	"chrome-alpha", "grabber-morph", "resize-chrome", "height-pill", "width-pill",
}

func (c Channel) String() string {
	if c < 0 || c >= channelCount {
		return "unknown"
	}
	return channelNames[c]
}

// animator holds at most one motion per channel. Starting a motion on a
// busy channel replaces the old one, beginning from the channel's live value.
type animator struct {
	motions [channelCount]*physics.Motion
	get     func(Channel) float64
	set     func(Channel, float64)
}

func newAnimator(get func(Channel) float64, set func(Channel, float64)) *animator {
	return &animator{get: get, set: set}
}

// start animates ch to target. relativeVelocity is a fraction of the
// distance per second. Re-targeting a running motion at the same target
// with the same spring leaves it untouched.
func (a *animator) start(ch Channel, target, relativeVelocity float64, params physics.SpringParams) {
	if m := a.motions[ch]; m != nil && !m.Done() && m.To == target && m.Params == params && relativeVelocity == 0 {
		return
	}
	from := a.get(ch)
	m := physics.NewMotion(from, target, relativeVelocity, params)
	if m.Done() {
		a.motions[ch] = nil
		a.set(ch, target)
		return
	}
	a.motions[ch] = m
}

// cancel stops any motion on ch, leaving the channel at its sampled value.
func (a *animator) cancel(ch Channel) float64 {
	a.motions[ch] = nil
	return a.get(ch)
}

// target returns where ch is heading, or its live value when idle.
func (a *animator) target(ch Channel) float64 {
	if m := a.motions[ch]; m != nil {
		return m.To
	}
	return a.get(ch)
}

func (a *animator) running(ch Channel) bool {
	return a.motions[ch] != nil
}

func (a *animator) active() bool {
	for _, m := range a.motions {
		if m != nil {
			return true
		}
	}
	return false
}

// step advances every motion by dt and writes the sampled values.
func (a *animator) step(dt time.Duration) {
	for ch, m := range a.motions {
		if m == nil {
			continue
		}
		done := m.Step(dt)
		a.set(Channel(ch), m.Value)
		if done {
			a.motions[ch] = nil
		}
	}
}
