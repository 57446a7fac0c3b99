package physics

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// maxStep bounds a single integration step so long host frames stay stable.
const maxStep = time.Second / 120

// maxOvershoot is the largest excursion past the target a Motion allows, as
// a fraction of the distance it travels.
const maxOvershoot = 0.05

// SpringParams describes a spring the way property animators do: a damping
// ratio and the period of the undamped oscillation.
type SpringParams struct {
	Damping  float64       `json:"damping"`
	Response time.Duration `json:"response"`
}

var (
	// SettleSpring drives the overlay to its snap target after a fling.
	SettleSpring = SpringParams{Damping: 0.85, Response: 450 * time.Millisecond}
	// ResizeSpring settles a resized dimension back inside its bounds.
	ResizeSpring = SpringParams{Damping: 0.7, Response: 400 * time.Millisecond}
)

// Critical returns critically damped parameters with the given response.
func Critical(response time.Duration) SpringParams {
	return SpringParams{Damping: 1, Response: response}
}

// AngularFrequency converts the response into the spring's natural
// frequency in radians per second.
func (p SpringParams) AngularFrequency() float64 {
	r := p.Response.Seconds()
	if r <= 0 {
		r = SettleSpring.Response.Seconds()
	}
	return 2 * math.Pi / r
}

// Motion animates one scalar from its current value to a target.
type Motion struct {
	From     float64
	To       float64
	Value    float64
	Velocity float64
	Params   SpringParams

	elapsed   time.Duration
	tolerance float64
	done      bool
}

// NewMotion starts a motion at from heading to to. relativeVelocity is the
// initial velocity expressed as a fraction of the distance per second, as
// produced by RelativeVelocity.
func NewMotion(from, to, relativeVelocity float64, params SpringParams) *Motion {
	distance := to - from
	return &Motion{
		From:      from,
		To:        to,
		Value:     from,
		Velocity:  relativeVelocity * distance,
		Params:    params,
		tolerance: math.Max(math.Abs(distance)*1e-3, 1e-3),
		done:      from == to && relativeVelocity == 0,
	}
}

// Done reports whether the motion has come to rest on its target.
func (m *Motion) Done() bool {
	return m.done
}

// Step advances the motion by dt and reports whether it has settled. A
// settled motion sits exactly on its target.
func (m *Motion) Step(dt time.Duration) bool {
	if m.done {
		return true
	}
	m.elapsed += dt
	omega := m.Params.AngularFrequency()
	for dt > 0 {
		step := dt
		if step > maxStep {
			step = maxStep
		}
		dt -= step
		spring := harmonica.NewSpring(step.Seconds(), omega, m.Params.Damping)
		m.Value, m.Velocity = spring.Update(m.Value, m.Velocity, m.To)
		m.limitOvershoot()
	}

	settled := math.Abs(m.Value-m.To) <= m.tolerance && math.Abs(m.Velocity) <= m.tolerance*10
	if settled || m.elapsed >= m.deadline() {
		m.Value = m.To
		m.Velocity = 0
		m.done = true
	}
	return m.done
}

// deadline is the point after which the motion is forced onto its target.
func (m *Motion) deadline() time.Duration {
	return 4 * m.Params.Response
}

func (m *Motion) limitOvershoot() {
	limit := math.Abs(m.To-m.From) * maxOvershoot
	switch {
	case m.To >= m.From && m.Value > m.To+limit:
		m.Value = m.To + limit
		if m.Velocity > 0 {
			m.Velocity = 0
		}
	case m.To < m.From && m.Value < m.To-limit:
		m.Value = m.To - limit
		if m.Velocity < 0 {
			m.Velocity = 0
		}
	}
}
