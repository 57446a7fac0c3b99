// Package physics contains the pure math behind the overlay's motion:
// fling projection, velocity normalization, rubber-band clamping and springs.
package physics

// DecelerationNormal is the per-millisecond decay factor of a normal scroll
// view deceleration.
const DecelerationNormal = 0.998

// DecelerationFast is the per-millisecond decay factor of a fast scroll view
// deceleration.
const DecelerationFast = 0.99

// Project returns how much further a point travels when it decelerates
// exponentially from initialVelocity (points per second) with the given
// per-millisecond decay factor.
func Project(initialVelocity, decelerationRate float64) float64 {
	return initialVelocity * decelerationRate / (1 - decelerationRate) / 1000
}

// RelativeVelocity expresses velocity as a fraction of the distance between
// from and to per second, the unit spring timing expects. A zero distance
// yields zero.
func RelativeVelocity(velocity, from, to float64) float64 {
	if from == to {
		return 0
	}
	return velocity / (to - from)
}
