package physics

import "math"

// Softness holds the rubber-band constants for one axis. Larger values give
// a looser band.
type Softness struct {
	OverMax  float64 `json:"over_max"`
	UnderMin float64 `json:"under_min"`
}

// DefaultSoftness is the tuning used for both resize axes.
var DefaultSoftness = Softness{OverMax: 25, UnderMin: 7}

// ElasticClamp maps value into a softly bounded range. Inside (min, max] it
// is the identity; beyond either bound the excess is compressed
// logarithmically, so the result keeps following the input with diminishing
// sensitivity and always stays strictly between the bound and the raw value.
func ElasticClamp(value, min, max, overMaxSoftness, underMinSoftness float64) float64 {
	switch {
	case value > max:
		excess := value - max
		return max + overMaxSoftness*math.Log(excess/overMaxSoftness+1)
	case value > min:
		return value
	default:
		excess := min - value
		return min - underMinSoftness*math.Log(excess/underMinSoftness+1)
	}
}

// Clamp applies ElasticClamp with the constants in s.
func (s Softness) Clamp(value, min, max float64) float64 {
	return ElasticClamp(value, min, max, s.OverMax, s.UnderMin)
}
