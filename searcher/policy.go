package searcher

import "math"

type uctPolicy struct {
	numerator float64
}

// newUCTPolicy prepares the exploration term for a parent visited N times.
func newUCTPolicy(cSquared float64, N float64) uctPolicy {
	if N <= 0 {
		panic("parent visits must be positive")
	}
	return uctPolicy{numerator: cSquared * math.Log(N)}
}

// evaluate returns q/n + sqrt(c^2*ln(N)/n) for a child with total reward q
// over n visits.
func (p uctPolicy) evaluate(q float64, n float64) float64 {
	if n <= 0 {
		panic("child visits must be positive")
	}
	return q/n + math.Sqrt(p.numerator/n)
}
