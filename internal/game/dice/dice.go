// Package dice provides the randomness abstraction for the Arena combat engine.
//
// Every formula in the game draws through a Source so that battles are
// reproducible under test: production wires a crypto-backed Source, tests wire
// seeded or scripted ones.
package dice

// Source is the randomness provider for all game rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Between returns a uniform random int in [lo, hi] inclusive.
//
// Precondition: src must be non-nil; hi >= lo.
// Postcondition: lo <= result <= hi.
func Between(src Source, lo, hi int) int {
	if hi < lo {
		panic("dice: Between called with hi < lo")
	}
	return lo + src.Intn(hi-lo+1)
}

// Percent returns a uniform random int in [1, 100], the standard percentile roll.
//
// Precondition: src must be non-nil.
func Percent(src Source) int {
	return Between(src, 1, 100)
}

// Chance reports whether a percentile roll lands at or under pct.
// pct <= 0 never succeeds; pct >= 100 always succeeds.
//
// Precondition: src must be non-nil.
func Chance(src Source, pct int) bool {
	if pct <= 0 {
		return false
	}
	if pct >= 100 {
		return true
	}
	return Percent(src) <= pct
}

// Fraction returns a uniform random float64 in [0, 1) with 1/10000 resolution.
// Used for spawn-rate style probability checks; coarse resolution is fine there
// and keeps every draw flowing through the single Intn entry point.
//
// Precondition: src must be non-nil.
func Fraction(src Source) float64 {
	return float64(src.Intn(10000)) / 10000.0
}
