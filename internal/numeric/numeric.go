// Package numeric produces skewed counts and dates.
//
// Number models engagement-style figures: most values sit at or below a
// median, some reach well past it, and a rare "viral" draw jumps toward the
// maximum.
package numeric

import (
	"math"

	"github.com/babbaginator/pyDatasetGen/internal/dice"
)

const (
	// rollSides is the size of the branch roll in Number. Outcomes 0-9 stay
	// under the median, 10-14 and 15-19 land above it, 20 is viral.
	rollSides = 21

	// maxFallbackSpan bounds how far below max Exponential falls back.
	maxFallbackSpan = 200
)

// Number returns a value in [lo, hi] weighted toward median. Inputs are
// normalized first: lo and hi are swapped when reversed and median is
// clamped into range.
func Number(d *dice.Dice, lo, median, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	median = clamp(median, lo, hi)

	var v int
	switch roll := d.Intn(rollSides); {
	case roll < 10:
		v = d.Between(lo, median)
	case roll < 15:
		v = d.Between(median, subMax(d, median, hi))
	case roll < 20:
		v = d.Between(median, dice.Mid(median, hi))
	default:
		v = Exponential(d, median, hi)
	}
	return clamp(v, lo, hi)
}

// subMax is the upper bound of the second band: hi/median plus jitter,
// widened to hi when that lands below the median.
func subMax(d *dice.Dice, median, hi int) int {
	if median <= 0 {
		return hi
	}
	sm := hi/median + d.Between(0, median-1)
	if sm < median {
		sm = hi
	}
	return min(sm, hi)
}

// Exponential picks an integer power between ln(median) and ln(hi) and
// returns e raised to it. If that overshoots hi it falls back to a value a
// little under hi.
func Exponential(d *dice.Dice, median, hi int) int {
	if hi <= 0 {
		return 0
	}
	median = clamp(median, 1, hi)

	lo := int(math.Log(float64(median)))
	top := int(math.Log(float64(hi)))
	n := math.Exp(float64(d.Between(lo, top)))

	if n > float64(hi) {
		span := min(maxFallbackSpan, hi-median)
		if span < 1 {
			return hi
		}
		return hi - d.Between(1, span)
	}
	return int(n)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
