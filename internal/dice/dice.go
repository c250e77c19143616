// Package dice is the randomness source for every synthesizer.
//
// A Dice wraps a seeded PCG generator from math/rand/v2 so that runs can be
// reproduced from a seed. A Dice is not safe for concurrent use; hand each
// goroutine its own via Child.
package dice

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
)

// Dice draws random values.
type Dice struct {
	r *rand.Rand
}

// New returns a Dice seeded with seed. Equal seeds give equal sequences.
func New(seed uint64) *Dice {
	return &Dice{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Random returns a Dice seeded from the runtime's random source.
func Random() *Dice {
	return New(rand.Uint64())
}

// Child derives an independent Dice from the next value in d's sequence.
func (d *Dice) Child() *Dice {
	return New(d.r.Uint64())
}

// Intn returns a value in [0, n). It returns 0 when n <= 0.
func (d *Dice) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return d.r.IntN(n)
}

// Roll returns a value in [1, n], like an n-sided die. n < 1 rolls 1.
func (d *Dice) Roll(n int) int {
	if n < 1 {
		return 1
	}
	return d.r.IntN(n) + 1
}

// Between returns a value in [lo, hi]. The bounds may be given in either
// order and may span the whole int range.
func (d *Dice) Between(lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	span := uint64(hi) - uint64(lo)
	if span == math.MaxUint64 {
		return int(d.r.Uint64())
	}
	return int(uint64(lo) + d.r.Uint64N(span+1))
}

// Mid returns a value halfway between lo and hi without overflowing.
func Mid(lo, hi int) int {
	return lo/2 + hi/2 + (lo%2+hi%2)/2
}

// Coin returns true half the time.
func (d *Dice) Coin() bool {
	return d.r.IntN(2) == 0
}

// Float64 returns a value in [0, 1).
func (d *Dice) Float64() float64 {
	return d.r.Float64()
}

// Pick returns a random element of s, or "" when s is empty.
func (d *Dice) Pick(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[d.r.IntN(len(s))]
}

// Read fills p with random bytes. It never fails.
func (d *Dice) Read(p []byte) (int, error) {
	var buf [8]byte
	for i := 0; i < len(p); i += 8 {
		binary.LittleEndian.PutUint64(buf[:], d.r.Uint64())
		copy(p[i:], buf[:])
	}
	return len(p), nil
}
