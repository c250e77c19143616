package dice

import (
	"math"
	"testing"
)

func TestSameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for i := range 100 {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

func TestRollRange(t *testing.T) {
	d := New(1)
	seen := make(map[int]bool)
	for range 1000 {
		v := d.Roll(6)
		if v < 1 || v > 6 {
			t.Fatalf("Roll(6) = %d, out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != 6 {
		t.Errorf("expected all six faces, saw %d", len(seen))
	}
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi int
	}{
		{"ordered", 3, 9},
		{"reversed", 9, 3},
		{"single", 5, 5},
		{"negative", -4, 2},
		{"wider than int", -9_000_000_000_000_000_000, 9_000_000_000_000_000_000},
		{"whole int range", math.MinInt, math.MaxInt},
		{"top edge", math.MaxInt - 1, math.MaxInt},
	}

	d := New(7)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := min(tt.lo, tt.hi), max(tt.lo, tt.hi)
			for range 200 {
				v := d.Between(tt.lo, tt.hi)
				if v < lo || v > hi {
					t.Fatalf("Between(%d, %d) = %d", tt.lo, tt.hi, v)
				}
			}
		})
	}
}

func TestMid(t *testing.T) {
	tests := []struct {
		lo, hi, want int
	}{
		{0, 10, 5},
		{10, 20, 15},
		{-3, 3, 0},
		{1, 2, 1},
		{math.MinInt, math.MaxInt, -1},
		{math.MaxInt - 2, math.MaxInt, math.MaxInt - 1},
	}
	for _, tt := range tests {
		if got := Mid(tt.lo, tt.hi); got != tt.want {
			t.Errorf("Mid(%d, %d) = %d, want %d", tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestDegenerateInputs(t *testing.T) {
	d := New(3)
	if v := d.Intn(0); v != 0 {
		t.Errorf("Intn(0) = %d, want 0", v)
	}
	if v := d.Roll(0); v != 1 {
		t.Errorf("Roll(0) = %d, want 1", v)
	}
	if v := d.Pick(nil); v != "" {
		t.Errorf("Pick(nil) = %q, want empty", v)
	}
}

func TestPick(t *testing.T) {
	d := New(9)
	items := []string{"a", "b", "c"}
	for range 50 {
		v := d.Pick(items)
		if v != "a" && v != "b" && v != "c" {
			t.Fatalf("Pick returned %q", v)
		}
	}
}

func TestChildIsDeterministic(t *testing.T) {
	a, b := New(11).Child(), New(11).Child()
	if a.Intn(1<<30) != b.Intn(1<<30) {
		t.Error("children of equal seeds should agree")
	}
}

func TestRead(t *testing.T) {
	d := New(5)
	buf := make([]byte, 13)
	n, err := d.Read(buf)
	if err != nil || n != len(buf) {
		t.Fatalf("Read = %d, %v", n, err)
	}
	zero := true
	for _, b := range buf {
		if b != 0 {
			zero = false
		}
	}
	if zero {
		t.Error("expected random bytes")
	}
}
