package world

import (
	"math"
	"testing"
)

func TestHashColumnDeterministic(t *testing.T) {
	first := hashColumn(10, 20, 42)
	for i := 0; i < 100; i++ {
		if got := hashColumn(10, 20, 42); got != first {
			t.Fatalf("hashColumn not deterministic: %d != %d", got, first)
		}
	}
	if hashColumn(10, 20, 43) == first {
		t.Error("seed does not affect the hash")
	}
	if hashColumn(20, 10, 42) == first {
		t.Error("hash is symmetric in x and z")
	}
}

// Lattice values should spread evenly over [0,1].
func TestLatticeDistribution(t *testing.T) {
	var buckets [10]int
	const samples = 10000
	for i := 0; i < samples; i++ {
		v := lattice(int64(i), int64(i*7), 99)
		if v < 0 || v > 1 {
			t.Fatalf("lattice(%d) = %f", i, v)
		}
		buckets[min(int(v*10), 9)]++
	}
	for i, n := range buckets {
		if math.Abs(float64(n)-samples/10) > samples/10*0.2 {
			t.Errorf("bucket %d has %d samples, expected about %d", i, n, samples/10)
		}
	}
}

func TestValueNoiseMatchesLatticeAtCorners(t *testing.T) {
	for x := int64(-3); x < 3; x++ {
		for z := int64(-3); z < 3; z++ {
			got := valueNoise(float64(x), float64(z), 5)
			if want := lattice(x, z, 5); math.Abs(got-want) > 1e-12 {
				t.Fatalf("valueNoise(%d,%d) = %f, want %f", x, z, got, want)
			}
		}
	}
}
