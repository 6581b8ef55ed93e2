package world

import "math"

// Deterministic 2D value noise with octaves. Lattice values come from an integer hash so the
// same seed always yields the same terrain.

func smootherstep(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// hashColumn is a SplitMix64 finalizer over a lattice point and seed.
func hashColumn(x, z, seed int64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(z)*0x517CC1B727220A95 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

func lattice(x, z, seed int64) float64 {
	return float64(hashColumn(x, z, seed)&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// valueNoise returns smoothly interpolated noise in [0,1].
func valueNoise(x, z float64, seed int64) float64 {
	x0, z0 := math.Floor(x), math.Floor(z)
	ix, iz := int64(x0), int64(z0)
	fx, fz := smootherstep(x-x0), smootherstep(z-z0)

	top := lerp(lattice(ix, iz, seed), lattice(ix+1, iz, seed), fx)
	bottom := lerp(lattice(ix, iz+1, seed), lattice(ix+1, iz+1, seed), fx)
	return lerp(top, bottom, fz)
}

// Octaves sums layered value noise. The result is normalized back into [0,1].
type Octaves struct {
	Seed        int64
	Count       int
	Scale       float64
	Persistence float64
	Lacunarity  float64
}

// At samples the octave stack at world column (x, z).
func (o Octaves) At(x, z int) float64 {
	amplitude, frequency := 1.0, o.Scale
	sum, norm := 0.0, 0.0
	for i := range o.Count {
		sum += valueNoise(float64(x)*frequency, float64(z)*frequency, o.Seed+int64(i*131)) * amplitude
		norm += amplitude
		amplitude *= o.Persistence
		frequency *= o.Lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
