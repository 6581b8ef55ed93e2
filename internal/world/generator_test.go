package world

import (
	"bytes"
	"testing"
)

func TestFlatGeneratorLayers(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	NewFlatGenerator(5).PopulateChunk(c)

	for _, tc := range []struct {
		y    int
		want BlockType
	}{
		{0, BlockTypeStone},
		{4, BlockTypeStone},
		{5, BlockTypeGrass},
		{6, BlockTypeAir},
		{14, BlockTypeAir},
	} {
		if got, _ := c.GetBlock(7, tc.y, 3); got != tc.want {
			t.Errorf("y=%d: %v, want %v", tc.y, got, tc.want)
		}
	}

	above := NewChunk(ChunkCoord{Y: 1})
	NewFlatGenerator(5).PopulateChunk(above)
	if !above.IsEmpty() {
		t.Error("chunk above the surface should stay empty")
	}
}

func TestHeightmapDeterministic(t *testing.T) {
	pos := ChunkCoord{X: 3, Y: 1, Z: -2}
	a, b := NewChunk(pos), NewChunk(pos)
	NewHeightmapGenerator(42).PopulateChunk(a)
	NewHeightmapGenerator(42).PopulateChunk(b)
	if !bytes.Equal(a.ExportPackedVolume(), b.ExportPackedVolume()) {
		t.Fatal("same seed produced different chunks")
	}
}

func TestHeightmapSurfaceMatchesHeightAt(t *testing.T) {
	g := NewHeightmapGenerator(7)
	w := New()
	for y := 0; y < 4; y++ {
		c, _ := w.Load(ChunkCoord{Y: y})
		g.PopulateChunk(c)
	}
	for x := range ChunkSize {
		for z := range ChunkSize {
			h := g.HeightAt(x, z)
			if h < 0 || h+1 >= 4*ChunkSize {
				t.Fatalf("height %d outside the loaded column", h)
			}
			if !w.BlockAt(x, h, z).IsSolid() {
				t.Fatalf("(%d,%d,%d) should be the solid surface", x, h, z)
			}
			if w.BlockAt(x, h+1, z) != BlockTypeAir {
				t.Fatalf("(%d,%d,%d) above the surface should be air", x, h+1, z)
			}
			if w.BlockAt(x, 0, z) != BlockTypeStone {
				t.Fatalf("(%d,0,%d) should be stone", x, z)
			}
		}
	}
}

func TestOctavesRange(t *testing.T) {
	o := Octaves{Seed: 3, Count: 4, Scale: 1.0 / 32, Persistence: 0.5, Lacunarity: 2}
	for x := -200; x < 200; x += 7 {
		for z := -200; z < 200; z += 11 {
			v := o.At(x, z)
			if v < -1e-9 || v > 1+1e-9 {
				t.Fatalf("At(%d,%d) = %f outside [0,1]", x, z, v)
			}
			if v != o.At(x, z) {
				t.Fatal("noise is not deterministic")
			}
		}
	}
}

func TestPlaceOak(t *testing.T) {
	w := New()
	for y := 0; y < 2; y++ {
		c, _ := w.Load(ChunkCoord{Y: y})
		NewFlatGenerator(5).PopulateChunk(c)
	}

	PlaceOak(w, 7, 5, 7)
	w.ApplyModifications()

	for y := 5; y < 10; y++ {
		if got := w.BlockAt(7, y, 7); got != BlockTypeWood {
			t.Errorf("trunk y=%d: %v, want wood", y, got)
		}
	}
	if got := w.BlockAt(7, 12, 7); got != BlockTypeLeaves {
		t.Errorf("crown center: %v, want leaves", got)
	}
	if got := w.BlockAt(11, 12, 7); got != BlockTypeLeaves {
		t.Errorf("crown edge: %v, want leaves", got)
	}
	if got := w.BlockAt(12, 12, 7); got != BlockTypeAir {
		t.Errorf("outside the crown: %v, want air", got)
	}
}

func TestTreeGeneratorRootsInsideChunk(t *testing.T) {
	w := New()
	flat := NewFlatGenerator(5)
	ground, _ := w.Load(ChunkCoord{})
	sky, _ := w.Load(ChunkCoord{Y: 1})
	flat.PopulateChunk(ground)

	trees := NewTreeGenerator(flat, 1, 3)
	trees.Decorate(w, sky)
	if w.PendingModifications() != 0 {
		t.Fatal("surface is below the sky chunk; nothing should be planted")
	}
	trees.Decorate(w, ground)
	if w.PendingModifications() == 0 {
		t.Fatal("expected trees on the ground chunk")
	}
}

func BenchmarkHeightmapPopulateChunk(b *testing.B) {
	g := NewHeightmapGenerator(1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.PopulateChunk(NewChunk(ChunkCoord{X: i % 8, Y: 1}))
	}
}
