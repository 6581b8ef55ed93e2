package game

import (
	"testing"

	"mini-voxel/internal/config"
	"mini-voxel/internal/world"
)

func area(radius, layers int) []world.ChunkCoord {
	var out []world.ChunkCoord
	for x := -radius; x <= radius; x++ {
		for z := -radius; z <= radius; z++ {
			for y := 0; y < layers; y++ {
				out = append(out, world.ChunkCoord{X: x, Y: y, Z: z})
			}
		}
	}
	return out
}

// runUntilIdle ticks s until it reports idle, failing after limit ticks.
func runUntilIdle(t *testing.T, s *Scheduler, limit int) int {
	t.Helper()
	for i := 0; i < limit; i++ {
		if s.Idle() {
			return i
		}
		s.Tick()
	}
	t.Fatalf("scheduler still busy after %d ticks", limit)
	return limit
}

func TestTerrainBudgetPerTick(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Generation.TerrainPerTick = 3

	w := world.New()
	w.EnqueueGeneration(area(1, 1)...)
	s := NewScheduler(w, world.NewFlatGenerator(5), nil, nil, cfg)
	defer s.Close()

	stats := s.Tick()
	if stats.Loaded != 3 || w.Len() != 3 {
		t.Fatalf("loaded %d (world has %d), want 3", stats.Loaded, w.Len())
	}
	if stats.Meshed != 3 {
		t.Errorf("meshed %d, want 3", stats.Meshed)
	}
	if w.PendingLen() != 6 {
		t.Errorf("PendingLen = %d, want 6", w.PendingLen())
	}
}

func TestLIFOOrderLoadsLastQueuedFirst(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Generation.TerrainPerTick = 1

	w := world.New()
	first, last := world.ChunkCoord{X: 4}, world.ChunkCoord{X: -4}
	w.EnqueueGeneration(first, last)
	s := NewScheduler(w, world.NewFlatGenerator(5), nil, nil, cfg)
	defer s.Close()

	s.Tick()
	if _, ok := w.Chunk(last); !ok {
		t.Fatal("most recently queued chunk should load first")
	}
	if _, ok := w.Chunk(first); ok {
		t.Fatal("budget of one exceeded")
	}
}

func TestVegetationBudgetPerTick(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Generation.TerrainPerTick = 9
	cfg.Generation.VegetationPerTick = 2

	flat := world.NewFlatGenerator(5)
	w := world.New()
	w.EnqueueGeneration(area(1, 1)...)
	s := NewScheduler(w, flat, world.NewTreeGenerator(flat, 3, 2), nil, cfg)
	defer s.Close()

	stats := s.Tick()
	if stats.Loaded != 9 || stats.Vegetated != 2 {
		t.Fatalf("loaded=%d vegetated=%d, want 9 and 2", stats.Loaded, stats.Vegetated)
	}
	decorated := 0
	for _, c := range w.Chunks() {
		if c.Stage() == world.StageVegetation {
			decorated++
		}
	}
	if decorated != 2 {
		t.Errorf("%d chunks decorated, want 2", decorated)
	}
}

func TestSchedulerMeshesEverythingThenIdles(t *testing.T) {
	cfg := config.DefaultConfig()
	flat := world.NewFlatGenerator(5)
	w := world.New()
	coords := area(1, 2)
	w.EnqueueGeneration(coords...)

	store := NewMeshStore()
	s := NewScheduler(w, flat, world.NewTreeGenerator(flat, 9, 2), store, cfg)
	defer s.Close()

	runUntilIdle(t, s, 50)
	if w.Len() != len(coords) || store.Len() != len(coords) {
		t.Fatalf("world=%d meshes=%d, want %d", w.Len(), store.Len(), len(coords))
	}
	if len(w.DirtyChunks()) != 0 {
		t.Error("dirty chunks left after idle")
	}
	for _, c := range w.Chunks() {
		if c.Stage() != world.StageVegetation {
			t.Errorf("chunk %v stuck at stage %d", c.Pos(), c.Stage())
		}
	}

	m, ok := store.Get(world.ChunkCoord{})
	if !ok || m.Mesh.Empty() {
		t.Fatal("origin chunk has no mesh")
	}
	if len(m.Density) != world.ChunkVolume {
		t.Errorf("density volume has %d bytes", len(m.Density))
	}
	if store.TotalQuads() == 0 {
		t.Error("no quads stored")
	}
}

func TestEditRebuildsChunkAndNeighbors(t *testing.T) {
	cfg := config.DefaultConfig()
	w := world.New()
	w.EnqueueGeneration(area(1, 1)...)
	store := NewMeshStore()
	s := NewScheduler(w, world.NewFlatGenerator(5), nil, store, cfg)
	defer s.Close()
	runUntilIdle(t, s, 10)

	before, _ := store.Get(world.ChunkCoord{})
	version := before.Version

	// Carve into the surface at the +X edge of the origin chunk.
	if !w.SetBlock(world.ChunkSize-1, 5, 7, world.BlockTypeAir, 0) {
		t.Fatal("edit dropped")
	}
	stats := s.Tick()
	if stats.Edited != 1 {
		t.Fatalf("edited %d chunks, want 1", stats.Edited)
	}
	// Origin plus its four loaded horizontal neighbors.
	if stats.Meshed != 5 {
		t.Errorf("meshed %d, want 5", stats.Meshed)
	}
	after, _ := store.Get(world.ChunkCoord{})
	if after.Version != version+1 {
		t.Errorf("version %d, want %d", after.Version, version+1)
	}
	if !s.Idle() {
		t.Error("scheduler should be idle after the rebuild")
	}
}

func TestPoolAndInlineAgree(t *testing.T) {
	run := func(workers int) (int, int) {
		cfg := config.DefaultConfig()
		cfg.Meshing.Workers = workers
		terrain := world.NewHeightmapGenerator(cfg.World.Seed)
		w := world.New()
		w.EnqueueGeneration(area(1, 3)...)
		store := NewMeshStore()
		s := NewScheduler(w, terrain, world.NewTreeGenerator(terrain, cfg.World.Seed, 3), store, cfg)
		defer s.Close()
		runUntilIdle(t, s, 100)
		return store.Len(), store.TotalQuads()
	}

	inlineMeshes, inlineQuads := run(0)
	poolMeshes, poolQuads := run(4)
	if inlineMeshes != poolMeshes || inlineQuads != poolQuads {
		t.Fatalf("inline %d meshes/%d quads, pool %d/%d", inlineMeshes, inlineQuads, poolMeshes, poolQuads)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Meshing.Workers = 2
	s := NewScheduler(world.New(), nil, nil, nil, cfg)
	s.Close()
	s.Close()
	if !s.Idle() {
		t.Fatal("empty scheduler should be idle")
	}
}

func TestMeshStoreCoordsSorted(t *testing.T) {
	store := NewMeshStore()
	for _, c := range []world.ChunkCoord{{X: 2}, {X: -1, Z: 3}, {X: -1}} {
		store.ApplyMesh(c, nil, nil)
	}
	got := store.Coords()
	want := []world.ChunkCoord{{X: -1}, {X: -1, Z: 3}, {X: 2}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Coords = %v, want %v", got, want)
		}
	}
	if store.TotalQuads() != 0 {
		t.Error("nil meshes should count as zero quads")
	}
}
