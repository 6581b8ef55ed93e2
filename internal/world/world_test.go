package world

import "testing"

func TestChunkCoordFromBlock(t *testing.T) {
	cases := []struct {
		block int
		chunk int
		local int
	}{
		{0, 0, 0},
		{14, 0, 14},
		{15, 1, 0},
		{-1, -1, 14},
		{-15, -1, 0},
		{-16, -2, 14},
	}
	for _, tc := range cases {
		cc := ChunkCoordFromBlock(tc.block, tc.block, tc.block)
		if cc != (ChunkCoord{tc.chunk, tc.chunk, tc.chunk}) {
			t.Errorf("ChunkCoordFromBlock(%d) = %v, want %d", tc.block, cc, tc.chunk)
		}
		lx, ly, lz := LocalFromBlock(tc.block, tc.block, tc.block)
		if lx != tc.local || ly != tc.local || lz != tc.local {
			t.Errorf("LocalFromBlock(%d) = %d,%d,%d, want %d", tc.block, lx, ly, lz, tc.local)
		}
	}
}

func TestDirectionHelpers(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v: double opposite = %v", d, d.Opposite().Opposite())
		}
		if d.Opposite().Axis() != d.Axis() || d.Opposite().Positive() == d.Positive() {
			t.Errorf("%v and %v are not opposite on one axis", d, d.Opposite())
		}
		o := ChunkCoord{}.Offset(d)
		n := d.Normal()
		if float32(o.X) != n.X() || float32(o.Y) != n.Y() || float32(o.Z) != n.Z() {
			t.Errorf("%v: offset %v does not match normal %v", d, o, n)
		}
	}
	if Top.Axis() != AxisY || !Top.Positive() || Bottom.Positive() {
		t.Error("Top/Bottom axis or sign wrong")
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	w := New()
	pos := ChunkCoord{1, 2, 3}
	a, created := w.Load(pos)
	if !created {
		t.Fatal("first Load should create the chunk")
	}
	b, created := w.Load(pos)
	if created || a != b {
		t.Fatal("second Load must return the existing chunk")
	}
	if w.Len() != 1 {
		t.Fatalf("Len = %d, want 1", w.Len())
	}
}

func TestNeighbors(t *testing.T) {
	w := New()
	center := ChunkCoord{0, 0, 0}
	w.Load(center)
	right, _ := w.Load(ChunkCoord{1, 0, 0})
	bottom, _ := w.Load(ChunkCoord{0, -1, 0})
	w.Load(ChunkCoord{1, 1, 0}) // diagonal, not a neighbor

	n := w.Neighbors(center)
	if n.Get(Right) != right || n.Get(Bottom) != bottom {
		t.Fatal("expected right and bottom neighbors")
	}
	for _, d := range []Direction{Left, Top, Back, Front} {
		if n.Get(d) != nil {
			t.Errorf("%v neighbor should be nil", d)
		}
	}
	if n.Count() != 2 {
		t.Errorf("Count = %d, want 2", n.Count())
	}
}

func TestDrainPendingIsLIFOAndSkipsLoaded(t *testing.T) {
	w := New()
	a, b, c := ChunkCoord{0, 0, 0}, ChunkCoord{1, 0, 0}, ChunkCoord{2, 0, 0}
	w.EnqueueGeneration(a, b, c)
	w.Load(b)

	if w.PendingLen() != 2 {
		t.Fatalf("PendingLen = %d, want 2", w.PendingLen())
	}
	for _, want := range []ChunkCoord{c, a} {
		got, ok := w.DrainPending()
		if !ok || got != want {
			t.Fatalf("DrainPending = %v, %v; want %v", got, ok, want)
		}
	}
	if _, ok := w.DrainPending(); ok {
		t.Fatal("queue should be empty")
	}
}

func TestMarkNeighborsDirty(t *testing.T) {
	w := New()
	center, _ := w.Load(ChunkCoord{})
	left, _ := w.Load(ChunkCoord{-1, 0, 0})
	front, _ := w.Load(ChunkCoord{0, 0, 1})
	far, _ := w.Load(ChunkCoord{5, 0, 0})
	for _, c := range w.Chunks() {
		c.SetClean()
	}

	w.MarkNeighborsDirty(center.Pos())
	if center.IsDirty() || far.IsDirty() {
		t.Error("only neighbors should be marked")
	}
	if !left.IsDirty() || !front.IsDirty() {
		t.Error("neighbors were not marked dirty")
	}
	if got := len(w.DirtyChunks()); got != 2 {
		t.Errorf("DirtyChunks = %d, want 2", got)
	}
}

func TestWorldSetBlockAcrossChunks(t *testing.T) {
	w := New()
	neg, _ := w.Load(ChunkCoord{-1, 0, 0})
	origin, _ := w.Load(ChunkCoord{})
	neg.SetClean()
	origin.SetClean()

	if !w.SetBlock(-1, 0, 0, BlockTypeStone, 5) {
		t.Fatal("SetBlock into a loaded chunk should queue")
	}
	if w.SetBlock(0, 0, 40, BlockTypeStone, 5) {
		t.Fatal("SetBlock into an unloaded chunk should be dropped")
	}
	if w.BlockAt(-1, 0, 0) != BlockTypeAir {
		t.Fatal("edits must not apply before ApplyModifications")
	}
	if w.PendingModifications() != 1 {
		t.Fatalf("PendingModifications = %d, want 1", w.PendingModifications())
	}

	if touched := w.ApplyModifications(); touched != 1 {
		t.Fatalf("ApplyModifications touched %d chunks, want 1", touched)
	}
	if got, _ := neg.GetBlock(ChunkSize-1, 0, 0); got != BlockTypeStone {
		t.Fatalf("local (14,0,0) = %v, want stone", got)
	}
	if h, _ := neg.GetHealth(ChunkSize-1, 0, 0); h != 5 {
		t.Errorf("health = %d, want 5", h)
	}
	if w.BlockAt(-1, 0, 0) != BlockTypeStone {
		t.Error("BlockAt did not see the edit")
	}
	if !neg.IsDirty() || !origin.IsDirty() {
		t.Error("edited chunk and its neighbor should both be dirty")
	}
	if w.PendingModifications() != 0 {
		t.Error("queue not drained")
	}
}

func TestBlockAtUnloadedIsAir(t *testing.T) {
	w := New()
	if w.BlockAt(100, -100, 3) != BlockTypeAir {
		t.Fatal("unloaded space should read as air")
	}
}
