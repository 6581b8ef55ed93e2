package world

import (
	"log"
	"slices"
	"sync"
)

// Neighbors holds the six adjacent chunks indexed by Direction. A nil entry is a chunk that
// is not loaded, which visibility treats as an open boundary.
type Neighbors [DirectionCount]*Chunk

// Get returns the neighbor in direction d, or nil.
func (n Neighbors) Get(d Direction) *Chunk {
	return n[d]
}

// Count returns how many neighbors are loaded.
func (n Neighbors) Count() int {
	count := 0
	for _, c := range n {
		if c != nil {
			count++
		}
	}
	return count
}

type modification struct {
	x, y, z int
	block   BlockType
	health  uint8
}

// World is the chunk index. The chunk map is written only by loads; readers take the read
// lock so neighbor lookups see a consistent snapshot.
type World struct {
	mu      sync.RWMutex
	chunks  map[ChunkCoord]*Chunk
	pending []ChunkCoord

	// Edits queued by SetBlock, applied per chunk by ApplyModifications.
	modsMu sync.Mutex
	mods   map[ChunkCoord][]modification
}

// New creates an empty world.
func New() *World {
	return &World{
		chunks: make(map[ChunkCoord]*Chunk),
		mods:   make(map[ChunkCoord][]modification),
	}
}

// Chunk returns the loaded chunk at coord.
func (w *World) Chunk(coord ChunkCoord) (*Chunk, bool) {
	w.mu.RLock()
	c, ok := w.chunks[coord]
	w.mu.RUnlock()
	return c, ok
}

// Load inserts an empty chunk at coord. If one is already loaded it is returned with false.
func (w *World) Load(coord ChunkCoord) (*Chunk, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if existing, ok := w.chunks[coord]; ok {
		return existing, false
	}
	c := NewChunk(coord)
	w.chunks[coord] = c
	return c, true
}

// Len returns the number of loaded chunks.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// Chunks returns every loaded chunk ordered by coordinate.
func (w *World) Chunks() []*Chunk {
	w.mu.RLock()
	out := make([]*Chunk, 0, len(w.chunks))
	for _, c := range w.chunks {
		out = append(out, c)
	}
	w.mu.RUnlock()
	sortChunks(out)
	return out
}

func sortChunks(chunks []*Chunk) {
	slices.SortFunc(chunks, func(a, b *Chunk) int { return a.pos.Compare(b.pos) })
}

// Neighbors looks up the six chunks adjacent to pos.
func (w *World) Neighbors(pos ChunkCoord) Neighbors {
	var n Neighbors
	w.mu.RLock()
	for _, d := range Directions {
		n[d] = w.chunks[pos.Offset(d)]
	}
	w.mu.RUnlock()
	return n
}

// EnqueueGeneration pushes coordinates onto the pending stack. Duplicates and coordinates
// that are already loaded are dropped when drained.
func (w *World) EnqueueGeneration(coords ...ChunkCoord) {
	w.mu.Lock()
	w.pending = append(w.pending, coords...)
	w.mu.Unlock()
}

// DrainPending pops the most recently queued coordinate that is not loaded yet.
func (w *World) DrainPending() (ChunkCoord, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for len(w.pending) > 0 {
		last := len(w.pending) - 1
		next := w.pending[last]
		w.pending = w.pending[:last]
		if _, loaded := w.chunks[next]; loaded {
			continue
		}
		return next, true
	}
	return ChunkCoord{}, false
}

// PendingLen returns how many queued coordinates are still unloaded.
func (w *World) PendingLen() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	n := 0
	for _, c := range w.pending {
		if _, loaded := w.chunks[c]; !loaded {
			n++
		}
	}
	return n
}

// MarkNeighborsDirty flags every loaded neighbor of pos as needing a new mesh.
func (w *World) MarkNeighborsDirty(pos ChunkCoord) {
	for _, nb := range w.Neighbors(pos) {
		if nb != nil {
			nb.MarkDirty()
		}
	}
}

// DirtyChunks returns the chunks whose mesh is stale, ordered by coordinate.
func (w *World) DirtyChunks() []*Chunk {
	w.mu.RLock()
	var out []*Chunk
	for _, c := range w.chunks {
		if c.IsDirty() {
			out = append(out, c)
		}
	}
	w.mu.RUnlock()
	sortChunks(out)
	return out
}

// BlockAt returns the block type at world-space coordinates. Unloaded chunks read as air.
func (w *World) BlockAt(x, y, z int) BlockType {
	c, ok := w.Chunk(ChunkCoordFromBlock(x, y, z))
	if !ok {
		return BlockTypeAir
	}
	lx, ly, lz := LocalFromBlock(x, y, z)
	t, _ := c.GetBlock(lx, ly, lz)
	return t
}

// SetBlock queues a world-space edit. It returns false, and drops the edit, when the target
// chunk is not loaded.
func (w *World) SetBlock(x, y, z int, t BlockType, health uint8) bool {
	coord := ChunkCoordFromBlock(x, y, z)
	if _, ok := w.Chunk(coord); !ok {
		return false
	}
	lx, ly, lz := LocalFromBlock(x, y, z)
	w.modsMu.Lock()
	w.mods[coord] = append(w.mods[coord], modification{x: lx, y: ly, z: lz, block: t, health: health})
	w.modsMu.Unlock()
	return true
}

// PendingModifications returns the number of queued edits.
func (w *World) PendingModifications() int {
	w.modsMu.Lock()
	defer w.modsMu.Unlock()
	n := 0
	for _, m := range w.mods {
		n += len(m)
	}
	return n
}

// ApplyModifications writes all queued edits into their chunks. Each chunk that received
// edits is marked dirty together with its neighbors. Returns the number of chunks touched.
func (w *World) ApplyModifications() int {
	w.modsMu.Lock()
	mods := w.mods
	w.mods = make(map[ChunkCoord][]modification)
	w.modsMu.Unlock()

	touched := 0
	for coord, list := range mods {
		c, ok := w.Chunk(coord)
		if !ok || len(list) == 0 {
			continue
		}
		for _, m := range list {
			if err := c.SetBlock(m.x, m.y, m.z, m.block, m.health); err != nil {
				log.Printf("world: dropped edit in chunk %v: %v", coord, err)
			}
		}
		c.MarkDirty()
		w.MarkNeighborsDirty(coord)
		touched++
	}
	return touched
}
