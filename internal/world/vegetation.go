package world

// VegetationGenerator decorates a chunk whose terrain is already in place. Decorations go
// through World.SetBlock so they may spill into loaded neighbors.
type VegetationGenerator interface {
	Decorate(w *World, c *Chunk)
}

const (
	oakLeafRadius  = 4
	oakCrownOffset = 7
	oakTrunkHeight = 5
	vegetationSalt = 0x7EE5
)

// TreeGenerator scatters oak trees over columns whose surface lies inside the chunk.
type TreeGenerator struct {
	terrain       HeightGenerator
	seed          int64
	treesPerChunk int
}

// NewTreeGenerator creates a tree scatterer that roots trees on terrain's surface.
func NewTreeGenerator(terrain HeightGenerator, seed int64, treesPerChunk int) *TreeGenerator {
	return &TreeGenerator{terrain: terrain, seed: seed, treesPerChunk: treesPerChunk}
}

// Decorate queues the trees for chunk c. Trees rooted outside the chunk's vertical span are skipped.
func (g *TreeGenerator) Decorate(w *World, c *Chunk) {
	pos := c.Pos()
	baseY := pos.Y * ChunkSize
	for i := range g.treesPerChunk {
		h := hashColumn(int64(pos.X)*73856093^int64(pos.Z)*19349663, int64(i), g.seed+vegetationSalt)
		tx := int(h % ChunkSize)
		tz := int((h >> 16) % ChunkSize)

		wx := pos.X*ChunkSize + tx
		wz := pos.Z*ChunkSize + tz
		height := g.terrain.HeightAt(wx, wz)
		if height < baseY || height >= baseY+ChunkSize {
			continue
		}
		PlaceOak(w, wx, height, wz)
	}
}

// PlaceOak queues a leaf sphere above a wooden trunk rooted at world-space (x, y, z).
func PlaceOak(w *World, x, y, z int) {
	r := oakLeafRadius
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			for dz := -r; dz <= r; dz++ {
				if dx*dx+dy*dy+dz*dz <= r*r {
					w.SetBlock(x+dx, y+dy+oakCrownOffset, z+dz, BlockTypeLeaves, MaxHealth)
				}
			}
		}
	}
	for dy := range oakTrunkHeight {
		w.SetBlock(x, y+dy, z, BlockTypeWood, MaxHealth)
	}
}
