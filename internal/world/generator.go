package world

import (
	"log"
	"math"
)

// TerrainGenerator fills a freshly loaded chunk through SetBlock.
type TerrainGenerator interface {
	PopulateChunk(c *Chunk)
}

// HeightGenerator is a TerrainGenerator that can also report its surface height, which
// vegetation uses to find tree roots.
type HeightGenerator interface {
	TerrainGenerator
	HeightAt(worldX, worldZ int) int
}

// HeightmapGenerator layers grass, dirt and stone under a noise heightmap.
type HeightmapGenerator struct {
	seed       int64
	baseHeight int
	amplitude  float64
	terrain    Octaves
	grass      Octaves
}

// NewHeightmapGenerator creates a generator with default shaping parameters.
func NewHeightmapGenerator(seed int64) *HeightmapGenerator {
	return &HeightmapGenerator{
		seed:       seed,
		baseHeight: 18,
		amplitude:  16,
		terrain:    Octaves{Seed: seed, Count: 6, Scale: 1.0 / 48.0, Persistence: 0.5, Lacunarity: 2.0},
		grass:      Octaves{Seed: seed + 87, Count: 2, Scale: 1.0 / 20.0, Persistence: 0.5, Lacunarity: 2.0},
	}
}

// HeightAt returns the block Y of the topmost solid block in column (worldX, worldZ).
func (g *HeightmapGenerator) HeightAt(worldX, worldZ int) int {
	h := float64(g.baseHeight) + g.terrain.At(worldX, worldZ)*g.amplitude
	return int(math.Floor(h))
}

// grassLevel is the height above which the top layer turns light grass.
func (g *HeightmapGenerator) grassLevel(worldX, worldZ int) int {
	return g.baseHeight + int(g.grass.At(worldX, worldZ)*g.amplitude)
}

func (g *HeightmapGenerator) layer(y, height, grassLevel int) BlockType {
	switch {
	case y >= height-3:
		if y >= grassLevel {
			return BlockTypeLightGrass
		}
		return BlockTypeGrass
	case y > height-15:
		return BlockTypeDirt
	default:
		return BlockTypeStone
	}
}

// PopulateChunk fills every column of c up to the heightmap surface.
func (g *HeightmapGenerator) PopulateChunk(c *Chunk) {
	origin := c.Pos()
	baseX, baseY, baseZ := origin.X*ChunkSize, origin.Y*ChunkSize, origin.Z*ChunkSize
	for lx := range ChunkSize {
		for lz := range ChunkSize {
			wx, wz := baseX+lx, baseZ+lz
			height := g.HeightAt(wx, wz)
			grass := g.grassLevel(wx, wz)
			for ly := range ChunkSize {
				wy := baseY + ly
				if wy > height {
					break
				}
				health := uint8(12 + hashColumn(int64(wx), int64(wz)*31+int64(wy), g.seed)%4)
				if err := c.SetBlock(lx, ly, lz, g.layer(wy, height, grass), health); err != nil {
					log.Printf("world: heightmap fill %v: %v", origin, err)
				}
			}
		}
	}
}

// FlatGenerator fills everything at or below a fixed height with stone, capped with grass.
type FlatGenerator struct {
	height int
}

// NewFlatGenerator creates a flat generator whose surface is the block at Y=height.
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{height: height}
}

// HeightAt returns the fixed surface height.
func (g *FlatGenerator) HeightAt(int, int) int {
	return g.height
}

// PopulateChunk fills c below the fixed surface.
func (g *FlatGenerator) PopulateChunk(c *Chunk) {
	baseY := c.Pos().Y * ChunkSize
	for ly := range ChunkSize {
		wy := baseY + ly
		if wy > g.height {
			return
		}
		t := BlockTypeStone
		if wy == g.height {
			t = BlockTypeGrass
		}
		for lx := range ChunkSize {
			for lz := range ChunkSize {
				if err := c.SetBlock(lx, ly, lz, t, MaxHealth); err != nil {
					log.Printf("world: flat fill %v: %v", c.Pos(), err)
				}
			}
		}
	}
}
