package world

import (
	"fmt"
)

const (
	// ChunkSize is the edge length of a cubic chunk. Vertex coordinates reach ChunkSize
	// inclusive and are packed into 5 bits, so it must stay at or below 31.
	ChunkSize   = 15
	ChunkArea   = ChunkSize * ChunkSize
	ChunkVolume = ChunkArea * ChunkSize

	// LineMask has one bit set per cell along an occupancy line.
	LineMask uint32 = 1<<ChunkSize - 1
)

// Compile-time guard: fails to build if ChunkSize exceeds the 5-bit vertex coordinate range.
const _ = uint(31 - ChunkSize)

// Stage tracks how far generation has progressed for a chunk.
type Stage uint8

const (
	StageEmpty Stage = iota
	StageTerrain
	StageVegetation
)

// Chunk is a ChunkSize³ voxel grid with one occupancy bitplane per axis.
type Chunk struct {
	pos    ChunkCoord
	blocks [ChunkVolume]Block

	// One word per line along each axis, see LineIndex for the layout.
	xAxis [ChunkArea]uint32
	yAxis [ChunkArea]uint32
	zAxis [ChunkArea]uint32

	dirty bool
	stage Stage
}

// NewChunk creates an empty (all air) chunk at the given chunk coordinates.
func NewChunk(pos ChunkCoord) *Chunk {
	return &Chunk{pos: pos, dirty: true}
}

// Pos returns the chunk-grid coordinate.
func (c *Chunk) Pos() ChunkCoord {
	return c.pos
}

func blockIndex(x, y, z int) int {
	return x + y*ChunkSize + z*ChunkArea
}

func inBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

func outOfBounds(x, y, z int) error {
	return fmt.Errorf("%w: (%d, %d, %d) not in [0, %d)", ErrIndexOutOfBounds, x, y, z, ChunkSize)
}

// Block returns the packed cell at local coordinates.
func (c *Chunk) Block(x, y, z int) (Block, error) {
	if !inBounds(x, y, z) {
		return 0, outOfBounds(x, y, z)
	}
	return c.blocks[blockIndex(x, y, z)], nil
}

// GetBlock returns the block type at local coordinates.
func (c *Chunk) GetBlock(x, y, z int) (BlockType, error) {
	b, err := c.Block(x, y, z)
	if err != nil {
		return BlockTypeAir, err
	}
	return b.Type(), nil
}

// GetHealth returns the health value at local coordinates.
func (c *Chunk) GetHealth(x, y, z int) (uint8, error) {
	b, err := c.Block(x, y, z)
	if err != nil {
		return 0, err
	}
	return b.Health(), nil
}

// SetBlock writes a block and keeps the three axis bitplanes in sync with it.
// The chunk is marked dirty when the cell actually changes.
func (c *Chunk) SetBlock(x, y, z int, t BlockType, health uint8) error {
	if !inBounds(x, y, z) {
		return outOfBounds(x, y, z)
	}
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownBlockType, t)
	}
	if health > MaxHealth {
		return fmt.Errorf("%w: %d > %d", ErrHealthOutOfRange, health, MaxHealth)
	}

	idx := blockIndex(x, y, z)
	nb := NewBlock(t, health)
	if c.blocks[idx] == nb {
		return nil
	}
	c.blocks[idx] = nb

	xi, xb := LineIndex(AxisX, x, y, z)
	yi, yb := LineIndex(AxisY, x, y, z)
	zi, zb := LineIndex(AxisZ, x, y, z)
	if t.IsSolid() {
		c.xAxis[xi] |= 1 << xb
		c.yAxis[yi] |= 1 << yb
		c.zAxis[zi] |= 1 << zb
	} else {
		c.xAxis[xi] &^= 1 << xb
		c.yAxis[yi] &^= 1 << yb
		c.zAxis[zi] &^= 1 << zb
	}

	c.dirty = true
	return nil
}

// Fill sets every cell to the same block.
func (c *Chunk) Fill(t BlockType, health uint8) error {
	for z := range ChunkSize {
		for y := range ChunkSize {
			for x := range ChunkSize {
				if err := c.SetBlock(x, y, z, t, health); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Occupied reads the x-axis bitplane for (x, y, z). Out-of-range cells are unoccupied.
func (c *Chunk) Occupied(x, y, z int) bool {
	if !inBounds(x, y, z) {
		return false
	}
	i, b := LineIndex(AxisX, x, y, z)
	return c.xAxis[i]&(1<<b) != 0
}

// Line returns the occupancy word for line index i + j*N on axis a.
func (c *Chunk) Line(a Axis, i, j int) uint32 {
	return c.lines(a)[i+j*ChunkSize]
}

// lines returns the whole bitplane of axis a.
func (c *Chunk) lines(a Axis) *[ChunkArea]uint32 {
	switch a {
	case AxisX:
		return &c.xAxis
	case AxisY:
		return &c.yAxis
	default:
		return &c.zAxis
	}
}

// Lines returns a copy of the bitplane of axis a.
func (c *Chunk) Lines(a Axis) [ChunkArea]uint32 {
	return *c.lines(a)
}

// IsEmpty reports whether every cell is air.
func (c *Chunk) IsEmpty() bool {
	for _, w := range c.xAxis {
		if w != 0 {
			return false
		}
	}
	return true
}

// ExportDensityVolume returns the block-type id of every cell, x fastest then y then z.
// This is the R8 payload for a ChunkSize³ 3D texture.
func (c *Chunk) ExportDensityVolume() []byte {
	out := make([]byte, ChunkVolume)
	for i, b := range c.blocks {
		out[i] = byte(b.Type())
	}
	return out
}

// ExportPackedVolume returns the packed type+health byte of every cell in the same order
// as ExportDensityVolume.
func (c *Chunk) ExportPackedVolume() []byte {
	out := make([]byte, ChunkVolume)
	for i, b := range c.blocks {
		out[i] = byte(b)
	}
	return out
}

// IsDirty returns whether the chunk's mesh is stale.
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// MarkDirty flags the chunk's mesh as stale.
func (c *Chunk) MarkDirty() {
	c.dirty = true
}

// SetClean marks the chunk's mesh as up to date.
func (c *Chunk) SetClean() {
	c.dirty = false
}

// Stage returns the generation stage.
func (c *Chunk) Stage() Stage {
	return c.stage
}

// SetStage records the generation stage.
func (c *Chunk) SetStage(s Stage) {
	c.stage = s
}
