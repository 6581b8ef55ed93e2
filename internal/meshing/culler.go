package meshing

import (
	"math/bits"

	"mini-voxel/internal/world"
)

// FaceMasks holds, per direction and per occupancy line, the bits of the cells whose face in
// that direction is visible. Lines use the same indexing as the chunk's axis bitplanes.
type FaceMasks [world.DirectionCount][world.ChunkArea]uint32

// Count returns the total number of visible faces.
func (m *FaceMasks) Count() int {
	total := 0
	for _, d := range world.Directions {
		total += m.CountDirection(d)
	}
	return total
}

// CountDirection returns the number of visible faces pointing in direction d.
func (m *FaceMasks) CountDirection(d world.Direction) int {
	total := 0
	for _, w := range m[d] {
		total += bits.OnesCount32(w)
	}
	return total
}

// lineVisibility derives the visible faces of one occupancy line.
// before is the occupancy of the cell just below bit 0 (in the -side neighbor), after the
// occupancy of the cell just above bit N-1 (in the +side neighbor).
//
// A cell's -face shows when the cell below it is empty: shift the line up one, inject before
// at bit 0, invert and keep the cells that are set. The +face is the mirror with after
// injected at bit N-1.
func lineVisibility(line uint32, before, after bool) (desc, asc uint32) {
	below := line << 1
	if before {
		below |= 1
	}
	above := line >> 1
	if after {
		above |= 1 << (world.ChunkSize - 1)
	}
	desc = line &^ below & world.LineMask
	asc = line &^ above & world.LineMask
	return desc, asc
}

// boundaryBit reports whether nb has its cell at bit position `bit` set on line idx of axis a.
// A missing neighbor is an empty boundary.
func boundaryBit(nb *world.Chunk, a world.Axis, idx, bit int) bool {
	if nb == nil {
		return false
	}
	return nb.Line(a, idx%world.ChunkSize, idx/world.ChunkSize)&(1<<bit) != 0
}

// axisDirections maps each axis to its (-, +) face directions.
var axisDirections = [3][2]world.Direction{
	{world.Left, world.Right},
	{world.Bottom, world.Top},
	{world.Back, world.Front},
}

// VisibleFaces computes the six visibility masks of c. Neighbor chunks only contribute
// their boundary cells; nil neighbors leave every edge face visible.
func VisibleFaces(c *world.Chunk, n world.Neighbors) *FaceMasks {
	masks := &FaceMasks{}
	for a := world.AxisX; a <= world.AxisZ; a++ {
		neg, pos := axisDirections[a][0], axisDirections[a][1]
		lines := c.Lines(a)
		lower, upper := n[neg], n[pos]
		for idx, line := range lines {
			before := boundaryBit(lower, a, idx, world.ChunkSize-1)
			after := boundaryBit(upper, a, idx, 0)
			masks[neg][idx], masks[pos][idx] = lineVisibility(line, before, after)
		}
	}
	return masks
}
