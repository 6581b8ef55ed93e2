package world

import (
	"cmp"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord is a position on the chunk grid (chunk space, not block space).
type ChunkCoord struct {
	X, Y, Z int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// Offset returns the coordinate of the adjacent chunk in direction d.
func (c ChunkCoord) Offset(d Direction) ChunkCoord {
	o := directionOffsets[d]
	return ChunkCoord{X: c.X + o[0], Y: c.Y + o[1], Z: c.Z + o[2]}
}

// WorldOrigin returns the block-space position of the chunk's (0,0,0) corner.
func (c ChunkCoord) WorldOrigin() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(c.X * ChunkSize),
		float32(c.Y * ChunkSize),
		float32(c.Z * ChunkSize),
	}
}

// Compare orders coordinates by X, then Y, then Z.
func (c ChunkCoord) Compare(o ChunkCoord) int {
	if r := cmp.Compare(c.X, o.X); r != 0 {
		return r
	}
	if r := cmp.Compare(c.Y, o.Y); r != 0 {
		return r
	}
	return cmp.Compare(c.Z, o.Z)
}

// ChunkCoordFromBlock returns the chunk containing the world-space block (x, y, z).
func ChunkCoordFromBlock(x, y, z int) ChunkCoord {
	return ChunkCoord{X: floorDiv(x, ChunkSize), Y: floorDiv(y, ChunkSize), Z: floorDiv(z, ChunkSize)}
}

// LocalFromBlock returns the chunk-local coordinates of the world-space block (x, y, z).
func LocalFromBlock(x, y, z int) (int, int, int) {
	return mod(x, ChunkSize), mod(y, ChunkSize), mod(z, ChunkSize)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// Axis is one of the three grid axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

// Direction is a face direction. The values double as the 3-bit normal tag in packed vertices.
type Direction uint8

const (
	Left   Direction = iota // -X
	Right                   // +X
	Bottom                  // -Y
	Top                     // +Y
	Back                    // -Z
	Front                   // +Z

	DirectionCount = 6
)

// Directions lists every direction in tag order.
var Directions = [DirectionCount]Direction{Left, Right, Bottom, Top, Back, Front}

var directionOffsets = [DirectionCount][3]int{
	Left:   {-1, 0, 0},
	Right:  {1, 0, 0},
	Bottom: {0, -1, 0},
	Top:    {0, 1, 0},
	Back:   {0, 0, -1},
	Front:  {0, 0, 1},
}

var directionNames = [DirectionCount]string{"left", "right", "bottom", "top", "back", "front"}

// Axis returns the axis the direction's normal lies on.
func (d Direction) Axis() Axis {
	return Axis(d / 2)
}

// Positive reports whether the normal points toward +axis.
func (d Direction) Positive() bool {
	return d%2 == 1
}

// Opposite returns the direction facing the other way on the same axis.
func (d Direction) Opposite() Direction {
	return d ^ 1
}

// Normal returns the outward unit normal.
func (d Direction) Normal() mgl32.Vec3 {
	o := directionOffsets[d]
	return mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}
}

func (d Direction) String() string {
	if d >= DirectionCount {
		return "invalid"
	}
	return directionNames[d]
}

// LineIndex returns the index of the occupancy word along axis a that passes through (x, y, z),
// together with the bit position of the cell inside that word.
//
//	x axis: index y + z*N, bit x
//	y axis: index x + z*N, bit y
//	z axis: index x + y*N, bit z
func LineIndex(a Axis, x, y, z int) (index, bit int) {
	switch a {
	case AxisX:
		return y + z*ChunkSize, x
	case AxisY:
		return x + z*ChunkSize, y
	default:
		return x + y*ChunkSize, z
	}
}

// LinePosition is the inverse of LineIndex: it maps line (i, j) on axis a and bit k back to a cell,
// where the line index is i + j*N.
func LinePosition(a Axis, i, j, k int) (x, y, z int) {
	switch a {
	case AxisX:
		return k, i, j
	case AxisY:
		return i, k, j
	default:
		return i, j, k
	}
}
