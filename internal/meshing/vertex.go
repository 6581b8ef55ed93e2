package meshing

import (
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Packed vertex layout (one uint32 per vertex):
//
//	 31    26 25  22 21  18 17 15 14  10 9    5 4    0
//	[reserved][health][ type ][dir ][  z  ][  y  ][  x  ]
//
// x, y, z are corner coordinates in 0..ChunkSize, dir is a world.Direction tag,
// type and health are copied from the voxel that owns the face.
const (
	PosBits     = 5
	PosMask     = 1<<PosBits - 1
	XShift      = 0
	YShift      = XShift + PosBits
	ZShift      = YShift + PosBits
	DirShift    = ZShift + PosBits
	DirMask     = 0x7
	TypeShift   = DirShift + 3
	TypeMask    = 0xF
	HealthShift = TypeShift + 4
	HealthMask  = 0xF
	VertexBits  = HealthShift + 4
)

// PackVertex encodes one quad corner.
func PackVertex(x, y, z int, dir world.Direction, t world.BlockType, health uint8) uint32 {
	return uint32(x&PosMask)<<XShift |
		uint32(y&PosMask)<<YShift |
		uint32(z&PosMask)<<ZShift |
		uint32(dir&DirMask)<<DirShift |
		uint32(t&TypeMask)<<TypeShift |
		uint32(health&HealthMask)<<HealthShift
}

// VertexAttributes is a decoded packed vertex.
type VertexAttributes struct {
	X, Y, Z   int
	Direction world.Direction
	Type      world.BlockType
	Health    uint8
}

// UnpackVertex decodes a packed vertex.
func UnpackVertex(v uint32) VertexAttributes {
	return VertexAttributes{
		X:         int(v >> XShift & PosMask),
		Y:         int(v >> YShift & PosMask),
		Z:         int(v >> ZShift & PosMask),
		Direction: world.Direction(v >> DirShift & DirMask),
		Type:      world.BlockType(v >> TypeShift & TypeMask),
		Health:    uint8(v >> HealthShift & HealthMask),
	}
}

// Position returns the chunk-local corner position.
func (a VertexAttributes) Position() mgl32.Vec3 {
	return mgl32.Vec3{float32(a.X), float32(a.Y), float32(a.Z)}
}

// Normal returns the outward face normal.
func (a VertexAttributes) Normal() mgl32.Vec3 {
	return a.Direction.Normal()
}

// quadIndices is the two-triangle fan over a quad's four corners.
var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}

// planeAxes returns the in-plane axes (u, v) of a face on axis a, ordered so that u × v
// points along +a.
func planeAxes(a world.Axis) (u, v int) {
	switch a {
	case world.AxisX:
		return 1, 2
	case world.AxisY:
		return 2, 0
	default:
		return 0, 1
	}
}

// appendQuad emits the four corners and six indices of the face of direction d covering the
// box that starts at voxel origin and spans extent cells per axis. Corners are ordered CCW
// when seen from outside.
func (m *Mesh) appendQuad(d world.Direction, origin, extent [3]int, block world.Block) {
	a := int(d.Axis())
	u, v := planeAxes(d.Axis())

	base := origin
	if d.Positive() {
		base[a] += extent[a]
	}

	// (u, v) offsets of the corners in winding order.
	offsets := [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	if !d.Positive() {
		offsets = [4][2]int{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	}

	first := uint32(len(m.Vertices))
	t, health := block.Type(), block.Health()
	for _, o := range offsets {
		p := base
		p[u] += o[0] * extent[u]
		p[v] += o[1] * extent[v]
		m.Vertices = append(m.Vertices, PackVertex(p[0], p[1], p[2], d, t, health))
	}
	for _, i := range quadIndices {
		m.Indices = append(m.Indices, first+i)
	}
}
