package meshing

import (
	"log"
	"math/bits"

	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"
)

// Plane is one depth slice of visible faces for a single direction: ChunkSize rows, each a
// ChunkSize-bit word.
type Plane [world.ChunkSize]uint32

// Rect is a merged rectangle inside a Plane. It covers rows Row..Row+W-1 and bits
// Col..Col+H-1.
type Rect struct {
	Row, Col int
	W, H     int
}

// Area returns the number of unit faces in the rectangle.
func (r Rect) Area() int {
	return r.W * r.H
}

// MergePlane greedily splits the set bits of p into non-overlapping rectangles. Rows are
// scanned in order; each run of set bits is grown across following rows for as long as they
// contain the identical run, clearing it from them as it goes.
func MergePlane(p Plane) []Rect {
	var rects []Rect
	mergePlane(&p, func(r Rect) { rects = append(rects, r) })
	return rects
}

func mergePlane(p *Plane, emit func(Rect)) {
	for i := range world.ChunkSize {
		j := 0
		for j < world.ChunkSize {
			rest := p[i] >> j
			if rest == 0 {
				break
			}
			j += bits.TrailingZeros32(rest)
			h := bits.TrailingZeros32(^(p[i] >> j))

			span := uint32(1)<<h - 1
			mask := span << j

			w := 1
			for i+w < world.ChunkSize && p[i+w]&mask == mask {
				p[i+w] &^= mask
				w++
			}

			emit(Rect{Row: i, Col: j, W: w, H: h})
			j += h
		}
	}
}

// projectPlanes reorganizes a direction's per-line mask from line -> bit into
// depth -> row -> bit, where the depth is the cell position along the face normal.
func projectPlanes(mask *[world.ChunkArea]uint32) *[world.ChunkSize]Plane {
	planes := &[world.ChunkSize]Plane{}
	for idx, visible := range mask {
		i, j := idx%world.ChunkSize, idx/world.ChunkSize
		for visible != 0 {
			k := bits.TrailingZeros32(visible)
			visible &= visible - 1
			planes[k][i] |= 1 << j
		}
	}
	return planes
}

// rectBox converts a rectangle on plane depth k of axis a into a voxel origin and extent.
func rectBox(a world.Axis, k int, r Rect) (origin, extent [3]int) {
	ox, oy, oz := world.LinePosition(a, r.Row, r.Col, k)
	ex, ey, ez := world.LinePosition(a, r.W, r.H, 1)
	return [3]int{ox, oy, oz}, [3]int{ex, ey, ez}
}

// BuildGreedyMesh merges visible faces of c into maximal rectangles per plane. Each quad
// carries the material of its origin voxel.
func BuildGreedyMesh(c *world.Chunk, n world.Neighbors) *Mesh {
	defer profiling.Track("meshing.BuildGreedyMesh")()
	return GreedyFromMasks(c, VisibleFaces(c, n))
}

// GreedyFromMasks runs the greedy merge over precomputed masks.
func GreedyFromMasks(c *world.Chunk, masks *FaceMasks) *Mesh {
	m := &Mesh{}
	for _, d := range world.Directions {
		planes := projectPlanes(&masks[d])
		m.emitPlanes(c, d, planes)
	}
	return m
}

func (m *Mesh) emitPlanes(c *world.Chunk, d world.Direction, planes *[world.ChunkSize]Plane) {
	a := d.Axis()
	for k := range planes {
		mergePlane(&planes[k], func(r Rect) {
			origin, extent := rectBox(a, k, r)
			b, err := c.Block(origin[0], origin[1], origin[2])
			if err != nil {
				log.Printf("meshing: chunk %v %s plane %d rect skipped: %v", c.Pos(), d, k, err)
				return
			}
			m.appendQuad(d, origin, extent, b)
		})
	}
}

// BuildGreedyTypedMesh is BuildGreedyMesh with planes partitioned by block type, so merged
// quads never cross a material boundary.
func BuildGreedyTypedMesh(c *world.Chunk, n world.Neighbors) *Mesh {
	defer profiling.Track("meshing.BuildGreedyTypedMesh")()
	return GreedyTypedFromMasks(c, VisibleFaces(c, n))
}

// GreedyTypedFromMasks runs the per-type greedy merge over precomputed masks.
func GreedyTypedFromMasks(c *world.Chunk, masks *FaceMasks) *Mesh {
	m := &Mesh{}
	for _, d := range world.Directions {
		a := d.Axis()
		var byType [world.BlockTypeCount]*[world.ChunkSize]Plane
	lines:
		for idx, visible := range masks[d] {
			i, j := idx%world.ChunkSize, idx/world.ChunkSize
			for visible != 0 {
				k := bits.TrailingZeros32(visible)
				visible &= visible - 1

				x, y, z := world.LinePosition(a, i, j, k)
				t, err := c.GetBlock(x, y, z)
				if err != nil || !t.Valid() {
					log.Printf("meshing: chunk %v %s line %d skipped: %v", c.Pos(), d, idx, err)
					continue lines
				}
				if byType[t] == nil {
					byType[t] = &[world.ChunkSize]Plane{}
				}
				byType[t][k][i] |= 1 << j
			}
		}
		for _, planes := range byType {
			if planes != nil {
				m.emitPlanes(c, d, planes)
			}
		}
	}
	return m
}
