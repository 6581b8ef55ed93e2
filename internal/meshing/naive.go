package meshing

import (
	"log"
	"math/bits"

	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"
)

var unitExtent = [3]int{1, 1, 1}

// BuildNaiveMesh emits one unit quad for every visible face of c.
func BuildNaiveMesh(c *world.Chunk, n world.Neighbors) *Mesh {
	defer profiling.Track("meshing.BuildNaiveMesh")()
	return NaiveFromMasks(c, VisibleFaces(c, n))
}

// NaiveFromMasks emits one unit quad per set bit of masks, reading material from c.
// A line whose voxel lookup fails is logged and skipped; the rest of the chunk still meshes.
func NaiveFromMasks(c *world.Chunk, masks *FaceMasks) *Mesh {
	m := &Mesh{}
	for _, d := range world.Directions {
		a := d.Axis()
		for idx, visible := range masks[d] {
			i, j := idx%world.ChunkSize, idx/world.ChunkSize
			for visible != 0 {
				k := bits.TrailingZeros32(visible)
				visible &= visible - 1

				x, y, z := world.LinePosition(a, i, j, k)
				b, err := c.Block(x, y, z)
				if err != nil {
					log.Printf("meshing: chunk %v %s line %d skipped: %v", c.Pos(), d, idx, err)
					break
				}
				m.appendQuad(d, [3]int{x, y, z}, unitExtent, b)
			}
		}
	}
	return m
}
