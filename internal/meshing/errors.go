package meshing

import (
	"errors"
	"fmt"

	"mini-voxel/internal/world"
)

// ErrNilChunk is returned for a mesh job without a chunk.
var ErrNilChunk = errors.New("mesh job has no chunk")

// PanicError wraps a panic recovered while meshing a chunk.
type PanicError struct {
	Coord world.ChunkCoord
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("meshing chunk %v panicked: %v", e.Coord, e.Value)
}
