package meshing

import (
	"fmt"
	"strings"

	"mini-voxel/internal/world"
)

// Mesh is a GPU-ready buffer pair: one packed uint32 per vertex and a triangle index list.
type Mesh struct {
	Vertices []uint32
	Indices  []uint32
}

// QuadCount returns the number of quads in the mesh.
func (m *Mesh) QuadCount() int {
	return len(m.Vertices) / 4
}

// Empty reports whether the mesh has no geometry.
func (m *Mesh) Empty() bool {
	return len(m.Vertices) == 0
}

// Area returns the number of unit faces covered by the mesh.
func (m *Mesh) Area() int {
	area := 0
	for q := 0; q+3 < len(m.Vertices); q += 4 {
		a := UnpackVertex(m.Vertices[q])
		c := UnpackVertex(m.Vertices[q+2])
		du, dv := planeAxes(a.Direction.Axis())
		p0 := [3]int{a.X, a.Y, a.Z}
		p2 := [3]int{c.X, c.Y, c.Z}
		area += abs(p2[du]-p0[du]) * abs(p2[dv]-p0[dv])
	}
	return area
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Strategy selects a meshing algorithm.
type Strategy int

const (
	// StrategyGreedy merges coplanar visible faces into maximal rectangles.
	StrategyGreedy Strategy = iota
	// StrategyNaive emits one quad per visible face.
	StrategyNaive
	// StrategyGreedyTyped merges like StrategyGreedy but never across block types.
	StrategyGreedyTyped
)

func (s Strategy) String() string {
	switch s {
	case StrategyGreedy:
		return "greedy"
	case StrategyNaive:
		return "naive"
	case StrategyGreedyTyped:
		return "greedy-typed"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy maps a config name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "greedy":
		return StrategyGreedy, nil
	case "naive", "culled":
		return StrategyNaive, nil
	case "greedy-typed", "typed":
		return StrategyGreedyTyped, nil
	}
	return 0, fmt.Errorf("unknown meshing strategy %q", name)
}

// Build meshes chunk c against its neighbors with the given strategy.
func Build(c *world.Chunk, n world.Neighbors, s Strategy) *Mesh {
	switch s {
	case StrategyNaive:
		return BuildNaiveMesh(c, n)
	case StrategyGreedyTyped:
		return BuildGreedyTypedMesh(c, n)
	default:
		return BuildGreedyMesh(c, n)
	}
}
