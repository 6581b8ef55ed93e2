package game

import (
	"slices"
	"sync"

	"mini-voxel/internal/meshing"
	"mini-voxel/internal/world"
)

// MeshSink receives rebuilt chunk meshes. A renderer implements it by uploading the vertex
// and index buffers plus the density volume as a 3D texture.
type MeshSink interface {
	ApplyMesh(coord world.ChunkCoord, mesh *meshing.Mesh, density []byte)
}

// ChunkMesh is the latest geometry and density volume for one chunk.
type ChunkMesh struct {
	Mesh    *meshing.Mesh
	Density []byte
	// Version counts how many times the chunk has been rebuilt.
	Version int
}

// MeshStore is an in-memory MeshSink that keeps the latest mesh per chunk.
type MeshStore struct {
	mu     sync.RWMutex
	meshes map[world.ChunkCoord]*ChunkMesh
}

// NewMeshStore creates an empty store.
func NewMeshStore() *MeshStore {
	return &MeshStore{meshes: make(map[world.ChunkCoord]*ChunkMesh)}
}

// ApplyMesh replaces the stored mesh for coord.
func (s *MeshStore) ApplyMesh(coord world.ChunkCoord, mesh *meshing.Mesh, density []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.meshes[coord]
	if existing == nil {
		existing = &ChunkMesh{}
		s.meshes[coord] = existing
	}
	existing.Mesh = mesh
	existing.Density = density
	existing.Version++
}

// Get returns the stored mesh for coord.
func (s *MeshStore) Get(coord world.ChunkCoord) (*ChunkMesh, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meshes[coord]
	return m, ok
}

// Len returns the number of chunks with a mesh.
func (s *MeshStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.meshes)
}

// TotalQuads sums the quad count over all stored meshes.
func (s *MeshStore) TotalQuads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, m := range s.meshes {
		if m.Mesh != nil {
			total += m.Mesh.QuadCount()
		}
	}
	return total
}

// Coords returns the coordinates of all stored meshes in order.
func (s *MeshStore) Coords() []world.ChunkCoord {
	s.mu.RLock()
	out := make([]world.ChunkCoord, 0, len(s.meshes))
	for c := range s.meshes {
		out = append(out, c)
	}
	s.mu.RUnlock()
	slices.SortFunc(out, world.ChunkCoord.Compare)
	return out
}
