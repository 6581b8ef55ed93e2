package game

import (
	"fmt"
	"log"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"
)

// slowTickThreshold is the tick duration above which the profiler's top entries are logged.
const slowTickThreshold = 50 * time.Millisecond

// TickStats summarizes the work done by one tick.
type TickStats struct {
	Loaded    int // chunks loaded and terrain-generated
	Vegetated int // chunks decorated
	Edited    int // chunks that received queued edits
	Meshed    int // meshes rebuilt
	Quads     int // quads across rebuilt meshes
	Failed    int // mesh builds that returned an error
	Duration  time.Duration
}

func (s TickStats) String() string {
	return fmt.Sprintf("loaded=%d vegetated=%d edited=%d meshed=%d quads=%d failed=%d in %v",
		s.Loaded, s.Vegetated, s.Edited, s.Meshed, s.Quads, s.Failed, s.Duration)
}

// Scheduler runs the per-frame batch: bounded generation, queued edits, then a rebuild of
// every dirty chunk. All chunk mutation happens before meshing starts, so meshes never see
// a chunk or neighbor mid-edit.
type Scheduler struct {
	world      *world.World
	terrain    world.TerrainGenerator
	vegetation world.VegetationGenerator
	sink       MeshSink

	budget   config.GenerationConfig
	strategy meshing.Strategy
	pool     *meshing.WorkerPool
}

// NewScheduler wires a scheduler from cfg. vegetation may be nil. A worker pool is started
// when cfg.Meshing.Workers > 0; call Close to stop it.
func NewScheduler(w *world.World, terrain world.TerrainGenerator, vegetation world.VegetationGenerator, sink MeshSink, cfg *config.Config) *Scheduler {
	s := &Scheduler{
		world:      w,
		terrain:    terrain,
		vegetation: vegetation,
		sink:       sink,
		budget:     cfg.Generation,
		strategy:   cfg.MeshStrategy(),
	}
	if cfg.Meshing.Workers > 0 {
		s.pool = meshing.NewWorkerPool(cfg.Meshing.Workers, cfg.Meshing.QueueSize)
	}
	return s
}

// Close stops the mesh worker pool, if any.
func (s *Scheduler) Close() {
	if s.pool != nil {
		s.pool.Shutdown()
		s.pool = nil
	}
}

// Tick runs one frame of generation and meshing.
func (s *Scheduler) Tick() TickStats {
	profiling.ResetFrame()
	start := time.Now()

	var stats TickStats
	stats.Loaded = s.terrainPhase()
	stats.Vegetated = s.vegetationPhase()
	stats.Edited = s.editPhase()
	s.meshPhase(&stats)

	stats.Duration = time.Since(start)
	if stats.Duration > slowTickThreshold {
		log.Printf("Slow tick: %v. Top tasks: %s", stats.Duration, profiling.TopN(5))
	}
	return stats
}

// Idle reports whether a tick would have nothing to do.
func (s *Scheduler) Idle() bool {
	if s.world.PendingLen() > 0 || s.world.PendingModifications() > 0 {
		return false
	}
	if len(s.world.DirtyChunks()) > 0 {
		return false
	}
	if s.vegetation != nil && s.budget.VegetationPerTick > 0 {
		for _, c := range s.world.Chunks() {
			if c.Stage() == world.StageTerrain {
				return false
			}
		}
	}
	return true
}

func (s *Scheduler) terrainPhase() int {
	defer profiling.Track("game.terrainPhase")()
	loaded := 0
	for loaded < s.budget.TerrainPerTick {
		coord, ok := s.world.DrainPending()
		if !ok {
			break
		}
		c, created := s.world.Load(coord)
		if !created {
			continue
		}
		if s.terrain != nil {
			s.terrain.PopulateChunk(c)
		}
		c.SetStage(world.StageTerrain)
		c.MarkDirty()
		s.world.MarkNeighborsDirty(coord)
		loaded++
	}
	return loaded
}

func (s *Scheduler) vegetationPhase() int {
	if s.vegetation == nil || s.budget.VegetationPerTick <= 0 {
		return 0
	}
	defer profiling.Track("game.vegetationPhase")()
	done := 0
	for _, c := range s.world.Chunks() {
		if done >= s.budget.VegetationPerTick {
			break
		}
		if c.Stage() != world.StageTerrain {
			continue
		}
		s.vegetation.Decorate(s.world, c)
		c.SetStage(world.StageVegetation)
		done++
	}
	return done
}

func (s *Scheduler) editPhase() int {
	defer profiling.Track("game.editPhase")()
	return s.world.ApplyModifications()
}

func (s *Scheduler) meshPhase(stats *TickStats) {
	defer profiling.Track("game.meshPhase")()
	dirty := s.world.DirtyChunks()
	if len(dirty) == 0 {
		return
	}

	jobs := make([]meshing.MeshJob, 0, len(dirty))
	chunks := make(map[world.ChunkCoord]*world.Chunk, len(dirty))
	for _, c := range dirty {
		jobs = append(jobs, meshing.MeshJob{
			Coord:     c.Pos(),
			Chunk:     c,
			Neighbors: s.world.Neighbors(c.Pos()),
			Strategy:  s.strategy,
		})
		chunks[c.Pos()] = c
	}

	var results []meshing.MeshResult
	if s.pool != nil {
		results = s.pool.BuildAll(jobs)
	} else {
		results = make([]meshing.MeshResult, 0, len(jobs))
		for _, job := range jobs {
			results = append(results, meshing.MeshResult{
				Coord: job.Coord,
				Mesh:  meshing.Build(job.Chunk, job.Neighbors, job.Strategy),
			})
		}
	}

	for _, r := range results {
		c := chunks[r.Coord]
		// Failed chunks are cleaned too; they rebuild on their next edit.
		c.SetClean()
		if r.Err != nil {
			log.Printf("game: mesh for chunk %v failed: %v", r.Coord, r.Err)
			stats.Failed++
			continue
		}
		if s.sink != nil {
			s.sink.ApplyMesh(r.Coord, r.Mesh, c.ExportDensityVolume())
		}
		stats.Meshed++
		stats.Quads += r.Mesh.QuadCount()
	}
}
