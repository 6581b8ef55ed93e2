package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"mini-voxel/internal/config"
	"mini-voxel/internal/game"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "path to a YAML config file")
	maxTicks := flag.Int("max-ticks", 1000, "stop after this many ticks even if work remains")
	compare := flag.Bool("compare", false, "after streaming, mesh every chunk with every strategy and report quad counts")

	flag.Int64Var(&cfg.World.Seed, "seed", cfg.World.Seed, "terrain seed")
	flag.IntVar(&cfg.World.Radius, "radius", cfg.World.Radius, "chunks to load around the origin on X and Z")
	flag.IntVar(&cfg.World.VerticalChunks, "vertical", cfg.World.VerticalChunks, "chunk layers to load from Y=0 upward")
	flag.IntVar(&cfg.Generation.TerrainPerTick, "terrain-per-tick", cfg.Generation.TerrainPerTick, "max chunks generated per tick")
	flag.IntVar(&cfg.Generation.VegetationPerTick, "vegetation-per-tick", cfg.Generation.VegetationPerTick, "max chunks decorated per tick")
	flag.IntVar(&cfg.Generation.TreesPerChunk, "trees", cfg.Generation.TreesPerChunk, "tree attempts per chunk")
	flag.IntVar(&cfg.Generation.TickRate, "tick-rate", cfg.Generation.TickRate, "ticks per second (0 runs unthrottled)")
	flag.StringVar(&cfg.Meshing.Strategy, "strategy", cfg.Meshing.Strategy, "mesher: greedy, naive or greedy-typed")
	flag.IntVar(&cfg.Meshing.Workers, "workers", cfg.Meshing.Workers, "mesh worker goroutines (0 meshes inline)")
	flag.Parse()

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	w := world.New()
	w.EnqueueGeneration(spawnArea(cfg.World)...)

	terrain := world.NewHeightmapGenerator(cfg.World.Seed)
	var vegetation world.VegetationGenerator
	if cfg.Generation.TreesPerChunk > 0 {
		vegetation = world.NewTreeGenerator(terrain, cfg.World.Seed, cfg.Generation.TreesPerChunk)
	}

	store := game.NewMeshStore()
	sched := game.NewScheduler(w, terrain, vegetation, store, cfg)
	defer sched.Close()

	log.Printf("streaming %d chunks, strategy=%s workers=%d", w.PendingLen(), cfg.Meshing.Strategy, cfg.Meshing.Workers)

	limiter := game.NewTickLimiter(cfg.Generation.TickRate)
	ticks := 0
	for ticks < *maxTicks && !sched.Idle() {
		if ctx.Err() != nil {
			log.Printf("interrupted after %d ticks", ticks)
			break
		}
		if ticks > 0 {
			limiter.Wait()
		}
		stats := sched.Tick()
		ticks++
		log.Printf("tick %d: %v", ticks, stats)
	}

	log.Printf("done after %d ticks: %d chunks, %d meshes, %d quads", ticks, w.Len(), store.Len(), store.TotalQuads())
	log.Printf("last tick profile: %s", profiling.TopN(5))

	if *compare {
		compareStrategies(w)
	}
}

// spawnArea lists the chunk columns around the origin. The origin column is queued last so
// the LIFO drain loads it first.
func spawnArea(cfg config.WorldConfig) []world.ChunkCoord {
	var coords []world.ChunkCoord
	for dx := -cfg.Radius; dx <= cfg.Radius; dx++ {
		for dz := -cfg.Radius; dz <= cfg.Radius; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			for y := cfg.VerticalChunks - 1; y >= 0; y-- {
				coords = append(coords, world.ChunkCoord{X: dx, Y: y, Z: dz})
			}
		}
	}
	for y := cfg.VerticalChunks - 1; y >= 0; y-- {
		coords = append(coords, world.ChunkCoord{X: 0, Y: y, Z: 0})
	}
	return coords
}

func compareStrategies(w *world.World) {
	strategies := []meshing.Strategy{meshing.StrategyNaive, meshing.StrategyGreedy, meshing.StrategyGreedyTyped}
	for _, s := range strategies {
		quads, area := 0, 0
		for _, c := range w.Chunks() {
			m := meshing.Build(c, w.Neighbors(c.Pos()), s)
			quads += m.QuadCount()
			area += m.Area()
		}
		log.Printf("%-12s quads=%d area=%d", s, quads, area)
	}
}
