package config

import (
	"errors"
	"fmt"
	"os"

	"mini-voxel/internal/meshing"

	"gopkg.in/yaml.v3"
)

// Config holds all world, generation and meshing settings.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Generation GenerationConfig `yaml:"generation"`
	Meshing    MeshingConfig    `yaml:"meshing"`
}

// WorldConfig controls which chunks are queued at startup.
type WorldConfig struct {
	Seed           int64 `yaml:"seed"`
	Radius         int   `yaml:"radius"`          // chunks around the origin on X and Z
	VerticalChunks int   `yaml:"vertical_chunks"` // chunk layers from Y=0 upward
}

// GenerationConfig bounds generation work per tick.
type GenerationConfig struct {
	TerrainPerTick    int `yaml:"terrain_per_tick"`
	VegetationPerTick int `yaml:"vegetation_per_tick"`
	TreesPerChunk     int `yaml:"trees_per_chunk"`
	TickRate          int `yaml:"tick_rate"` // ticks per second, 0 runs unthrottled
}

// MeshingConfig selects the mesher and its concurrency.
type MeshingConfig struct {
	Strategy  string `yaml:"strategy"`   // greedy, naive or greedy-typed
	Workers   int    `yaml:"workers"`    // 0 meshes inline on the tick goroutine
	QueueSize int    `yaml:"queue_size"` // pool job queue capacity
}

// DefaultConfig returns a Config with the reference tick budgets.
func DefaultConfig() *Config {
	return &Config{
		World: WorldConfig{
			Seed:           101,
			Radius:         2,
			VerticalChunks: 3,
		},
		Generation: GenerationConfig{
			TerrainPerTick:    10,
			VegetationPerTick: 4,
			TreesPerChunk:     5,
		},
		Meshing: MeshingConfig{
			Strategy:  meshing.StrategyGreedy.String(),
			Workers:   0,
			QueueSize: 256,
		},
	}
}

// Load reads configuration from a YAML file. Missing values fall back to DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration and applies defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	def := DefaultConfig()
	if cfg.Generation.TerrainPerTick == 0 {
		cfg.Generation.TerrainPerTick = def.Generation.TerrainPerTick
	}
	if cfg.Generation.VegetationPerTick == 0 {
		cfg.Generation.VegetationPerTick = def.Generation.VegetationPerTick
	}
	if cfg.World.VerticalChunks == 0 {
		cfg.World.VerticalChunks = def.World.VerticalChunks
	}
	if cfg.Meshing.Strategy == "" {
		cfg.Meshing.Strategy = def.Meshing.Strategy
	}
	if cfg.Meshing.QueueSize == 0 {
		cfg.Meshing.QueueSize = def.Meshing.QueueSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the scheduler cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if _, err := meshing.ParseStrategy(c.Meshing.Strategy); err != nil {
		errs = append(errs, err)
	}
	if c.Generation.TerrainPerTick < 1 {
		errs = append(errs, fmt.Errorf("generation.terrain_per_tick must be at least 1, got %d", c.Generation.TerrainPerTick))
	}
	if c.Generation.VegetationPerTick < 0 {
		errs = append(errs, fmt.Errorf("generation.vegetation_per_tick must not be negative, got %d", c.Generation.VegetationPerTick))
	}
	if c.Generation.TreesPerChunk < 0 {
		errs = append(errs, fmt.Errorf("generation.trees_per_chunk must not be negative, got %d", c.Generation.TreesPerChunk))
	}
	if c.Generation.TickRate < 0 {
		errs = append(errs, fmt.Errorf("generation.tick_rate must not be negative, got %d", c.Generation.TickRate))
	}
	if c.World.Radius < 0 {
		errs = append(errs, fmt.Errorf("world.radius must not be negative, got %d", c.World.Radius))
	}
	if c.World.VerticalChunks < 1 {
		errs = append(errs, fmt.Errorf("world.vertical_chunks must be at least 1, got %d", c.World.VerticalChunks))
	}
	if c.Meshing.Workers < 0 {
		errs = append(errs, fmt.Errorf("meshing.workers must not be negative, got %d", c.Meshing.Workers))
	}
	if c.Meshing.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("meshing.queue_size must be at least 1, got %d", c.Meshing.QueueSize))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// MeshStrategy returns the parsed meshing strategy. Call Validate first.
func (c *Config) MeshStrategy() meshing.Strategy {
	s, _ := meshing.ParseStrategy(c.Meshing.Strategy)
	return s
}

// Merge applies file-loaded config values into cfg, but only for fields that were NOT
// explicitly set via CLI flags. explicitFlags contains the flag names that were explicitly
// provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.World.Seed = fromFile.World.Seed
	}
	if !explicitFlags["radius"] {
		cfg.World.Radius = fromFile.World.Radius
	}
	if !explicitFlags["vertical"] {
		cfg.World.VerticalChunks = fromFile.World.VerticalChunks
	}
	if !explicitFlags["terrain-per-tick"] {
		cfg.Generation.TerrainPerTick = fromFile.Generation.TerrainPerTick
	}
	if !explicitFlags["vegetation-per-tick"] {
		cfg.Generation.VegetationPerTick = fromFile.Generation.VegetationPerTick
	}
	if !explicitFlags["trees"] {
		cfg.Generation.TreesPerChunk = fromFile.Generation.TreesPerChunk
	}
	if !explicitFlags["tick-rate"] {
		cfg.Generation.TickRate = fromFile.Generation.TickRate
	}
	if !explicitFlags["strategy"] {
		cfg.Meshing.Strategy = fromFile.Meshing.Strategy
	}
	if !explicitFlags["workers"] {
		cfg.Meshing.Workers = fromFile.Meshing.Workers
	}
	cfg.Meshing.QueueSize = fromFile.Meshing.QueueSize
}
