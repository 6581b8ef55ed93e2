package meshing

import (
	"context"
	"log"
	"sync"

	"mini-voxel/internal/world"
)

// MeshJob represents a meshing job request
type MeshJob struct {
	Coord     world.ChunkCoord
	Chunk     *world.Chunk
	Neighbors world.Neighbors
	Strategy  Strategy
	// Result channel - will be sent the result when done
	ResultChan chan MeshResult
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	Coord world.ChunkCoord
	Mesh  *Mesh
	Err   error
}

// WorkerPool manages goroutines for mesh generation. Jobs for different chunks run in
// parallel, so callers must not mutate a chunk or its neighbors while its job is queued.
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool creates a new mesh worker pool
func NewWorkerPool(workers int, queueSize int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		workers:  max(workers, 1),
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := range pool.workers {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// SubmitJob submits a mesh generation job to the pool
// Returns true if job was submitted successfully, false if queue is full
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// SubmitJobBlocking submits a job and blocks until it's queued. It returns false if the
// pool was shut down first.
func (p *WorkerPool) SubmitJobBlocking(job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// BuildAll meshes every job and returns the results in completion order. ResultChan on the
// jobs is ignored.
func (p *WorkerPool) BuildAll(jobs []MeshJob) []MeshResult {
	results := make(chan MeshResult, len(jobs))
	submitted := 0
	for _, job := range jobs {
		job.ResultChan = results
		if !p.SubmitJobBlocking(job) {
			break
		}
		submitted++
	}

	out := make([]MeshResult, 0, submitted)
	for range submitted {
		select {
		case r := <-results:
			out = append(out, r)
		case <-p.ctx.Done():
			return out
		}
	}
	return out
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			result := p.run(id, job)

			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// run builds one mesh, turning a panic in the mesher into an error result.
func (p *WorkerPool) run(id int, job MeshJob) (result MeshResult) {
	result.Coord = job.Coord
	defer func() {
		if r := recover(); r != nil {
			log.Printf("meshing: worker %d panicked on chunk %v: %v", id, job.Coord, r)
			result.Mesh = nil
			result.Err = &PanicError{Coord: job.Coord, Value: r}
		}
	}()
	if job.Chunk == nil {
		result.Err = ErrNilChunk
		return result
	}
	result.Mesh = Build(job.Chunk, job.Neighbors, job.Strategy)
	return result
}

// Shutdown stops the workers and waits for them to exit.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// GetQueueLength returns the current number of jobs in the queue
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}
