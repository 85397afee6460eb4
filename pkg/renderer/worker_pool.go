package renderer

import (
	"context"
	"sync"
	"time"

	"github.com/df07/go-octree-raytracer/pkg/compositor"
	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/scene"
)

// frame holds everything a task needs; shared read-only by all workers
// except for the surface, which workers write in disjoint row bands
type frame struct {
	ctx     context.Context
	scene   *scene.Scene
	camera  *scene.Camera
	surface *compositor.Surface[uint8]
	options Options
}

// rowTask represents a band of image rows for the worker pool
type rowTask struct {
	frame  *frame
	taskID int // Seeds the sampler, for deterministic output
	y0, y1 int
}

// taskResult contains the result from rendering a row band
type taskResult struct {
	workerID int
	rows     int
	rays     uint64
	elapsed  time.Duration
	err      error
}

// workerPool manages parallel row rendering. Workers live as long as the
// pool, so consecutive frames reuse the same goroutines.
type workerPool struct {
	taskQueue   chan rowTask
	resultQueue chan taskResult
	workers     []*worker
	wg          sync.WaitGroup
}

// worker handles individual row tasks with its own sampler
type worker struct {
	ID          int
	sampler     *core.RandomSampler
	taskQueue   chan rowTask
	resultQueue chan taskResult
}

// newWorkerPool creates a worker pool with the specified number of workers
func newWorkerPool(numWorkers int) *workerPool {
	wp := &workerPool{
		taskQueue:   make(chan rowTask, numWorkers),
		resultQueue: make(chan taskResult, numWorkers),
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &worker{
			ID:          i,
			sampler:     core.NewSeededSampler(0),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// start begins all workers
func (wp *workerPool) start() {
	for _, w := range wp.workers {
		wp.wg.Add(1)
		go w.run(&wp.wg)
	}
}

// stop gracefully shuts down all workers
func (wp *workerPool) stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// submit queues a task, blocking while all workers are busy
func (wp *workerPool) submit(task rowTask) {
	wp.taskQueue <- task
}

// result retrieves a completed task result
func (wp *workerPool) result() taskResult {
	return <-wp.resultQueue
}

func (wp *workerPool) size() int {
	return len(wp.workers)
}

// run is the main worker loop
func (w *worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		result := taskResult{workerID: w.ID, rows: task.y1 - task.y0}

		if err := task.frame.ctx.Err(); err != nil {
			result.err = ErrInterrupted
			w.resultQueue <- result
			continue
		}

		start := time.Now()
		w.sampler.Reseed(task.frame.options.Seed + int64(task.taskID))
		result.rays = renderRows(task.frame, w.sampler, task.y0, task.y1)
		result.elapsed = time.Since(start)

		w.resultQueue <- result
	}
}
