// Package parallel provides a bounded worker pool used to spread independent
// read-only computations (layer-pair comparisons, per-layer summaries) across
// goroutines. The analyses never mutate shared state, so no coordination
// beyond completion tracking is needed.
package parallel

import (
	"fmt"
	"runtime"
	"sync"
)

// WorkerPool manages a pool of worker goroutines
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	taskWG    sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // Protects taskQueue from concurrent close during send
	closed    bool         // Protected by mu
}

// NewWorkerPool creates a new worker pool with the specified number of
// workers. A non-positive count defaults to GOMAXPROCS.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
	}
	pool.start()
	return pool
}

// start initializes the worker goroutines
func (wp *WorkerPool) start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// worker processes tasks from the queue
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		// Recover from panics in tasks to prevent worker crash
		func() {
			defer func() {
				if r := recover(); r != nil {
					fmt.Printf("Worker panic recovered: %v\n", r)
				}
				wp.taskWG.Done()
			}()
			task()
		}()
	}
}

// Submit adds a task to the worker pool.
// Returns false if the pool is closed, true if the task was submitted.
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return false
	}

	wp.taskWG.Add(1)
	wp.taskQueue <- task
	return true
}

// Wait blocks until all submitted tasks have completed
func (wp *WorkerPool) Wait() {
	wp.taskWG.Wait()
}

// Close shuts down the worker pool after draining pending tasks
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// ForEach runs fn(i) for i in [0, count) on a temporary pool and waits for
// completion.
func ForEach(workers, count int, fn func(i int)) {
	if count <= 0 {
		return
	}
	pool := NewWorkerPool(workers)
	for i := 0; i < count; i++ {
		i := i
		pool.Submit(func() { fn(i) })
	}
	pool.Wait()
	pool.Close()
}
