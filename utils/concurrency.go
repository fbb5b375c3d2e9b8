package utils

import "sync"

// WorkerPool bounds the number of goroutines running CPU-bound jobs.
type WorkerPool struct {
	semaphore chan struct{}
	wg        sync.WaitGroup
}

// NewWorkerPool creates a WorkerPool with the given concurrency. A value
// below 1 is treated as 1.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		semaphore: make(chan struct{}, maxWorkers),
	}
}

// Submit enqueues a job for execution in the pool.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()
		job()
	}()
}

// Wait blocks until all submitted jobs have completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// LinkSet is a thread-safe set for tracking listing links already seen.
type LinkSet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewLinkSet creates an empty LinkSet.
func NewLinkSet() *LinkSet {
	return &LinkSet{seen: make(map[string]struct{})}
}

// Add returns true if the link was newly added, false if already present.
func (s *LinkSet) Add(link string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[link]; exists {
		return false
	}
	s.seen[link] = struct{}{}
	return true
}

// Contains returns true if the link has already been seen.
func (s *LinkSet) Contains(link string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[link]
	return exists
}

// Size returns the number of unique links tracked.
func (s *LinkSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
