package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ProcessFunc turns one queued article task into a Result. Implementations
// typically read the task's files through a text extractor and call
// Process; the pool itself performs no I/O.
type ProcessFunc func(task ArticleTask) (Result, error)

// WorkerPool fans article tasks out to parallel workers. Articles are
// independent, so there is no shared state beyond the channels; a failed
// article surfaces as a failed task result and never aborts the batch.
type WorkerPool struct {
	ctx            context.Context
	tasks          chan ArticleTask
	results        chan ArticleTaskResult
	progressChan   chan ProgressUpdate
	cancel         context.CancelFunc
	process        ProcessFunc
	wg             sync.WaitGroup
	numWorkers     int
	totalTasks     int
	completedTasks int
	mu             sync.RWMutex
}

// ArticleTask names one article and the files its texts come from. Either
// path may be empty when only one rendering exists.
type ArticleTask struct {
	ID      string
	PDFPath string
	XMLPath string
	Options Options
}

// ArticleTaskResult is the outcome of one task.
type ArticleTaskResult struct {
	Err    error
	Result Result
	Task   ArticleTask
}

// ProgressUpdate provides progress information.
type ProgressUpdate struct {
	TaskID      string
	Status      TaskStatus
	Message     string
	Completed   int
	Total       int
	ElapsedTime time.Duration
}

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// NewWorkerPool creates a pool with the given number of workers running
// the given process function.
func NewWorkerPool(numWorkers int, process ProcessFunc) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 4
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		numWorkers:   numWorkers,
		process:      process,
		tasks:        make(chan ArticleTask, numWorkers*2),
		results:      make(chan ArticleTaskResult, numWorkers*2),
		progressChan: make(chan ProgressUpdate, 100),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start launches the workers.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

func (wp *WorkerPool) worker(workerID int) {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return
		case task, ok := <-wp.tasks:
			if !ok {
				return
			}

			wp.processTask(workerID, task)
		}
	}
}

func (wp *WorkerPool) processTask(workerID int, task ArticleTask) {
	start := time.Now()

	wp.sendProgress(ProgressUpdate{
		TaskID:  task.ID,
		Status:  TaskStatusProcessing,
		Message: fmt.Sprintf("Worker %d started processing", workerID),
	})

	result, err := wp.runProcess(task)
	elapsed := time.Since(start)

	wp.mu.Lock()
	wp.completedTasks++
	completed := wp.completedTasks
	total := wp.totalTasks
	wp.mu.Unlock()

	status := TaskStatusCompleted
	message := fmt.Sprintf("Worker %d completed in %v", workerID, elapsed)

	if err != nil {
		status = TaskStatusFailed
		message = fmt.Sprintf("Worker %d failed: %v", workerID, err)
	}

	wp.sendProgress(ProgressUpdate{
		TaskID:      task.ID,
		Status:      status,
		Completed:   completed,
		Total:       total,
		ElapsedTime: elapsed,
		Message:     message,
	})

	wp.results <- ArticleTaskResult{
		Task:   task,
		Result: result,
		Err:    err,
	}
}

// runProcess isolates worker panics into per-task errors so one bad
// article cannot take down the batch.
func (wp *WorkerPool) runProcess(task ArticleTask) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{ArticleID: task.ID, Records: []OutputRecord{}}
			err = fmt.Errorf("article %s: panic during processing: %v", task.ID, r)
		}
	}()

	return wp.process(task)
}

// sendProgress sends a progress update if the channel is not full.
func (wp *WorkerPool) sendProgress(update ProgressUpdate) {
	select {
	case wp.progressChan <- update:
	default:
		// Channel full, skip rather than block a worker.
	}
}

// SubmitTask queues a task for processing.
func (wp *WorkerPool) SubmitTask(task ArticleTask) {
	wp.mu.Lock()
	wp.totalTasks++
	wp.mu.Unlock()

	wp.sendProgress(ProgressUpdate{
		TaskID:  task.ID,
		Status:  TaskStatusPending,
		Message: "Task queued for processing",
	})

	select {
	case wp.tasks <- task:
	case <-wp.ctx.Done():
	}
}

// Results returns the results channel.
func (wp *WorkerPool) Results() <-chan ArticleTaskResult {
	return wp.results
}

// Progress returns the progress channel.
func (wp *WorkerPool) Progress() <-chan ProgressUpdate {
	return wp.progressChan
}

// Wait waits for all submitted tasks to complete and closes the pool.
func (wp *WorkerPool) Wait() {
	close(wp.tasks)
	wp.wg.Wait()
	close(wp.results)
	close(wp.progressChan)
}

// Shutdown cancels outstanding work and waits for cleanup.
func (wp *WorkerPool) Shutdown() {
	wp.cancel()
	wp.Wait()
}

// Stats returns current processing counts.
func (wp *WorkerPool) Stats() (completed, total int) {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	return wp.completedTasks, wp.totalTasks
}

// ProgressTracker aggregates progress updates for batch reporting.
type ProgressTracker struct {
	startTime    time.Time
	taskStatuses map[string]TaskStatus
	mu           sync.RWMutex
}

// NewProgressTracker creates a new progress tracker.
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{
		startTime:    time.Now(),
		taskStatuses: make(map[string]TaskStatus),
	}
}

// Update records a progress update.
func (pt *ProgressTracker) Update(update ProgressUpdate) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	pt.taskStatuses[update.TaskID] = update.Status
}

// Summary returns the current status counts and elapsed time.
func (pt *ProgressTracker) Summary() (counts map[TaskStatus]int, total int, elapsed time.Duration) {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	counts = make(map[TaskStatus]int)
	for _, status := range pt.taskStatuses {
		counts[status]++
	}

	return counts, len(pt.taskStatuses), time.Since(pt.startTime)
}

// PrintProgress writes a one-line progress report to stdout, overwriting
// the previous one.
func (pt *ProgressTracker) PrintProgress() {
	counts, total, elapsed := pt.Summary()

	completed := counts[TaskStatusCompleted]
	failed := counts[TaskStatusFailed]

	fmt.Printf("\rProgress: %d/%d articles", completed, total)

	if failed > 0 {
		fmt.Printf(" (%d failed)", failed)
	}

	if total > 0 {
		fmt.Printf(" [%.1f%%]", float64(completed)/float64(total)*100)
	}

	fmt.Printf(" [%v elapsed]", elapsed.Round(time.Second))
}
