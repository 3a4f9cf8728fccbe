// Package cron runs the periodic maintenance jobs (corpus scan, task
// pruning) on fixed intervals, one goroutine per job.
package cron

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Job is a named unit of periodic work. Fn must honor ctx cancellation.
type Job struct {
	Name        string
	Description string
	Interval    time.Duration
	Fn          func(ctx context.Context) error
}

// Snapshot is a point-in-time view of one registered job, served on the
// operator diagnostics surface.
type Snapshot struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Running     bool       `json:"running"`
	LastRunAt   *time.Time `json:"last_run_at,omitempty"`
	NextRunAt   time.Time  `json:"next_run_at"`
	LastError   string     `json:"last_error,omitempty"`
}

type jobState struct {
	Job

	mu        sync.Mutex
	running   bool
	lastRunAt *time.Time
	nextRunAt time.Time
	lastError string
}

// Scheduler owns the registered jobs and their run loops.
type Scheduler struct {
	mu   sync.RWMutex
	jobs map[string]*jobState
}

func New() *Scheduler {
	return &Scheduler{jobs: make(map[string]*jobState)}
}

// Register adds a job. Call before Start; late registrations are not picked
// up by running loops.
func (s *Scheduler) Register(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.Name] = &jobState{
		Job:       job,
		nextRunAt: time.Now().Add(job.Interval),
	}
}

// Start launches one run loop per registered job. Loops stop when ctx is
// cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, js := range s.jobs {
		go s.runLoop(ctx, js)
	}
}

func (s *Scheduler) runLoop(ctx context.Context, js *jobState) {
	for {
		js.mu.Lock()
		wait := time.Until(js.nextRunAt)
		js.mu.Unlock()
		if wait < 0 {
			wait = 0
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
			s.runOnce(ctx, js)
			js.mu.Lock()
			js.nextRunAt = time.Now().Add(js.Interval)
			js.mu.Unlock()
		}
	}
}

// runOnce executes the job unless a previous run is still in flight, in
// which case this tick is dropped rather than stacked.
func (s *Scheduler) runOnce(ctx context.Context, js *jobState) {
	js.mu.Lock()
	if js.running {
		js.mu.Unlock()
		return
	}
	js.running = true
	js.mu.Unlock()

	started := time.Now()
	err := js.Fn(ctx)

	js.mu.Lock()
	js.running = false
	js.lastRunAt = &started
	js.lastError = ""
	if err != nil {
		js.lastError = err.Error()
	}
	js.mu.Unlock()
}

// Trigger runs a job by name right now, off schedule. The regular interval
// is unaffected.
func (s *Scheduler) Trigger(ctx context.Context, name string) error {
	s.mu.RLock()
	js, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job %q not found", name)
	}
	go s.runOnce(ctx, js)
	return nil
}

// Snapshots reports all registered jobs, sorted by name.
func (s *Scheduler) Snapshots() []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Snapshot, 0, len(s.jobs))
	for _, js := range s.jobs {
		js.mu.Lock()
		out = append(out, Snapshot{
			Name:        js.Name,
			Description: js.Description,
			Running:     js.running,
			LastRunAt:   js.lastRunAt,
			NextRunAt:   js.nextRunAt,
			LastError:   js.lastError,
		})
		js.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
