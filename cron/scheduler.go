package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	cronlib "github.com/robfig/cron/v3"

	"github.com/xraph/conveyor"
)

// EnqueueFunc is the callback the scheduler uses to submit tasks.
// Typically it wraps Queue.Push; a function value keeps the scheduler
// decoupled from the queue's chaining API.
type EnqueueFunc func(t conveyor.Task)

// cronParser supports standard 5-field cron and descriptors like "@every 30s".
var cronParser = cronlib.NewParser(
	cronlib.Minute | cronlib.Hour | cronlib.Dom | cronlib.Month | cronlib.Dow | cronlib.Descriptor,
)

// ParseSpec parses a cron expression and returns the schedule.
// Exported so callers can validate specs before registering entries.
func ParseSpec(expr string) (cronlib.Schedule, error) {
	return cronParser.Parse(expr)
}

// Scheduler submits tasks to a conveyor queue on cron schedules.
// Entries are keyed by name; each fire enqueues the entry's task.
type Scheduler struct {
	enqueue EnqueueFunc
	logger  *slog.Logger
	runner  *cronlib.Cron

	mu      sync.Mutex
	entries map[string]cronlib.EntryID
}

// NewScheduler creates a Scheduler that submits fired tasks through
// enqueue.
func NewScheduler(enqueue EnqueueFunc, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		enqueue: enqueue,
		logger:  logger,
		runner:  cronlib.New(cronlib.WithParser(cronParser)),
		entries: make(map[string]cronlib.EntryID),
	}
}

// Add registers a named entry that enqueues t each time spec fires.
// Entries may be added before or after Start.
func (s *Scheduler) Add(name, spec string, t conveyor.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[name]; ok {
		return fmt.Errorf("%w: %q", conveyor.ErrDuplicateEntry, name)
	}

	id, err := s.runner.AddFunc(spec, func() {
		s.logger.Debug("cron entry fired", slog.String("entry", name))
		s.enqueue(t)
	})
	if err != nil {
		return fmt.Errorf("%w: %q: %v", conveyor.ErrInvalidSpec, spec, err)
	}

	s.entries[name] = id
	return nil
}

// Remove deletes a named entry. Pending queue tasks it already
// submitted are unaffected.
func (s *Scheduler) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("%w: %q", conveyor.ErrEntryNotFound, name)
	}
	s.runner.Remove(id)
	delete(s.entries, name)
	return nil
}

// Len returns the number of registered entries.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Start launches the scheduler goroutine. It returns immediately.
func (s *Scheduler) Start(_ context.Context) error {
	s.runner.Start()
	s.logger.Info("cron scheduler started", slog.Int("entries", s.Len()))
	return nil
}

// Stop stops firing entries and waits for in-flight enqueue callbacks
// to finish, or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	stopped := s.runner.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	s.logger.Info("cron scheduler stopped")
	return nil
}
