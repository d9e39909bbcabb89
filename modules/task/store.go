package task

import (
	"fmt"
	"sync"
	"time"

	domain "github.com/example/task-tracker/domain/task"
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// Store provides in-memory task storage and id issuance.
// Tasks are kept in insertion order; ids start at 1 and are never reused.
type Store struct {
	mu     sync.RWMutex
	tasks  []domain.Task
	nextID int64
	now    func() time.Time
}

// NewStore creates an empty task store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		tasks:  make([]domain.Task, 0),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new task. Inputs are trusted to be validated by the caller.
func (s *Store) Create(in CreateInput) domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	t := domain.Task{
		ID:          s.nextID,
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	s.tasks = append(s.tasks, t)
	return t
}

// List returns a snapshot of all tasks, oldest-created first.
func (s *Store) List() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Task, len(s.tasks))
	copy(result, s.tasks)
	return result
}

// Get finds a task by id.
func (s *Store) Get(id int64) (domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	return s.tasks[i], nil
}

// Update applies the fields present in the input and refreshes updatedAt,
// even when no field is present.
func (s *Store) Update(id int64, in UpdateInput) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}

	t := &s.tasks[i]
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}

	// updatedAt never goes behind createdAt, even if the clock does.
	now := s.now()
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.UpdatedAt = now

	return *t, nil
}

// Delete removes a task by id and returns it.
func (s *Store) Delete(id int64) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}

	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return removed, nil
}

// Stats computes completion counts and the newest/oldest tasks by createdAt.
// On equal timestamps the earlier inserted task wins.
func (s *Store) Stats() domain.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.Stats{Total: len(s.tasks)}
	if stats.Total == 0 {
		return stats
	}

	mostRecent, oldest := s.tasks[0], s.tasks[0]
	for _, t := range s.tasks {
		if t.Completed {
			stats.Completed++
		}
		if t.CreatedAt.After(mostRecent.CreatedAt) {
			mostRecent = t
		}
		if t.CreatedAt.Before(oldest.CreatedAt) {
			oldest = t
		}
	}
	stats.Pending = stats.Total - stats.Completed
	stats.MostRecent = &mostRecent
	stats.Oldest = &oldest
	return stats
}

// indexOf returns the slice index of the task with the given id, or -1.
// Callers must hold the lock.
func (s *Store) indexOf(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
