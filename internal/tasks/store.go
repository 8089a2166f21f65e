// Package tasks owns the in-memory task sequence shared by the interactive
// host and the notification scheduler.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sandeepkv93/lins/internal/model"
	"github.com/sandeepkv93/lins/internal/storage"
)

// Store is a mutex-guarded ordered task sequence. Every read returns a copy.
type Store struct {
	mu    sync.RWMutex
	tasks []model.Task
	repo  storage.TaskRepository
	now   func() time.Time
}

func NewStore(repo storage.TaskRepository) *Store {
	return &Store{
		tasks: make([]model.Task, 0),
		repo:  repo,
		now:   time.Now,
	}
}

// WithClock replaces the wall clock used for created stamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Store) Add(description, due string) (model.Task, error) {
	task, err := model.NewTask(description, due, s.now())
	if err != nil {
		return model.Task{}, err
	}
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()
	return task, nil
}

// Complete marks the task at index done. Completing twice is a no-op.
func (s *Store) Complete(index int) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return model.Task{}, err
	}
	s.tasks[index].Completed = true
	return s.tasks[index], nil
}

func (s *Store) Delete(index int) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return model.Task{}, err
	}
	removed := s.tasks[index]
	s.tasks = append(s.tasks[:index:index], s.tasks[index+1:]...)
	return removed, nil
}

func (s *Store) Get(index int) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkIndex(index); err != nil {
		return model.Task{}, err
	}
	return s.tasks[index], nil
}

// List returns a snapshot of the sequence.
func (s *Store) List() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Pending counts incomplete tasks.
func (s *Store) Pending() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Load replaces the sequence from the repository. Missing storage yields an
// empty sequence. Corrupt or unreadable storage also yields an empty sequence
// and a *model.PersistenceError the caller reports as a warning.
func (s *Store) Load(ctx context.Context) error {
	loaded, err := s.repo.LoadTasks(ctx)
	if err != nil {
		s.mu.Lock()
		s.tasks = make([]model.Task, 0)
		s.mu.Unlock()
		return &model.PersistenceError{Op: "load tasks", Path: s.repo.Location(), Err: err}
	}
	if loaded == nil {
		loaded = make([]model.Task, 0)
	}
	s.mu.Lock()
	s.tasks = loaded
	s.mu.Unlock()
	return nil
}

// Save writes a snapshot. On failure the in-memory sequence stays authoritative.
func (s *Store) Save(ctx context.Context) error {
	snapshot := s.List()
	if err := s.repo.SaveTasks(ctx, snapshot); err != nil {
		return &model.PersistenceError{Op: "save tasks", Path: s.repo.Location(), Err: err}
	}
	return nil
}

// Invalid validates every row and returns one error per bad row, numbered
// from 1. Rows stay in the sequence; the scheduler skips the ones it cannot
// evaluate.
func (s *Store) Invalid() []error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []error
	for i, t := range s.tasks {
		if err := t.Validate(); err != nil {
			out = append(out, fmt.Errorf("task %d: %w", i+1, err))
		}
	}
	return out
}

// IsCorrupt reports whether a Load error came from undecodable data rather
// than an I/O failure.
func IsCorrupt(err error) bool {
	return errors.Is(err, storage.ErrCorrupt)
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.tasks) {
		return &model.IndexError{Index: index, Len: len(s.tasks)}
	}
	return nil
}
