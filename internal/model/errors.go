package model

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("model: validation failed")
	ErrIndex       = errors.New("model: index out of range")
	ErrPersistence = errors.New("model: persistence failed")
	ErrEvaluation  = errors.New("model: evaluation failed")
)

// ValidationError rejects bad task input. It is never retried.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model: %s %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("model: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) Unwrap() error { return e.Err }

// IndexError reports a stale position into the task sequence.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("model: index %d out of range [0,%d)", e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndex }

// PersistenceError wraps a read or write failure on either store.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("model: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("model: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }

// EvaluationError marks a single task that could not be evaluated during a tick.
type EvaluationError struct {
	Index int
	Due   string
	Err   error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("model: evaluate task %d due %q: %v", e.Index, e.Due, e.Err)
}

func (e *EvaluationError) Is(target error) bool { return target == ErrEvaluation }

func (e *EvaluationError) Unwrap() error { return e.Err }
