package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/lins/internal/model"
)

// ErrCorrupt marks stored data that exists but cannot be decoded.
var ErrCorrupt = errors.New("storage: corrupt task data")

// TaskRepository persists the ordered task sequence as a whole.
// LoadTasks on missing storage returns an empty sequence and no error.
type TaskRepository interface {
	LoadTasks(ctx context.Context) ([]model.Task, error)
	SaveTasks(ctx context.Context, tasks []model.Task) error
	Location() string
}
