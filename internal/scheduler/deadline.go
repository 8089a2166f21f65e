package scheduler

import (
	"time"

	"github.com/sandeepkv93/lins/internal/model"
)

// DefaultHorizon is how far ahead a due time counts as "due soon".
const DefaultHorizon = 5 * time.Minute

// ShouldAlert reports whether task needs a deadline alert at now: it must be
// incomplete and due strictly after now but no later than now+horizon.
// It keeps no memory of earlier alerts.
func ShouldAlert(task model.Task, now time.Time, horizon time.Duration) (bool, error) {
	if task.Completed {
		return false, nil
	}
	due, err := task.DueAt()
	if err != nil {
		return false, err
	}
	return withinHorizon(due, now, horizon), nil
}

func withinHorizon(due, now time.Time, horizon time.Duration) bool {
	left := due.Sub(now)
	return left > 0 && left <= horizon
}
