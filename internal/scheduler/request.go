package scheduler

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/lins/internal/model"
)

type Reason string

const (
	ReasonDeadline Reason = "deadline"
	ReasonPeriodic Reason = "periodic"
)

// Request is an ephemeral notification produced by a tick.
type Request struct {
	ID     string
	Title  string
	Body   string
	Reason Reason
	// Sound is set when the cue should accompany the alert.
	Sound bool
	At    time.Time
}

const descriptionPreview = 30

func deadlineRequest(task model.Task, now time.Time, sound bool) Request {
	return Request{
		ID:     uuid.NewString(),
		Title:  "Deadline approaching!",
		Body:   fmt.Sprintf("Task is due soon:\n%s", model.Truncate(task.Description, descriptionPreview)),
		Reason: ReasonDeadline,
		Sound:  sound,
		At:     now,
	}
}

func periodicRequest(interval int, now time.Time, sound bool) Request {
	return Request{
		ID:     uuid.NewString(),
		Title:  "Reminder",
		Body:   fmt.Sprintf("%d minutes have passed.", interval),
		Reason: ReasonPeriodic,
		Sound:  sound,
		At:     now,
	}
}
