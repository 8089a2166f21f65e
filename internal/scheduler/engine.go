// Package scheduler runs the background poll loop that turns pending tasks
// and elapsed time into notification requests.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sandeepkv93/lins/internal/logging"
	"github.com/sandeepkv93/lins/internal/model"
	"github.com/sandeepkv93/lins/internal/settings"
)

const (
	DefaultPeriod    = 10 * time.Second
	DefaultBuffer    = 64
	defaultCacheSize = 256
)

type TaskSource interface {
	List() []model.Task
}

type SettingsSource interface {
	Current() settings.Settings
}

type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

type Options struct {
	Period  time.Duration
	Horizon time.Duration
	Buffer  int
	Now     func() time.Time
	Logger  logging.Logger
}

// Engine polls the task and settings sources on a fixed sleep between ticks.
// Requests are handed off on C; a full buffer drops rather than blocks.
type Engine struct {
	tasks   TaskSource
	prefs   SettingsSource
	period  time.Duration
	horizon time.Duration
	now     func() time.Time
	log     logging.Logger
	dues    *lru.Cache[string, parsedDue]

	mu           sync.Mutex
	state        State
	lastReminder time.Time

	out     chan Request
	stopCh  chan struct{}
	doneCh  chan struct{}
	dropped uint64
}

func NewEngine(tasks TaskSource, prefs SettingsSource, opts Options) *Engine {
	if opts.Period <= 0 {
		opts.Period = DefaultPeriod
	}
	if opts.Horizon <= 0 {
		opts.Horizon = DefaultHorizon
	}
	if opts.Buffer <= 0 {
		opts.Buffer = DefaultBuffer
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	dues, _ := lru.New[string, parsedDue](defaultCacheSize)
	return &Engine{
		tasks:        tasks,
		prefs:        prefs,
		period:       opts.Period,
		horizon:      opts.Horizon,
		now:          opts.Now,
		log:          opts.Logger.With("component", "scheduler"),
		dues:         dues,
		state:        StateIdle,
		lastReminder: opts.Now(),
		out:          make(chan Request, opts.Buffer),
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// C delivers requests. It is closed once the engine stops.
func (e *Engine) C() <-chan Request {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateIdle {
		return
	}
	e.state = StateRunning
	e.lastReminder = e.now()
	go e.loop()
	e.log.Infof(context.Background(), "scheduler started, period=%s horizon=%s", e.period, e.horizon)
}

// Stop signals the loop and waits for it to exit, at most one period.
func (e *Engine) Stop() {
	e.mu.Lock()
	switch e.state {
	case StateStopped:
		e.mu.Unlock()
		return
	case StateIdle:
		e.state = StateStopped
		close(e.out)
		e.mu.Unlock()
		return
	}
	e.state = StateStopped
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
	e.log.Infof(context.Background(), "scheduler stopped, dropped=%d", e.Dropped())
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) LastReminder() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastReminder
}

// Tick evaluates one poll at now and returns the requests it produced.
// The periodic timer advances even while notifications are off; only the
// requests are withheld.
func (e *Engine) Tick(now time.Time) []Request {
	prefs := e.prefs.Current()
	periodic := e.periodicDue(now, prefs.RepeatInterval)
	if !prefs.NotificationsEnabled {
		return nil
	}

	out := make([]Request, 0)
	for i, task := range e.tasks.List() {
		if task.Completed {
			continue
		}
		due, err := e.dueAt(i, task)
		if err != nil {
			continue
		}
		if withinHorizon(due, now, e.horizon) {
			out = append(out, deadlineRequest(task, now, prefs.SoundEnabled))
		}
	}

	if periodic {
		out = append(out, periodicRequest(prefs.RepeatInterval, now, prefs.SoundEnabled))
	}
	return out
}

// periodicDue reports whether the reminder interval has elapsed and, if so,
// restarts it at now.
func (e *Engine) periodicDue(now time.Time, minutes int) bool {
	if minutes <= 0 {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if now.Sub(e.lastReminder) < time.Duration(minutes)*time.Minute {
		return false
	}
	e.lastReminder = now
	return true
}

// parsedDue is the outcome of parsing one due stamp.
type parsedDue struct {
	at  time.Time
	err error
}

// dueAt parses each distinct due stamp once. The first failure for a stamp is
// logged as a warning; later ticks skip the row silently.
func (e *Engine) dueAt(index int, task model.Task) (time.Time, error) {
	if p, ok := e.dues.Get(task.Due); ok {
		return p.at, p.err
	}
	at, err := task.DueAt()
	if err != nil {
		evalErr := &model.EvaluationError{Index: index, Due: task.Due, Err: err}
		e.log.Warnf(context.Background(), "skip task: %v", evalErr)
		err = evalErr
	}
	e.dues.Add(task.Due, parsedDue{at: at, err: err})
	return at, err
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		e.emit(e.Tick(e.now()))

		timer = resetTimer(timer, e.period)
		select {
		case <-timer.C:
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) emit(reqs []Request) {
	for _, req := range reqs {
		select {
		case e.out <- req:
			e.log.Debugf(context.Background(), "request %s reason=%s", req.ID, req.Reason)
		default:
			atomic.AddUint64(&e.dropped, 1)
			e.log.Warnf(context.Background(), "request %s dropped, consumer is behind", req.ID)
		}
	}
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
