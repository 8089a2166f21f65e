// Package presence tracks whether the main surface is shown or the app lives
// only in the tray. It never decides whether an alert fires.
package presence

import "sync"

type State int

const (
	Visible State = iota
	TrayOnly
)

func (s State) String() string {
	if s == TrayOnly {
		return "tray"
	}
	return "visible"
}

type Event int

const (
	Minimize Event = iota
	Restore
	TrayActivate
)

func (e Event) String() string {
	switch e {
	case Minimize:
		return "minimize"
	case Restore:
		return "restore"
	case TrayActivate:
		return "tray_activate"
	default:
		return "unknown"
	}
}

// Listener observes real transitions only.
type Listener func(from, to State)

type Machine struct {
	mu        sync.Mutex
	state     State
	listeners []Listener
}

func New() *Machine {
	return &Machine{state: Visible}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// TrayIconVisible reports whether the tray icon should be shown.
func (m *Machine) TrayIconVisible() bool {
	return m.State() == TrayOnly
}

func (m *Machine) Subscribe(l Listener) {
	if l == nil {
		return
	}
	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	m.mu.Unlock()
}

// Fire applies e and returns the resulting state. Repeated events in the
// target state are no-ops.
func (m *Machine) Fire(e Event) State {
	m.mu.Lock()
	from := m.state
	to := from
	switch e {
	case Minimize:
		to = TrayOnly
	case Restore, TrayActivate:
		to = Visible
	}
	m.state = to
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	if from != to {
		for _, l := range listeners {
			l(from, to)
		}
	}
	return to
}
