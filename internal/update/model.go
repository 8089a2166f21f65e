// Package update is the interactive host: a bubbletea model over the task
// store, the settings store and the notification scheduler.
package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lins/internal/logging"
	"github.com/sandeepkv93/lins/internal/notify"
	"github.com/sandeepkv93/lins/internal/presence"
	"github.com/sandeepkv93/lins/internal/scheduler"
	"github.com/sandeepkv93/lins/internal/settings"
	"github.com/sandeepkv93/lins/internal/tasks"
)

const (
	toastLifetime = 3 * time.Second
	noticeWidth   = 30
)

type Mode string

const (
	ModeBrowse         Mode = "browse"
	ModeAddDescription Mode = "add_description"
	ModeAddDue         Mode = "add_due"
	ModePalette        Mode = "palette"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type Toast struct {
	Title string
	Body  string
	seq   int
}

type GlobalKeyMap struct {
	Add      string
	Complete string
	Delete   string
	Up       string
	Down     string
	Notify   string
	Sound    string
	Interval string
	Minimize string
	Restore  string
	Palette  string
	Help     string
	Quit     string
}

// Deps are the collaborators the host drives. Tasks and Settings are
// required; other nil fields fall back to no-op implementations.
type Deps struct {
	Tasks    *tasks.Store
	Settings *settings.Store
	Engine   *scheduler.Engine
	Requests <-chan scheduler.Request
	Presence *presence.Machine
	Desktop  notify.Presenter
	Cue      notify.Cue
	Log      logging.Logger
	Now      func() time.Time
}

type Model struct {
	Mode        Mode
	Cursor      int
	Status      StatusBar
	Toast       *Toast
	HelpVisible bool
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	tasks    *tasks.Store
	settings *settings.Store
	engine   *scheduler.Engine
	requests <-chan scheduler.Request
	presence *presence.Machine
	desktop  notify.Presenter
	cue      notify.Cue
	log      logging.Logger
	now      func() time.Time

	pendingDescription string
	toastSeq           int
	helpMarkdown       string

	addInput     textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
}

type RequestMsg struct {
	Request scheduler.Request
}

type dismissToastMsg struct {
	seq int
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(deps Deps) Model {
	if deps.Presence == nil {
		deps.Presence = presence.New()
	}
	if deps.Desktop == nil {
		deps.Desktop = notify.Noop{}
	}
	if deps.Cue == nil {
		deps.Cue = notify.Noop{}
	}
	if deps.Log == nil {
		deps.Log = logging.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Requests == nil && deps.Engine != nil {
		deps.Requests = deps.Engine.C()
	}

	m := Model{
		Mode: ModeBrowse,
		Keys: GlobalKeyMap{
			Add:      "a",
			Complete: "enter",
			Delete:   "x",
			Up:       "k",
			Down:     "j",
			Notify:   "n",
			Sound:    "s",
			Interval: "i",
			Minimize: "m",
			Restore:  "r",
			Palette:  "/",
			Help:     "?",
			Quit:     "q",
		},
		tasks:    deps.Tasks,
		settings: deps.Settings,
		engine:   deps.Engine,
		requests: deps.Requests,
		presence: deps.Presence,
		desktop:  deps.Desktop,
		cue:      deps.Cue,
		log:      deps.Log.With("component", "ui"),
		now:      deps.Now,
	}
	m.presence.Subscribe(m.persistOnTray)
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "> "
	m.addInput.CharLimit = 256
	m.addInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
}

// persistOnTray saves settings whenever the app moves to the tray.
func (m Model) persistOnTray(_, to presence.State) {
	if to != presence.TrayOnly {
		return
	}
	if err := m.settings.Persist(); err != nil {
		m.log.Warnf(context.Background(), "persist settings on minimize: %v", err)
	}
}

func waitForRequestCmd(ch <-chan scheduler.Request) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		req, ok := <-ch
		if !ok {
			return nil
		}
		return RequestMsg{Request: req}
	}
}
