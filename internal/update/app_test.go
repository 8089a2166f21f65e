package update

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lins/internal/autostart"
	"github.com/sandeepkv93/lins/internal/model"
	"github.com/sandeepkv93/lins/internal/notify/notifytest"
	"github.com/sandeepkv93/lins/internal/presence"
	"github.com/sandeepkv93/lins/internal/scheduler"
	"github.com/sandeepkv93/lins/internal/settings"
	"github.com/sandeepkv93/lins/internal/storage"
	"github.com/sandeepkv93/lins/internal/tasks"
)

var fixedNow = time.Date(2026, 2, 9, 11, 0, 0, 0, time.Local)

type harness struct {
	model     Model
	tasks     *tasks.Store
	settings  *settings.Store
	registrar *autostart.Memory
	desktop   *notifytest.Recorder
	cue       *notifytest.Recorder
	dir       string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	store := tasks.NewStore(storage.NewFileRepository(filepath.Join(dir, "tasks.json"))).
		WithClock(func() time.Time { return fixedNow })
	registrar := &autostart.Memory{}
	prefs := settings.NewStore(filepath.Join(dir, "settings.json"), registrar)
	desktop := &notifytest.Recorder{}
	cue := &notifytest.Recorder{}
	m := NewModel(Deps{
		Tasks:    store,
		Settings: prefs,
		Presence: presence.New(),
		Desktop:  desktop,
		Cue:      cue,
		Now:      func() time.Time { return fixedNow },
	})
	return &harness{model: m, tasks: store, settings: prefs, registrar: registrar, desktop: desktop, cue: cue, dir: dir}
}

func (h *harness) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	return cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

// runCmd executes cmd and any batched children, skipping timers.
func runCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(c)
		}
	}
}

func (h *harness) addTask(t *testing.T, description, due string) tea.Cmd {
	t.Helper()
	h.send(t, keyRunes("a"))
	h.send(t, keyRunes(description))
	h.send(t, keyEnter())
	if h.model.Mode != ModeAddDue {
		t.Fatalf("expected due step, got %s (status %q)", h.model.Mode, h.model.Status.Text)
	}
	h.model.addInput.SetValue("")
	h.send(t, keyRunes(due))
	return h.send(t, keyEnter())
}

func TestNewModelDefaults(t *testing.T) {
	h := newHarness(t)
	if h.model.Mode != ModeBrowse {
		t.Fatalf("expected browse mode, got %s", h.model.Mode)
	}
	if h.model.Keys.Quit != "q" || h.model.Keys.Add != "a" {
		t.Fatalf("unexpected keys: %+v", h.model.Keys)
	}
	if h.model.Init() != nil {
		t.Fatal("expected no init command without a request channel")
	}
}

func TestAddTaskFlow(t *testing.T) {
	h := newHarness(t)
	cmd := h.addTask(t, "Pay rent", "09.02.2026 12:00")

	if h.model.Mode != ModeBrowse {
		t.Fatalf("expected browse mode after add, got %s", h.model.Mode)
	}
	list := h.tasks.List()
	if len(list) != 1 || list[0].Description != "Pay rent" || list[0].Due != "09.02.2026 12:00" {
		t.Fatalf("unexpected tasks: %+v", list)
	}
	if list[0].Created != "09.02.2026 11:00" {
		t.Fatalf("unexpected created stamp: %q", list[0].Created)
	}
	if h.model.Toast == nil || h.model.Toast.Title != "Task added" || h.model.Toast.Body != "You added: Pay rent" {
		t.Fatalf("unexpected toast: %+v", h.model.Toast)
	}
	if cmd == nil {
		t.Fatal("expected toast dismissal command")
	}

	reloaded := tasks.NewStore(storage.NewFileRepository(filepath.Join(h.dir, "tasks.json")))
	if err := reloaded.Load(context.Background()); err != nil || reloaded.Len() != 1 {
		t.Fatalf("expected persisted task, len=%d err=%v", reloaded.Len(), err)
	}
}

func TestAddTaskPrefillsDue(t *testing.T) {
	h := newHarness(t)
	h.send(t, keyRunes("a"))
	h.send(t, keyRunes("Standup"))
	h.send(t, keyEnter())
	if got := h.model.addInput.Value(); got != "09.02.2026 12:00" {
		t.Fatalf("expected due prefilled one hour ahead, got %q", got)
	}
}

func TestAddTaskRejectsEmptyDescription(t *testing.T) {
	h := newHarness(t)
	h.send(t, keyRunes("a"))
	h.send(t, keyRunes("   "))
	h.send(t, keyEnter())
	if h.model.Mode != ModeAddDescription || !h.model.Status.IsError {
		t.Fatalf("expected to stay on description with an error, got %s %+v", h.model.Mode, h.model.Status)
	}
}

func TestAddTaskInvalidDueKeepsForm(t *testing.T) {
	h := newHarness(t)
	h.addTask(t, "Pay rent", "31.02.2026 10:00")
	if h.model.Mode != ModeAddDue {
		t.Fatalf("expected to stay on due step, got %s", h.model.Mode)
	}
	if !errors.Is(h.model.LastError, model.ErrValidation) {
		t.Fatalf("expected validation error, got %v", h.model.LastError)
	}
	if h.tasks.Len() != 0 {
		t.Fatal("invalid task must not be stored")
	}

	h.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	if h.model.Mode != ModeBrowse || h.model.pendingDescription != "" {
		t.Fatalf("expected cancelled form, got %s", h.model.Mode)
	}
}

func TestCompleteAndDeleteSelected(t *testing.T) {
	h := newHarness(t)
	for _, d := range []string{"one", "two", "three"} {
		if _, err := h.tasks.Add(d, "10.02.2026 09:00"); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	h.send(t, keyRunes("j"))
	h.send(t, keyEnter())
	if got, _ := h.tasks.Get(1); !got.Completed {
		t.Fatal("expected second task completed")
	}
	if h.model.Toast == nil || h.model.Toast.Title != "Task completed" || h.model.Toast.Body != "two" {
		t.Fatalf("unexpected toast: %+v", h.model.Toast)
	}

	h.send(t, keyRunes("j"))
	h.send(t, keyRunes("j"))
	if h.model.Cursor != 2 {
		t.Fatalf("cursor must clamp at the last task, got %d", h.model.Cursor)
	}
	h.send(t, keyRunes("x"))
	if h.tasks.Len() != 2 || h.model.Cursor != 1 {
		t.Fatalf("expected delete and clamp, len=%d cursor=%d", h.tasks.Len(), h.model.Cursor)
	}
	if h.model.Toast.Title != "Task deleted" || h.model.Toast.Body != "three" {
		t.Fatalf("unexpected toast: %+v", h.model.Toast)
	}
}

func TestEmptyListIgnoresCompleteAndDelete(t *testing.T) {
	h := newHarness(t)
	h.send(t, keyEnter())
	h.send(t, keyRunes("x"))
	if h.model.Status.IsError {
		t.Fatalf("unexpected error on empty list: %+v", h.model.Status)
	}
}

func TestNoticesSuppressedWhenNotificationsOff(t *testing.T) {
	h := newHarness(t)
	h.send(t, keyRunes("n"))
	if h.settings.Current().NotificationsEnabled {
		t.Fatal("expected notifications off")
	}
	cmd := h.addTask(t, "Quiet task", "10.02.2026 09:00")
	if h.model.Toast != nil || cmd != nil {
		t.Fatalf("expected no notice, toast=%+v", h.model.Toast)
	}
	if h.tasks.Len() != 1 {
		t.Fatal("task must still be added")
	}
}

func TestNoticeTruncatesLongDescription(t *testing.T) {
	h := newHarness(t)
	long := strings.Repeat("я", 40)
	h.addTask(t, long, "10.02.2026 09:00")
	want := "You added: " + strings.Repeat("я", 30) + "..."
	if h.model.Toast == nil || h.model.Toast.Body != want {
		t.Fatalf("unexpected toast body: %+v", h.model.Toast)
	}
}

func TestSettingsToggles(t *testing.T) {
	h := newHarness(t)
	h.send(t, keyRunes("s"))
	if h.settings.Current().SoundEnabled {
		t.Fatal("expected sound off")
	}
	h.send(t, keyRunes("i"))
	if got := h.settings.Current().RepeatInterval; got != 60 {
		t.Fatalf("expected interval 60 after 30, got %d", got)
	}
	if h.model.Status.Text != "periodic reminder every 60 minutes" {
		t.Fatalf("unexpected status: %q", h.model.Status.Text)
	}
}

func TestRequestShowsToastWhenVisible(t *testing.T) {
	h := newHarness(t)
	cmd := h.send(t, RequestMsg{Request: scheduler.Request{Title: "Deadline approaching!", Body: "Task is due soon:\nPay rent", Sound: true}})
	if h.model.Toast == nil || h.model.Toast.Title != "Deadline approaching!" {
		t.Fatalf("expected toast, got %+v", h.model.Toast)
	}
	if cmd == nil {
		t.Fatal("expected toast dismissal command")
	}
	if h.cue.Cues() != 1 {
		t.Fatalf("expected one cue, got %d", h.cue.Cues())
	}
	if len(h.desktop.Presented()) != 0 {
		t.Fatal("desktop notifier must not be used while visible")
	}
	if !strings.Contains(h.model.View(), "Deadline approaching!") {
		t.Fatal("expected toast in view")
	}
}

func TestRequestUsesDesktopInTray(t *testing.T) {
	h := newHarness(t)
	h.send(t, keyRunes("m"))
	if h.model.presence.State() != presence.TrayOnly {
		t.Fatal("expected tray state")
	}
	cmd := h.send(t, RequestMsg{Request: scheduler.Request{Title: "Reminder", Body: "30 minutes have passed."}})
	runCmd(cmd)

	got := h.desktop.Presented()
	if len(got) != 1 || got[0].Body != "30 minutes have passed." {
		t.Fatalf("expected desktop notification, got %+v", got)
	}
	if h.model.Toast != nil {
		t.Fatal("no toast while in tray")
	}
	if h.cue.Cues() != 0 {
		t.Fatal("silent request must not play a cue")
	}
}

func TestToastDismissal(t *testing.T) {
	h := newHarness(t)
	h.send(t, RequestMsg{Request: scheduler.Request{Title: "first"}})
	stale := h.model.Toast.seq
	h.send(t, RequestMsg{Request: scheduler.Request{Title: "second"}})

	h.send(t, dismissToastMsg{seq: stale})
	if h.model.Toast == nil || h.model.Toast.Title != "second" {
		t.Fatalf("stale dismissal must keep the newer toast, got %+v", h.model.Toast)
	}
	h.send(t, dismissToastMsg{seq: h.model.Toast.seq})
	if h.model.Toast != nil {
		t.Fatal("expected toast dismissed")
	}
}

func TestMinimizePersistsSettingsAndRestores(t *testing.T) {
	h := newHarness(t)
	h.send(t, keyRunes("s"))
	h.send(t, keyRunes("m"))

	raw, err := os.ReadFile(filepath.Join(h.dir, "settings.json"))
	if err != nil {
		t.Fatalf("expected settings written on minimize: %v", err)
	}
	if !strings.Contains(string(raw), `"sound_enabled": false`) {
		t.Fatalf("unexpected settings document: %s", raw)
	}
	if view := h.model.View(); !strings.Contains(view, "lins (tray)") {
		t.Fatalf("expected tray view, got %s", view)
	}

	h.send(t, keyRunes("a"))
	if h.model.Mode != ModeBrowse {
		t.Fatal("tray must ignore task keys")
	}
	h.send(t, keyRunes("r"))
	if h.model.presence.State() != presence.Visible {
		t.Fatal("expected restore")
	}
	h.send(t, keyRunes("m"))
	h.send(t, keyEnter())
	if h.model.presence.State() != presence.Visible {
		t.Fatal("expected tray activation to restore")
	}
}

func TestPaletteCommands(t *testing.T) {
	h := newHarness(t)
	run := func(line string) {
		h.send(t, keyRunes("/"))
		if h.model.Mode != ModePalette {
			t.Fatalf("expected palette mode, got %s", h.model.Mode)
		}
		h.send(t, keyRunes(line))
		h.send(t, keyEnter())
		if h.model.Mode != ModeBrowse {
			t.Fatalf("palette must close after %q", line)
		}
	}

	run("add 10.02.2026 09:30 Write report")
	if h.tasks.Len() != 1 || h.model.Status.Text != "added task 1" {
		t.Fatalf("unexpected add result: len=%d status=%+v", h.tasks.Len(), h.model.Status)
	}

	run("done 1")
	if got, _ := h.tasks.Get(0); !got.Completed {
		t.Fatal("expected completed")
	}

	run("interval 0")
	if h.settings.Current().RepeatInterval != 0 || h.model.Status.Text != "periodic reminder off" {
		t.Fatalf("unexpected interval result: %+v", h.model.Status)
	}

	run("sound off")
	run("notify off")
	cur := h.settings.Current()
	if cur.SoundEnabled || cur.NotificationsEnabled {
		t.Fatalf("unexpected toggles: %+v", cur)
	}

	run("autostart on")
	if on, _ := h.registrar.IsEnabled(); !on || !h.settings.Current().AutostartEnabled {
		t.Fatal("expected autostart registered")
	}

	run("delete 3")
	if !h.model.Status.IsError || !errors.Is(h.model.LastError, model.ErrIndex) {
		t.Fatalf("expected index error, got %+v", h.model.Status)
	}

	run("delete 1")
	if h.tasks.Len() != 0 {
		t.Fatal("expected task deleted")
	}

	run("frobnicate")
	if !h.model.Status.IsError {
		t.Fatal("expected unknown command error")
	}
}

func TestPaletteEscCloses(t *testing.T) {
	h := newHarness(t)
	h.send(t, keyRunes("/"))
	h.send(t, keyRunes("add"))
	h.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	if h.model.Mode != ModeBrowse || h.model.commandInput.Value() != "" {
		t.Fatal("expected palette closed and cleared")
	}
}

func TestQuitSavesAndStopsScheduler(t *testing.T) {
	h := newHarness(t)
	engine := scheduler.NewEngine(h.tasks, h.settings, scheduler.Options{Period: 10 * time.Millisecond})
	m := NewModel(Deps{Tasks: h.tasks, Settings: h.settings, Engine: engine, Now: func() time.Time { return fixedNow }})
	if m.Init() == nil {
		t.Fatal("expected request wait command")
	}
	engine.Start()
	if _, err := h.tasks.Add("Keep me", "10.02.2026 09:00"); err != nil {
		t.Fatalf("add: %v", err)
	}

	updated, cmd := m.Update(keyRunes("q"))
	next := updated.(Model)
	if !next.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if engine.State() != scheduler.StateStopped {
		t.Fatalf("expected scheduler stopped, got %s", engine.State())
	}
	for _, name := range []string{"tasks.json", "settings.json"} {
		if _, err := os.Stat(filepath.Join(h.dir, name)); err != nil {
			t.Fatalf("expected %s saved: %v", name, err)
		}
	}
}

func TestViewMarksOverdue(t *testing.T) {
	h := newHarness(t)
	if _, err := h.tasks.Add("Late one", "08.02.2026 09:00"); err != nil {
		t.Fatalf("add: %v", err)
	}
	view := h.model.View()
	if !strings.Contains(view, "Late one") || !strings.Contains(view, "(overdue)") {
		t.Fatalf("expected overdue marker in view:\n%s", view)
	}
}

func TestHelpToggle(t *testing.T) {
	h := newHarness(t)
	h.send(t, keyRunes("?"))
	if !h.model.HelpVisible || h.model.helpMarkdown == "" {
		t.Fatal("expected help shown")
	}
	if !strings.Contains(h.model.View(), "toggle notifications") {
		t.Fatal("expected bindings in help")
	}
	h.send(t, keyRunes("?"))
	if h.model.HelpVisible {
		t.Fatal("expected help hidden")
	}
}

func TestStatusAndErrorMessages(t *testing.T) {
	h := newHarness(t)
	h.send(t, SetStatusMsg{Text: "ready"})
	if h.model.Status.Text != "ready" || h.model.Status.IsError {
		t.Fatalf("unexpected status: %+v", h.model.Status)
	}
	h.send(t, AppErrorMsg{Err: errors.New("boom")})
	if h.model.LastError == nil || !h.model.Status.IsError || h.model.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", h.model.Status)
	}
	h.send(t, ClearStatusMsg{})
	if h.model.Status.Text != "" {
		t.Fatal("expected cleared status")
	}
}
