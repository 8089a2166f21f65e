package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lins/internal/model"
	"github.com/sandeepkv93/lins/internal/presence"
	"github.com/sandeepkv93/lins/internal/settings"
)

func (m *Model) addTask(description, due string) (tea.Cmd, error) {
	task, err := m.tasks.Add(description, due)
	if err != nil {
		return nil, err
	}
	m.Cursor = m.tasks.Len() - 1
	m.saveTasks()
	m.log.Infof(context.Background(), "task added, due=%s", task.Due)
	return m.notice("Task added", "You added: "+model.Truncate(task.Description, noticeWidth)), nil
}

func (m *Model) completeTask(index int) (tea.Cmd, error) {
	task, err := m.tasks.Complete(index)
	if err != nil {
		return nil, err
	}
	m.saveTasks()
	return m.notice("Task completed", model.Truncate(task.Description, noticeWidth)), nil
}

func (m *Model) deleteTask(index int) (tea.Cmd, error) {
	task, err := m.tasks.Delete(index)
	if err != nil {
		return nil, err
	}
	m.clampCursor()
	m.saveTasks()
	return m.notice("Task deleted", model.Truncate(task.Description, noticeWidth)), nil
}

func (m *Model) saveTasks() {
	if err := m.tasks.Save(context.Background()); err != nil {
		m.log.Errorf(context.Background(), "save tasks: %v", err)
		m.setError(err)
	}
}

func (m *Model) clampCursor() {
	n := m.tasks.Len()
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m *Model) moveCursor(delta int) {
	m.Cursor += delta
	m.clampCursor()
}

func (m *Model) toggleNotifications() settings.Settings {
	return m.settings.Update(func(s *settings.Settings) { s.NotificationsEnabled = !s.NotificationsEnabled })
}

func (m *Model) toggleSound() settings.Settings {
	return m.settings.Update(func(s *settings.Settings) { s.SoundEnabled = !s.SoundEnabled })
}

func (m *Model) cycleInterval() settings.Settings {
	return m.settings.Update(func(s *settings.Settings) { s.RepeatInterval = settings.NextRepeatChoice(s.RepeatInterval) })
}

// notice shows an action confirmation when notifications are enabled.
func (m *Model) notice(title, body string) tea.Cmd {
	if !m.settings.Current().NotificationsEnabled {
		return nil
	}
	return m.present(title, body)
}

// present routes to an in-app toast while visible and to the desktop
// notifier while in the tray.
func (m *Model) present(title, body string) tea.Cmd {
	if m.presence.State() == presence.TrayOnly {
		desktop := m.desktop
		return func() tea.Msg {
			desktop.Present(title, body)
			return nil
		}
	}
	m.toastSeq++
	m.Toast = &Toast{Title: title, Body: body, seq: m.toastSeq}
	seq := m.toastSeq
	return tea.Tick(toastLifetime, func(time.Time) tea.Msg { return dismissToastMsg{seq: seq} })
}

func (m *Model) setError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}

// shutdown persists everything and stops the scheduler.
func (m *Model) shutdown() {
	ctx := context.Background()
	if err := m.settings.Persist(); err != nil {
		m.log.Errorf(ctx, "save settings on quit: %v", err)
	}
	if err := m.tasks.Save(ctx); err != nil {
		m.log.Errorf(ctx, "save tasks on quit: %v", err)
	}
	if m.engine != nil {
		m.engine.Stop()
	}
	m.Quitting = true
}

func onOffWord(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func intervalWord(minutes int) string {
	if minutes <= 0 {
		return "off"
	}
	return fmt.Sprintf("every %d minutes", minutes)
}

func (m *Model) resetAddForm() {
	m.pendingDescription = ""
	m.addInput.SetValue("")
	m.addInput.Blur()
	m.Mode = ModeBrowse
}

func (m *Model) defaultDue() string {
	return model.FormatStamp(m.now().Add(time.Hour).Truncate(time.Minute))
}
