package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lins/internal/presence"
	"github.com/sandeepkv93/lins/internal/views"
)

func (m Model) Init() tea.Cmd {
	return waitForRequestCmd(m.requests)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.shutdown()
			return m, tea.Quit
		}
		if m.presence.State() == presence.TrayOnly {
			return m.handleTrayKey(typed)
		}
		switch m.Mode {
		case ModePalette:
			return m.handlePaletteKey(typed)
		case ModeAddDescription, ModeAddDue:
			return m.handleAddKey(typed)
		}
		return m.handleBrowseKey(typed)
	case RequestMsg:
		cmds := []tea.Cmd{waitForRequestCmd(m.requests)}
		cmds = append(cmds, m.present(typed.Request.Title, typed.Request.Body))
		if typed.Request.Sound {
			m.cue.PlayCue()
		}
		return m, tea.Batch(cmds...)
	case dismissToastMsg:
		if m.Toast != nil && m.Toast.seq == typed.seq {
			m.Toast = nil
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.setError(typed.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.shutdown()
		return m, tea.Quit
	case m.Keys.Add:
		m.Mode = ModeAddDescription
		m.pendingDescription = ""
		m.addInput.SetValue("")
		m.addInput.Focus()
		return m, nil
	case m.Keys.Palette:
		m.Mode = ModePalette
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Complete:
		if m.tasks.Len() == 0 {
			return m, nil
		}
		cmd, err := m.completeTask(m.Cursor)
		if err != nil {
			m.setError(err)
		}
		return m, cmd
	case m.Keys.Delete:
		if m.tasks.Len() == 0 {
			return m, nil
		}
		cmd, err := m.deleteTask(m.Cursor)
		if err != nil {
			m.setError(err)
		}
		return m, cmd
	case m.Keys.Down, "down":
		m.moveCursor(1)
		return m, nil
	case m.Keys.Up, "up":
		m.moveCursor(-1)
		return m, nil
	case m.Keys.Notify:
		s := m.toggleNotifications()
		m.Status = StatusBar{Text: "notifications " + onOffWord(s.NotificationsEnabled)}
		return m, nil
	case m.Keys.Sound:
		s := m.toggleSound()
		m.Status = StatusBar{Text: "sound " + onOffWord(s.SoundEnabled)}
		return m, nil
	case m.Keys.Interval:
		s := m.cycleInterval()
		m.Status = StatusBar{Text: "periodic reminder " + intervalWord(s.RepeatInterval)}
		return m, nil
	case m.Keys.Minimize:
		m.presence.Fire(presence.Minimize)
		m.Toast = nil
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible && m.helpMarkdown == "" {
			m.helpMarkdown = views.RenderMarkdown(helpMarkdown)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleTrayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.shutdown()
		return m, tea.Quit
	case m.Keys.Restore:
		m.presence.Fire(presence.Restore)
	case "enter":
		m.presence.Fire(presence.TrayActivate)
	case m.Keys.Notify:
		m.toggleNotifications()
	}
	return m, nil
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.resetAddForm()
		m.Status = StatusBar{Text: "add cancelled"}
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.addInput.Value())
		if m.Mode == ModeAddDescription {
			if value == "" {
				m.Status = StatusBar{Text: "enter a task description", IsError: true}
				return m, nil
			}
			m.pendingDescription = value
			m.Mode = ModeAddDue
			m.addInput.SetValue(m.defaultDue())
			m.addInput.CursorEnd()
			return m, nil
		}
		cmd, err := m.addTask(m.pendingDescription, value)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.resetAddForm()
		m.Status = StatusBar{Text: "task added"}
		return m, cmd
	default:
		m.addInput = editInput(m.addInput, msg)
		return m, nil
	}
}

func (m Model) View() string {
	current := m.settings.Current()
	toast := ""
	if m.Toast != nil {
		toast = views.RenderToast(m.Toast.Title, m.Toast.Body)
	}

	if m.presence.State() == presence.TrayOnly {
		return views.RenderTray(views.TrayData{
			Pending:       m.tasks.Pending(),
			Notifications: current.NotificationsEnabled,
			Toast:         toast,
		})
	}

	now := m.now()
	list := m.tasks.List()
	cards := make([]views.TaskCardData, 0, len(list))
	for i, task := range list {
		cards = append(cards, views.TaskCardData{
			Number:      i + 1,
			Description: task.Description,
			Due:         task.Due,
			Completed:   task.Completed,
			Overdue:     task.IsOverdue(now),
			Selected:    i == m.Cursor,
		})
	}

	overlay := ""
	switch m.Mode {
	case ModeAddDescription:
		overlay = views.RenderAddForm(views.AddFormData{Step: "description", InputView: m.addInput.View()})
	case ModeAddDue:
		overlay = views.RenderAddForm(views.AddFormData{Step: "due", Description: m.pendingDescription, InputView: m.addInput.View()})
	case ModePalette:
		overlay = views.RenderCommandPalette(true, m.commandInput.View())
	}
	if help := m.renderHelpIfVisible(); help != "" {
		overlay = strings.TrimSpace(overlay + "\n" + help)
	}

	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
	}

	return views.RenderApp(views.AppData{
		Header: fmt.Sprintf("lins | tasks: %d | pending: %d", len(list), m.tasks.Pending()),
		Settings: views.RenderSettingsLine(views.SettingsData{
			Notifications: current.NotificationsEnabled,
			Sound:         current.SoundEnabled,
			Autostart:     current.AutostartEnabled,
			Interval:      current.RepeatInterval,
		}),
		Body:       views.RenderTaskList(cards),
		Overlay:    overlay,
		StatusLine: status,
		StatusErr:  m.Status.IsError,
		Toast:      toast,
		Footer: fmt.Sprintf("keys: %s add | %s done | %s delete | %s/%s move | %s notify | %s sound | %s interval | %s tray | %s cmd | %s help | %s quit",
			m.Keys.Add, m.Keys.Complete, m.Keys.Delete, m.Keys.Down, m.Keys.Up, m.Keys.Notify, m.Keys.Sound,
			m.Keys.Interval, m.Keys.Minimize, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}
