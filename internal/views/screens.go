package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TaskCardData struct {
	Number      int
	Description string
	Due         string
	Completed   bool
	Overdue     bool
	Selected    bool
}

type SettingsData struct {
	Notifications bool
	Sound         bool
	Autostart     bool
	Interval      int
}

type AddFormData struct {
	Step        string
	Description string
	InputView   string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
	Markdown string
}

type TrayData struct {
	Pending       int
	Notifications bool
	Toast         string
}

var (
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	selectedStyle  = lipgloss.NewStyle().Bold(true)
)

func RenderTaskList(items []TaskCardData) string {
	if len(items) == 0 {
		return "tasks:\n(no tasks yet, press [a] to add one)"
	}
	var b strings.Builder
	b.WriteString("tasks:\n")
	for _, item := range items {
		b.WriteString(renderTaskCard(item) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderTaskCard(item TaskCardData) string {
	cursor := " "
	if item.Selected {
		cursor = ">"
	}
	mark := "[ ]"
	if item.Completed {
		mark = "[x]"
	}
	line := fmt.Sprintf("%2d. %s %s  due %s", item.Number, mark, item.Description, item.Due)
	switch {
	case item.Completed:
		line = completedStyle.Render(line)
	case item.Overdue:
		line = overdueStyle.Render(line + " (overdue)")
	}
	if item.Selected {
		line = selectedStyle.Render(line)
	}
	return cursor + " " + line
}

func RenderSettingsLine(data SettingsData) string {
	interval := "off"
	if data.Interval > 0 {
		interval = fmt.Sprintf("%dm", data.Interval)
	}
	return fmt.Sprintf("notifications: %s | sound: %s | reminder: %s | autostart: %s",
		onOff(data.Notifications), onOff(data.Sound), interval, onOff(data.Autostart))
}

func RenderAddForm(data AddFormData) string {
	var b strings.Builder
	b.WriteString("new task:\n")
	if data.Step == "due" {
		b.WriteString(fmt.Sprintf("description: %s\n", data.Description))
		b.WriteString("due (dd.mm.yyyy HH:MM):\n")
	} else {
		b.WriteString("description:\n")
	}
	b.WriteString(data.InputView + "\n")
	b.WriteString("keys: [enter] next [esc] cancel")
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return "command palette:\n" + input
}

func RenderToast(title, body string) string {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(body) == "" {
		return ""
	}
	return selectedStyle.Render(title) + "\n" + body
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	if data.Markdown != "" {
		b.WriteString(data.Markdown + "\n")
	}
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if data.HelpView != "" {
		b.WriteString("\n" + data.HelpView)
	}
	return b.String()
}

// RenderTray is the compact single-line surface shown while minimized.
func RenderTray(data TrayData) string {
	line := fmt.Sprintf("lins (tray) | pending: %d | notifications: %s | [r] restore [q] quit",
		data.Pending, onOff(data.Notifications))
	if data.Toast != "" {
		line += "\n" + toastStyle.Render(data.Toast)
	}
	return line
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
