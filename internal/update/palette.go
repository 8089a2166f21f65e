package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lins/internal/commands"
	"github.com/sandeepkv93/lins/internal/settings"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeBrowse
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		return m.executePaletteCommand(m.commandInput.Value())
	default:
		m.commandInput = editInput(m.commandInput, msg)
		return m, nil
	}
}

func (m Model) executePaletteCommand(input string) (Model, tea.Cmd) {
	m.Mode = ModeBrowse
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(strings.TrimSpace(input))
	if err != nil {
		m.setError(err)
		return m, nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			c, err := m.addTask(a.Description, a.Due)
			if err != nil {
				return commands.Result{}, err
			}
			follow = c
			return commands.Result{Message: fmt.Sprintf("added task %d", m.tasks.Len())}, nil
		},
		Done: func(t commands.TargetArgs) (commands.Result, error) {
			c, err := m.completeTask(t.Index)
			if err != nil {
				return commands.Result{}, err
			}
			follow = c
			return commands.Result{Message: fmt.Sprintf("completed task %d", t.Index+1)}, nil
		},
		Delete: func(t commands.TargetArgs) (commands.Result, error) {
			c, err := m.deleteTask(t.Index)
			if err != nil {
				return commands.Result{}, err
			}
			follow = c
			return commands.Result{Message: fmt.Sprintf("deleted task %d", t.Index+1)}, nil
		},
		Interval: func(a commands.IntervalArgs) (commands.Result, error) {
			m.settings.Update(func(s *settings.Settings) { s.RepeatInterval = a.Minutes })
			return commands.Result{Message: "periodic reminder " + intervalWord(a.Minutes)}, nil
		},
		Notify: func(a commands.ToggleArgs) (commands.Result, error) {
			m.settings.Update(func(s *settings.Settings) { s.NotificationsEnabled = a.On })
			return commands.Result{Message: "notifications " + onOffWord(a.On)}, nil
		},
		Sound: func(a commands.ToggleArgs) (commands.Result, error) {
			m.settings.Update(func(s *settings.Settings) { s.SoundEnabled = a.On })
			return commands.Result{Message: "sound " + onOffWord(a.On)}, nil
		},
		Autostart: func(a commands.ToggleArgs) (commands.Result, error) {
			if err := m.settings.SetAutostart(a.On); err != nil {
				return commands.Result{}, fmt.Errorf("autostart: %w", err)
			}
			return commands.Result{Message: "autostart " + onOffWord(a.On)}, nil
		},
	})
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, follow
}

// editInput applies a key to a text input, appending typed runes directly.
func editInput(in textinput.Model, msg tea.KeyMsg) textinput.Model {
	switch msg.Type {
	case tea.KeyRunes:
		in.SetValue(in.Value() + string(msg.Runes))
		in.CursorEnd()
		return in
	case tea.KeySpace:
		in.SetValue(in.Value() + " ")
		in.CursorEnd()
		return in
	}
	in, _ = in.Update(msg)
	return in
}
