package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/lins/internal/views"
)

const helpMarkdown = `## Lins

Tasks are due at a local wall-clock time written as **dd.mm.yyyy HH:MM**.
A pending task due within five minutes raises a *Deadline approaching!*
alert on every poll until it is completed or its time passes.

Palette commands:

- ` + "`/add <dd.mm.yyyy> <HH:MM> <description>`" + `
- ` + "`/done <n>`" + `, ` + "`/delete <n>`" + `
- ` + "`/interval <minutes>`" + ` (0 turns the periodic reminder off)
- ` + "`/notify on|off`" + `, ` + "`/sound on|off`" + `, ` + "`/autostart on|off`" + `
`

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.globalBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Markdown: m.helpMarkdown,
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Add, Action: "add task"},
		{Key: m.Keys.Complete, Action: "complete selected"},
		{Key: m.Keys.Delete, Action: "delete selected"},
		{Key: m.Keys.Down + "/" + m.Keys.Up, Action: "move selection"},
		{Key: m.Keys.Notify, Action: "toggle notifications"},
		{Key: m.Keys.Sound, Action: "toggle sound"},
		{Key: m.Keys.Interval, Action: "cycle reminder interval"},
		{Key: m.Keys.Minimize, Action: "minimize to tray"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "save and quit"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
