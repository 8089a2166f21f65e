package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lins/internal/update"
	"github.com/spf13/cobra"
)

var (
	tasksPath    string
	settingsPath string
	storageKind  string
)

var rootCmd = &cobra.Command{
	Use:   "lins",
	Short: "Lins - personal task tracker with deadline reminders",
	Long:  `Lins keeps a local task list, warns five minutes before a task is due and reminds you periodically that time has passed.`,
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&tasksPath, "tasks", "", "tasks document path (overrides LINS_TASKS_FILE)")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "settings document path (overrides LINS_SETTINGS_FILE)")
	rootCmd.PersistentFlags().StringVar(&storageKind, "storage", "", "task storage backend: json or sqlite (overrides LINS_STORAGE)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tasksCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	a.engine.Start()
	m := update.NewModel(update.Deps{
		Tasks:    a.tasks,
		Settings: a.settings,
		Engine:   a.engine,
		Presence: a.presence,
		Desktop:  a.desktop,
		Cue:      a.sound,
		Log:      a.log,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		a.shutdown()
		return fmt.Errorf("lins failed: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
