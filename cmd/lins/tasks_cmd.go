package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Print the stored tasks",
	RunE:  runTasks,
}

func runTasks(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSTATUS\tDUE\tDESCRIPTION")
	for i, task := range a.tasks.List() {
		status := "pending"
		switch {
		case task.Completed:
			status = "done"
		case task.IsOverdue(now):
			status = "overdue"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, status, task.Due, task.Description)
	}
	return w.Flush()
}
