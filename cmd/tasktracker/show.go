package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/burnsba/tasktracker/internal/appearance"
	"github.com/burnsba/tasktracker/internal/timer"
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a task's name and elapsed time",
	Args:  cobra.ExactArgs(1),
	RunE:  showTask,
}

func showTask(cmd *cobra.Command, args []string) error {
	t, err := env.storage.Load(args[0])
	if err != nil {
		return err
	}
	defer t.Close()

	describeTask(cmd.OutOrStdout(), t)
	return nil
}

func describeTask(w io.Writer, t *timer.SessionTimer) {
	r := t.Record()
	fmt.Fprintf(w, "Task:    %s\n", r.TaskName)
	if label := appearance.LabelText(r); label != r.TaskName {
		fmt.Fprintf(w, "Display: %s\n", label)
	}
	fmt.Fprintf(w, "Elapsed: %s\n", t.TotalElapsedFormatted())
	fmt.Fprintf(w, "Seconds: %d\n", r.PriorElapsedSeconds)
}
