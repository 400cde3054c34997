package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/burnsba/tasktracker/internal/models"
)

var newName string

var newCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Create a task file",
	Long: `Create a task file with default settings. The file is JSON unless its
extension is .yaml or .yml.`,
	Args: cobra.ExactArgs(1),
	RunE: newTask,
}

func init() {
	newCmd.Flags().StringVarP(&newName, "name", "n", "", "task name (default \""+models.DefaultTaskName+"\")")
}

func newTask(cmd *cobra.Command, args []string) error {
	t, err := env.storage.CreateNew(args[0])
	if err != nil {
		return err
	}
	defer t.Close()

	if newName != "" {
		t.Update(func(r *models.TaskTime) {
			r.TaskName = newName
		})
		if _, err := env.storage.Save(t, true); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", t.SourceID(), t.Record().TaskName)
	return nil
}
