package cmd

import (
	"github.com/spf13/cobra"

	"srcmap.dev/pkg/srcmap/internal/project"
)

// tasksCmd represents the tasks command.
var tasksCmd = newTasksCmd()

func newTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List the tasks registered for each project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := currentProjectConfig()

			for _, dir := range parseProjectDirs(projectDirsFlag) {
				err := forProject(dir, cfg, func(p *project.Project) error {
					return ui.DisplayTasks(cmd.Context(), p.Dir(), p.Tasks().All())
				})
				if err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(tasksCmd)
}
