package cmd

import (
	"github.com/spf13/cobra"

	"srcmap.dev/pkg/srcmap/internal/domain"
	"srcmap.dev/pkg/srcmap/internal/project"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the discovered source sets",
		Long:  "Show the source sets of each project as a table without writing a report.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := currentProjectConfig()

			for _, dir := range parseProjectDirs(projectDirsFlag) {
				err := forProject(dir, cfg, func(p *project.Project) error {
					return workflow.List(cmd.Context(), domain.ListArgs{Project: p})
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
	rootCmd.AddCommand(listCmd)
}
