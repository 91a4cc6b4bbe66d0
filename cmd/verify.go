package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"srcmap.dev/pkg/srcmap/internal/domain"
	"srcmap.dev/pkg/srcmap/internal/plugin"
	"srcmap.dev/pkg/srcmap/internal/project"
)

// errReportOutdated is returned when a report on disk is missing or stale.
var errReportOutdated = errors.New("sources structure is out of date")

// verifyCmd represents the verify command.
var verifyCmd = newVerifyCmd()

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that the written report matches the sources",
		Long: `Build the report in memory and compare it with the file on disk.
Exits non-zero when the report is missing or stale.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := currentProjectConfig()

			for _, dir := range parseProjectDirs(projectDirsFlag) {
				err := forProject(dir, cfg, func(p *project.Project) error {
					result, err := workflow.Verify(cmd.Context(), domain.VerifyArgs{
						Project: p,
						Target:  plugin.ReportTarget(p, cfg.output),
					})
					if err != nil {
						return err
					}

					if result.Missing || result.Stale {
						return fmt.Errorf("%w: %s", errReportOutdated, result.Target)
					}

					return nil
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
	rootCmd.AddCommand(verifyCmd)
}
