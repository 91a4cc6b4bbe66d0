// Package cmd provides the root command and CLI setup for srcmap.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"srcmap.dev/pkg/srcmap/internal/adapter"
	"srcmap.dev/pkg/srcmap/internal/controller"
	"srcmap.dev/pkg/srcmap/internal/domain"
	"srcmap.dev/pkg/srcmap/internal/lang"
	m "srcmap.dev/pkg/srcmap/internal/model"
	"srcmap.dev/pkg/srcmap/internal/plugin"
	"srcmap.dev/pkg/srcmap/internal/project"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

// projectDirsFlag lists the project directories a command operates on.
var projectDirsFlag []string

// outputFlag overrides the report location.
var outputFlag string

// buildDirFlag overrides the project build directory.
var buildDirFlag string

var verboseFlag bool

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore(fsAdapter)
	workflow = domain.NewWorkflow(fsAdapter, reportStore, ui)
}

const projectDirHelp = `Every --project-dir is handled as an independent build. Platforms are
detected from build.gradle(.kts), go.mod, go.work and sourcesets.yaml.`

const rootLongDescription = `srcmap discovers the source sets of a project (named groups of source
directories and the files they contain) and writes them as a JSON report
for IDE indexers, coverage tools and CI diagnostics.

` + projectDirHelp

const runLongDescription = `Run a project task (default: ` + plugin.TaskName + `).

` + projectDirHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "srcmap",
		Short: "Source-set structure reports",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringArrayVarP(&projectDirsFlag, projectDirFlagName, "C", []string{"."}, "project directory (can be repeated)")

	cmd.PersistentFlags().
		StringVarP(
			&outputFlag, outputFlagName, "o",
			viper.GetString(outputConfigKey),
			"report file (default <build dir>/reports/sources-structure.json)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputConfigKey)

	cmd.PersistentFlags().StringVar(&buildDirFlag, buildDirFlagName, viper.GetString(buildDirConfigKey), "build directory relative to the project")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(buildDirFlagName), buildDirConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parseProjectDirs(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"."}
	}

	dirs := make([]m.Path, 0, len(args))
	for _, arg := range args {
		dirs = append(dirs, m.Path(arg))
	}

	return dirs
}

// projectConfig holds the settings applied to every loaded project. It is
// read once per command so concurrent loads never touch viper.
type projectConfig struct {
	buildDir string
	output   m.Path
}

func currentProjectConfig() projectConfig {
	return projectConfig{
		buildDir: viper.GetString(buildDirConfigKey),
		output:   m.Path(viper.GetString(outputConfigKey)),
	}
}

// loadProject loads dir, applies the language extensions it declares and
// registers the report task when the project activates it.
func loadProject(dir m.Path, cfg projectConfig) (*project.Project, error) {
	p, err := project.Load(fsAdapter, dir, project.LoadOptions{BuildDir: cfg.buildDir})
	if err != nil {
		return nil, err
	}

	if err := lang.Apply(p, fsAdapter); err != nil {
		return nil, fmt.Errorf("apply language extensions to %s: %w", p.Dir(), err)
	}

	if _, err := plugin.Apply(p, plugin.Options{Workflow: workflow, Output: cfg.output}); err != nil {
		return nil, fmt.Errorf("apply plugin to %s: %w", p.Dir(), err)
	}

	return p, nil
}
