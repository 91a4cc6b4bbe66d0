package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"srcmap.dev/pkg/srcmap/internal/controller"
	"srcmap.dev/pkg/srcmap/internal/domain"
)

// newTestRootCmd returns a root command with sub and output captured in out.
// The shared UI and workflow print to that command for the test's duration.
func newTestRootCmd(t *testing.T, sub ...*cobra.Command) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	cmd := newRootCmd()
	cmd.AddCommand(sub...)

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	originalUI, originalWorkflow := ui, workflow
	ui = controller.NewSimpleUI(cmd)
	workflow = domain.NewWorkflow(fsAdapter, reportStore, ui)

	viper.Set(logFilenameKey, filepath.Join(t.TempDir(), "srcmap.log"))

	t.Cleanup(func() {
		ui, workflow = originalUI, originalWorkflow
		viper.Set(logFilenameKey, defaultLogFilename)
		resetChangedFlags(cmd)
	})

	return cmd, out, errOut
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// kotlinProject creates a Kotlin/JVM project with one main source file.
func kotlinProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "build.gradle.kts"), "plugins {\n    kotlin(\"jvm\") version \"1.9.21\"\n}\n")
	writeFile(t, filepath.Join(dir, "src", "main", "kotlin", "com", "example", "test", "TestClass.kt"), "package com.example.test\n\nclass TestClass\n")

	return dir
}

func reportPath(dir string) string {
	return filepath.Join(dir, "build", "reports", "sources-structure.json")
}

// resetChangedFlags marks every flag of cmd and its subcommands as unset so
// viper stops preferring values parsed by a finished test.
func resetChangedFlags(cmd *cobra.Command) {
	unset := func(f *pflag.Flag) { f.Changed = false }

	cmd.PersistentFlags().VisitAll(unset)
	cmd.Flags().VisitAll(unset)

	for _, sub := range cmd.Commands() {
		resetChangedFlags(sub)
	}
}
