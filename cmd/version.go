package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

const unknownVersion = "(devel)"

var versionShortFlag bool

// buildVersion returns the module version and Go version srcmap was built with.
func buildVersion(info *debug.BuildInfo, ok bool) (string, string) {
	if !ok || info == nil {
		return unknownVersion, "unknown"
	}

	version := info.Main.Version
	if version == "" {
		version = unknownVersion
	}

	return version, info.GoVersion
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the srcmap build version and the Go version used to build it.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			version, goVersion := buildVersion(debug.ReadBuildInfo())
			if versionShortFlag {
				cmd.Println(version)
				return
			}

			cmd.Println("srcmap version\t", version)
			cmd.Println("go version\t", goVersion)
		},
	}

	cmd.Flags().BoolVar(&versionShortFlag, "short", false, "print the version number only")

	return cmd
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
