package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	m "srcmap.dev/pkg/srcmap/internal/model"
)

const configFilePerm = 0o644

var initForceFlag bool

// configEntry is one documented key of the generated srcmap.yaml.
type configEntry struct {
	key     string
	comment string
}

var configEntries = []configEntry{
	{configVersionKey, "config file format"},
	{outputConfigKey, "report file, relative to each project; empty writes <build.dir>/reports/sources-structure.json"},
	{buildDirConfigKey, "build directory, relative to each project"},
	{runParallelConfigKey, "projects processed concurrently by `srcmap run`"},
	{logFilenameKey, "rotating log file"},
	{logLevelKey, "debug, info, warn or error"},
	{logVerboseKey, "same as --verbose"},
	{logMaxSizeKey, "megabytes before rotation"},
	{logMaxBackupsKey, ""},
	{logMaxAgeKey, "days"},
	{logCompressKey, ""},
}

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default srcmap.yaml configuration file",
		Long: `Create a srcmap.yaml in the current working directory populated with the
current settings, one commented key per option, so it can be edited manually.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := m.Path(filepath.Join(configFolderPath, configFileName))

			if !initForceFlag {
				_, err := fsAdapter.FileInfo(targetPath)
				if err == nil {
					return fmt.Errorf("config file %s already exists, use --force to overwrite", targetPath)
				}

				if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("failed to check config file: %w", err)
				}
			}

			content, err := renderConfig()
			if err != nil {
				return err
			}

			if err := fsAdapter.WriteFile(targetPath, content, configFilePerm); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("Configuration written to %s\n", targetPath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&initForceFlag, "force", false, "overwrite an existing configuration file")

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// renderConfig encodes the current value of every config entry as YAML,
// nesting dotted keys and attaching each entry's comment.
func renderConfig() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	for _, entry := range configEntries {
		value := &yaml.Node{}
		if err := value.Encode(viper.Get(entry.key)); err != nil {
			return nil, fmt.Errorf("encode %s: %w", entry.key, err)
		}

		parts := strings.Split(entry.key, ".")

		parent := root
		for _, part := range parts[:len(parts)-1] {
			parent = childMapping(parent, part)
		}

		key := &yaml.Node{Kind: yaml.ScalarNode, Value: parts[len(parts)-1]}
		if entry.comment != "" {
			key.HeadComment = "# " + entry.comment
		}

		parent.Content = append(parent.Content, key, value)
	}

	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	return buf.Bytes(), nil
}

// childMapping returns the mapping stored under name in parent, adding it
// when missing.
func childMapping(parent *yaml.Node, name string) *yaml.Node {
	for i := 0; i+1 < len(parent.Content); i += 2 {
		if parent.Content[i].Value == name {
			return parent.Content[i+1]
		}
	}

	child := &yaml.Node{Kind: yaml.MappingNode}
	parent.Content = append(parent.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, child)

	return child
}
