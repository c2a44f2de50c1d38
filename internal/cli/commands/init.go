package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/dump2tsv/internal/cli/config"
)

// configFile is the on-disk shape written by init. The timeout is kept as a
// duration string so the file stays readable.
type configFile struct {
	OutputDir  string `yaml:"output_dir"`
	BufferSize int    `yaml:"buffer_size"`
	Progress   string `yaml:"progress"`
	Output     string `yaml:"output"`
	Verbose    bool   `yaml:"verbose"`
	Fetch      struct {
		Retries int    `yaml:"retries"`
		Timeout string `yaml:"timeout"`
	} `yaml:"fetch"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default dump2tsv.yaml",
		Long: `Write a dump2tsv.yaml configuration file holding the default settings.

Every key can still be overridden with DUMP2TSV_* environment variables
or command-line flags.`,
		Example: `  # Create dump2tsv.yaml in the current directory
  dump2tsv init

  # Overwrite an existing file
  dump2tsv init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			cmdCtx := NewCommandContext(cmd)
			path, err := writeDefaultConfig(dir, force)
			if err != nil {
				return err
			}
			cmdCtx.Renderer.Success("Wrote " + path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func writeDefaultConfig(dir string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	def := config.Default()
	var f configFile
	f.OutputDir = def.OutputDir
	f.BufferSize = def.BufferSize
	f.Progress = def.Progress
	f.Output = def.OutputFormat
	f.Verbose = def.Verbose
	f.Fetch.Retries = def.Fetch.Retries
	f.Fetch.Timeout = def.Fetch.Timeout.String()

	data, err := yaml.Marshal(&f)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
