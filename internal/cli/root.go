// Package cli provides the command-line interface for dump2tsv.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dump2tsv/internal/cli/commands"
	"github.com/leapstack-labs/dump2tsv/internal/cli/config"
	"github.com/leapstack-labs/dump2tsv/internal/cli/output"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// UsageError reports a malformed command line.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// exactlyOneDump accepts a single positional argument: the dump location.
func exactlyOneDump(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &UsageError{Err: fmt.Errorf("expected exactly one dump argument, got %d", len(args))}
	}
	return nil
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dump2tsv [flags] <dump>",
		Short: "dump2tsv - convert MySQL dumps into TSV files",
		Long: `dump2tsv streams a MySQL dump and writes one tab-separated file per table.

Each CREATE TABLE starts <output-dir>/<table>.tsv with a header row of column
names; each INSERT appends one line per value tuple. Tabs, line feeds and
carriage returns inside values are escaped as \t, \n and \r, and NULL is
written as null. Other statements are skipped.

The dump may be a local file, a .gz, .zst or .zip archive, or an http(s) URL.`,
		Example: `  # Convert a dump into ./tables
  dump2tsv dump.sql

  # Convert a compressed dump into a custom directory
  dump2tsv -d out/ dump.sql.gz

  # Download and convert, printing a JSON summary
  dump2tsv -o json https://example.com/dump.sql.zst`,
		Version: Version,
		Args:    exactlyOneDump,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose).With("run_id", uuid.NewString())
			ctx := context.WithValue(cmd.Context(), config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunConvert(cmd, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./dump2tsv.yaml)")
	rootCmd.PersistentFlags().StringP("output-dir", "d", config.DefaultOutputDir, "Directory receiving one <table>.tsv per table")
	rootCmd.PersistentFlags().Int("buffer-size", config.DefaultBufferSize, "Write buffer size per table file, in bytes")
	rootCmd.PersistentFlags().String("progress", config.DefaultProgress, "Progress display (auto|always|never)")
	rootCmd.PersistentFlags().Int("retries", config.DefaultFetchRetries, "Download retries for http(s) dumps")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultFetchTimeout, "Timeout of one download attempt (0 disables it)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.ValidModes(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("progress", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.ProgressAuto, config.ProgressAlways, config.ProgressNever}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// newLogger builds the run logger: debug when verbose, warnings only otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Run executes the CLI with args and returns the process exit code.
// Usage errors print the usage text to stderr.
func Run(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return ExitOK
	}

	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		cmd, _, findErr := rootCmd.Find(args)
		if findErr != nil || cmd == nil {
			cmd = rootCmd
		}
		_, _ = fmt.Fprintln(stderr)
		_, _ = fmt.Fprint(stderr, cmd.UsageString())
		return ExitUsage
	}
	return ExitError
}

// Execute runs the root command against the process arguments.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for dump2tsv.

To load completions:

Bash:
  $ source <(dump2tsv completion bash)

Zsh:
  $ dump2tsv completion zsh > "${fpath[1]}/_dump2tsv"

Fish:
  $ dump2tsv completion fish | source

PowerShell:
  PS> dump2tsv completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
