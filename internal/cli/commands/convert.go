package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dump2tsv/internal/cli/config"
	"github.com/leapstack-labs/dump2tsv/internal/cli/output"
	"github.com/leapstack-labs/dump2tsv/internal/engine"
	"github.com/leapstack-labs/dump2tsv/internal/input"
	"github.com/leapstack-labs/dump2tsv/internal/progress"
	"github.com/leapstack-labs/dump2tsv/pkg/parser"
)

// ConvertOutput is the JSON summary of a conversion.
type ConvertOutput struct {
	Input      string              `json:"input"`
	OutputDir  string              `json:"output_dir"`
	Tables     []engine.TableStats `json:"tables"`
	Statements int                 `json:"statements"`
	Creates    int                 `json:"creates"`
	Inserts    int                 `json:"inserts"`
	Ignored    int                 `json:"ignored"`
	Rows       int64               `json:"rows"`
	ElapsedMS  int64               `json:"elapsed_ms"`
}

// RunConvert converts the dump at location into one TSV file per table.
func RunConvert(cmd *cobra.Command, location string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger
	r := cmdCtx.Renderer

	reporter := newReporter(cmd, cfg, cmdCtx)

	dump, err := input.Open(cmd.Context(), location, input.Options{
		Retries: uint64(cfg.Fetch.Retries), //nolint:gosec // validated non-negative
		Timeout: cfg.Fetch.Timeout,
		Logger:  logger,
		Wrap: func(rd io.Reader, size int64) io.Reader {
			return progress.NewReader(rd, size, reporter)
		},
	})
	if err != nil {
		return err
	}
	defer func() { _ = dump.Close() }()

	logger.Info("converting dump", "input", location, "entry", dump.Name, "size", dump.Size, "output_dir", cfg.OutputDir)

	eng := engine.New(engine.Config{
		OutputDir:  cfg.OutputDir,
		BufferSize: cfg.BufferSize,
		Logger:     logger,
	})
	res, err := eng.Run(parser.New(dump))
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	return renderSummary(r, location, res)
}

// newReporter picks how reading progress is shown. Progress always goes to
// stderr so stdout carries only the summary.
func newReporter(cmd *cobra.Command, cfg *config.Config, cmdCtx *CommandContext) progress.Reporter {
	errOut := cmd.ErrOrStderr()
	tty := output.IsTerminal(errOut)

	switch cfg.Progress {
	case config.ProgressNever:
		return progress.Nop()
	case config.ProgressAlways:
		return output.NewProgressBar(errOut, tty)
	default:
		if tty {
			return output.NewProgressBar(errOut, true)
		}
		return progress.NewLogReporter(cmdCtx.Logger, 10)
	}
}

func renderSummary(r *output.Renderer, location string, res *engine.Result) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		tables := res.Tables
		if tables == nil {
			tables = []engine.TableStats{}
		}
		return r.JSON(ConvertOutput{
			Input:      location,
			OutputDir:  res.OutputDir,
			Tables:     tables,
			Statements: res.Statements,
			Creates:    res.Creates,
			Inserts:    res.Inserts,
			Ignored:    res.Ignored,
			Rows:       res.Rows,
			ElapsedMS:  res.Elapsed.Milliseconds(),
		})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "dump2tsv: "+location))
		r.Println(output.FormatKeyValue("Output directory", res.OutputDir))
		r.Println(output.FormatKeyValue("Statements", statementSummary(res)))
		r.Println(output.FormatKeyValue("Elapsed", res.Elapsed.Round(time.Millisecond).String()))
		r.Println("")
	default:
		r.Header(1, "Converted "+location)
		r.Muted(fmt.Sprintf("%s in %s", statementSummary(res), res.Elapsed.Round(time.Millisecond)))
	}

	if len(res.Tables) == 0 {
		r.Muted("No tables declared in dump")
		return nil
	}

	rows := make([][]string, 0, len(res.Tables))
	var bytes int64
	for _, t := range res.Tables {
		rows = append(rows, []string{
			t.Name,
			strconv.Itoa(t.Columns),
			humanize.Comma(t.Rows),
			humanize.Bytes(uint64(t.Bytes)), //nolint:gosec // sizes are non-negative
			t.Path,
		})
		bytes += t.Bytes
	}
	r.Table(
		[]string{"Table", "Columns", "Rows", "Size", "File"},
		rows,
		[]string{"Total", "", humanize.Comma(res.Rows), humanize.Bytes(uint64(bytes)), ""}, //nolint:gosec // non-negative
	)

	if r.EffectiveMode() == output.ModeText {
		r.Success(fmt.Sprintf("Wrote %d tables to %s", len(res.Tables), res.OutputDir))
	}
	return nil
}

func statementSummary(res *engine.Result) string {
	return fmt.Sprintf("%d statements (%d CREATE TABLE, %d INSERT, %d ignored)",
		res.Statements, res.Creates, res.Inserts, res.Ignored)
}
