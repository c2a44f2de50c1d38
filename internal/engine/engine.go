// Package engine provides the conversion engine.
// It consumes dump statements one at a time and materializes one
// tab-separated file per declared table.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/leapstack-labs/dump2tsv/pkg/core"
	"github.com/leapstack-labs/dump2tsv/pkg/tsv"
)

// Engine drives a statement source to completion.
// An Engine keeps no state between runs; every Run owns a fresh sink registry.
type Engine struct {
	outputDir  string
	bufferSize int
	logger     *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// OutputDir receives one <table>.tsv file per declared table.
	// It is created if missing.
	OutputDir string
	// BufferSize is the write buffer size per table file (tsv.DefaultBufferSize if <= 0)
	BufferSize int
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates a new engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = tsv.DefaultBufferSize
	}

	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "."
	}

	return &Engine{
		outputDir:  outputDir,
		bufferSize: bufferSize,
		logger:     logger,
	}
}

// OutputDir returns the directory table files are written to.
func (e *Engine) OutputDir() string {
	return e.outputDir
}

// Run pulls statements from src until it reports io.EOF.
//
// CREATE TABLE opens (or truncates) <OutputDir>/<name>.tsv and writes the
// header row; INSERT appends one row per value tuple; other statements are
// skipped. Every table file is flushed and closed before Run returns, whether
// it succeeds or not. Data written before a failure stays on disk.
//
// An INSERT into a table with no prior CREATE TABLE, or a literal outside the
// core.Literal set, panics with *core.ContractViolation.
//
// The returned Result is non-nil even when err is not, and describes what was
// written up to the failure.
func (e *Engine) Run(src core.Source) (res *Result, err error) {
	start := time.Now()
	res = &Result{OutputDir: e.outputDir}

	if err := os.MkdirAll(e.outputDir, 0750); err != nil {
		return res, fmt.Errorf("failed to create output directory: %w", err)
	}

	sinks := newRegistry(e.outputDir, e.bufferSize, e.logger)
	defer func() {
		closeErr := sinks.closeAll()
		res.Tables = sinks.stats()
		res.Elapsed = time.Since(start)
		if closeErr == nil {
			return
		}
		if err == nil {
			err = fmt.Errorf("failed to close table files: %w", closeErr)
			return
		}
		e.logger.Error("failed to close table files after error", "error", closeErr)
	}()

	e.logger.Debug("starting conversion", "output_dir", e.outputDir, "buffer_size", e.bufferSize)

	for {
		stmt, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("statement %d: %w", res.Statements+1, err)
		}
		res.Statements++

		if err := e.apply(sinks, stmt, res); err != nil {
			return res, err
		}
	}

	e.logger.Info("conversion finished",
		"statements", res.Statements,
		"tables", sinks.len(),
		"rows", res.Rows,
	)
	return res, nil
}

// apply dispatches one statement.
func (e *Engine) apply(sinks *registry, stmt core.Statement, res *Result) error {
	switch s := stmt.(type) {
	case *core.CreateTable:
		res.Creates++
		return sinks.create(s.Name, s.Columns)

	case *core.Insert:
		res.Inserts++
		sink := sinks.lookup(s.Table)
		for _, row := range s.Rows {
			if err := WriteRow(sink.w, row); err != nil {
				return fmt.Errorf("failed to write %s: %w", sink.path, err)
			}
			sink.rows++
		}
		res.Rows += int64(len(s.Rows))
		return nil

	case *core.Other:
		res.Ignored++
		e.logger.Debug("skipping statement", "verb", s.Verb)
		return nil

	default:
		core.Violatef("unexpected statement %T", stmt)
		return nil
	}
}
