package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/dump2tsv/pkg/core"
	"github.com/leapstack-labs/dump2tsv/pkg/tsv"
	"go.uber.org/multierr"
)

// sink is the open output file of one table.
type sink struct {
	name    string
	path    string
	columns int
	file    *os.File
	w       *tsv.Writer
	rows    int64
}

// close flushes buffered rows and closes the file. It is safe to call twice.
func (s *sink) close() error {
	if s.file == nil {
		return nil
	}
	err := multierr.Combine(s.w.Flush(), s.file.Close())
	s.file = nil
	return err
}

// registry maps table names to their sinks for the duration of one run.
// It is only touched from the engine's control loop.
type registry struct {
	dir        string
	bufferSize int
	logger     *slog.Logger

	sinks map[string]*sink
	order []string // table names in order of first declaration
}

func newRegistry(dir string, bufferSize int, logger *slog.Logger) *registry {
	return &registry{
		dir:        dir,
		bufferSize: bufferSize,
		logger:     logger,
		sinks:      make(map[string]*sink),
	}
}

// create opens <dir>/<name>.tsv, truncating prior content, and writes the
// header row. A table declared twice loses the rows written so far.
func (r *registry) create(name string, columns []string) error {
	if err := validateTableName(name); err != nil {
		return err
	}

	if old, ok := r.sinks[name]; ok {
		r.logger.Warn("table declared again, truncating its output", "table", name, "discarded_rows", old.rows)
		delete(r.sinks, name)
		if err := old.close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", old.path, err)
		}
	} else {
		r.order = append(r.order, name)
	}

	path := filepath.Join(r.dir, name+".tsv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create table file: %w", err)
	}

	s := &sink{
		name:    name,
		path:    path,
		columns: len(columns),
		file:    f,
		w:       tsv.NewWriter(f, r.bufferSize),
	}
	r.sinks[name] = s

	for _, col := range columns {
		if err := s.w.WriteRawField(col); err != nil {
			return fmt.Errorf("failed to write header of %s: %w", path, err)
		}
	}
	if err := s.w.EndRow(); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", path, err)
	}

	r.logger.Debug("opened table file", "table", name, "path", path, "columns", len(columns))
	return nil
}

// lookup returns the sink of a declared table.
// An undeclared table is a contract violation: dumps create tables before filling them.
func (r *registry) lookup(name string) *sink {
	s, ok := r.sinks[name]
	if !ok {
		core.Violatef("INSERT into table %q before its CREATE TABLE", name)
	}
	return s
}

func (r *registry) len() int {
	return len(r.sinks)
}

// closeAll flushes and closes every sink, collecting all errors.
func (r *registry) closeAll() error {
	var err error
	for _, name := range r.order {
		if s, ok := r.sinks[name]; ok {
			err = multierr.Append(err, s.close())
		}
	}
	return err
}

// stats reports every table in declaration order.
func (r *registry) stats() []TableStats {
	out := make([]TableStats, 0, len(r.sinks))
	for _, name := range r.order {
		s, ok := r.sinks[name]
		if !ok {
			continue
		}
		out = append(out, TableStats{
			Name:    s.name,
			Path:    s.path,
			Columns: s.columns,
			Rows:    s.rows,
			Bytes:   s.w.Written(),
		})
	}
	return out
}

// validateTableName rejects names that would escape the output directory.
func validateTableName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}
