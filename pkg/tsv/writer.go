package tsv

import (
	"bufio"
	"io"
	"strings"
)

// DefaultBufferSize is the write buffer size used when none is given.
const DefaultBufferSize = 128 * 1024

// Writer is a buffered TSV row writer.
// Writes are never reordered; Flush must be called before the underlying
// writer is closed.
type Writer struct {
	w       *bufio.Writer
	written int64
}

// NewWriter returns a Writer buffering size bytes in front of w.
// A size <= 0 selects DefaultBufferSize.
func NewWriter(w io.Writer, size int) *Writer {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Writer{w: bufio.NewWriterSize(w, size)}
}

// WriteEscaped writes the escaped form of s without a field terminator.
func (w *Writer) WriteEscaped(s string) error {
	for {
		i := strings.IndexAny(s, special)
		if i < 0 {
			return w.writeString(s)
		}
		if err := w.writeString(s[:i]); err != nil {
			return err
		}
		if err := w.writeString(escapeOf(s[i])); err != nil {
			return err
		}
		s = s[i+1:]
	}
}

// WriteField writes the escaped form of s followed by the field terminator.
func (w *Writer) WriteField(s string) error {
	if err := w.WriteEscaped(s); err != nil {
		return err
	}
	return w.writeByte('\t')
}

// WriteRawField writes s unescaped followed by the field terminator.
// It is used for header rows, whose column names are written verbatim.
func (w *Writer) WriteRawField(s string) error {
	if err := w.writeString(s); err != nil {
		return err
	}
	return w.writeByte('\t')
}

// EndRow terminates the current row.
func (w *Writer) EndRow() error {
	return w.writeByte('\n')
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Written returns the number of bytes accepted by the Writer so far,
// buffered or not.
func (w *Writer) Written() int64 {
	return w.written
}

func (w *Writer) writeString(s string) error {
	n, err := w.w.WriteString(s)
	w.written += int64(n)
	return err
}

func (w *Writer) writeByte(c byte) error {
	if err := w.w.WriteByte(c); err != nil {
		return err
	}
	w.written++
	return nil
}
