// Package input opens a dump location as a stream of SQL bytes.
//
// A location is a local path or an http(s) URL. Paths ending in .gz, .zst or
// .zip are decompressed transparently; for .zip archives the first .sql entry
// is read. Remote dumps are downloaded to a temporary file first.
package input

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/multierr"
)

// WrapFunc decorates the byte stream that progress is measured on.
// size is that stream's length, or <= 0 when unknown.
type WrapFunc func(r io.Reader, size int64) io.Reader

// Options configures Open.
type Options struct {
	// Retries is how many times a failed download is retried.
	Retries uint64
	// Backoff is the base delay of the exponential retry backoff (default 1s).
	Backoff time.Duration
	// Timeout bounds a whole download attempt (default: none).
	Timeout time.Duration
	// TempDir holds downloaded dumps (default: os.TempDir()).
	TempDir string
	// Client performs downloads (default: http.DefaultClient).
	Client *http.Client
	// Wrap decorates the measured stream, typically with a progress reader.
	Wrap WrapFunc
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Dump is an opened dump. Reads return decompressed SQL text.
type Dump struct {
	io.Reader
	// Name is the file or archive entry being read.
	Name string
	// Size is the length of the measured stream: the file size for plain and
	// stream-compressed files, the uncompressed entry size for zip archives.
	Size int64

	closers []func() error
}

// Close releases every resource held by the dump, in reverse order of acquisition.
func (d *Dump) Close() error {
	var err error
	for i := len(d.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, d.closers[i]())
	}
	d.closers = nil
	return err
}

func (d *Dump) onClose(f func() error) {
	d.closers = append(d.closers, f)
}

// Open opens location for reading.
func Open(ctx context.Context, location string, opts Options) (*Dump, error) {
	if opts.Wrap == nil {
		opts.Wrap = func(r io.Reader, _ int64) io.Reader { return r }
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	if isURL(location) {
		path, err := download(ctx, location, opts)
		if err != nil {
			return nil, err
		}
		d, err := openFile(path, opts)
		if err != nil {
			_ = os.Remove(path)
			return nil, err
		}
		d.onClose(func() error { return os.Remove(path) })
		return d, nil
	}
	return openFile(location, opts)
}

func isURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// openFile picks a decoder from the file extension.
func openFile(path string, opts Options) (*Dump, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return openZip(path, opts)
	case ".gz":
		return openStream(path, opts, func(r io.Reader) (io.Reader, func() error, error) {
			zr, err := gzip.NewReader(r)
			if err != nil {
				return nil, nil, err
			}
			return zr, zr.Close, nil
		})
	case ".zst", ".zstd":
		return openStream(path, opts, func(r io.Reader) (io.Reader, func() error, error) {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return nil, nil, err
			}
			return zr, func() error { zr.Close(); return nil }, nil
		})
	default:
		return openStream(path, opts, nil)
	}
}

type decoderFunc func(io.Reader) (io.Reader, func() error, error)

// openStream opens a plain or stream-compressed file. Progress is measured on
// the raw file bytes.
func openStream(path string, opts Options, decode decoderFunc) (*Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dump: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat dump: %w", err)
	}

	d := &Dump{Name: filepath.Base(path), Size: info.Size()}
	d.onClose(f.Close)

	r := opts.Wrap(f, info.Size())
	if decode != nil {
		dr, closeFn, err := decode(r)
		if err != nil {
			_ = d.Close()
			return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
		}
		d.onClose(closeFn)
		r = dr
	}
	d.Reader = r

	opts.Logger.Debug("opened dump", "path", path, "size", info.Size())
	return d, nil
}

// openZip reads the first .sql entry of a zip archive, or its only entry.
func openZip(path string, opts Options) (*Dump, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	var entry *zip.File
	var files []*zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		files = append(files, f)
		if entry == nil && strings.EqualFold(filepath.Ext(f.Name), ".sql") {
			entry = f
		}
	}
	if entry == nil && len(files) == 1 {
		entry = files[0]
	}
	if entry == nil {
		_ = zr.Close()
		return nil, fmt.Errorf("archive %s has no .sql entry", path)
	}

	rc, err := entry.Open()
	if err != nil {
		_ = zr.Close()
		return nil, fmt.Errorf("failed to open %s in %s: %w", entry.Name, path, err)
	}

	size := int64(entry.UncompressedSize64)
	d := &Dump{Name: entry.Name, Size: size}
	d.onClose(zr.Close)
	d.onClose(rc.Close)
	d.Reader = opts.Wrap(rc, size)

	opts.Logger.Debug("opened dump in archive", "archive", path, "entry", entry.Name, "size", size)
	return d, nil
}
