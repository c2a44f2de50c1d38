// Package progress reports how much of an input stream has been consumed.
//
// Reader is a pass-through decorator: bytes are returned exactly as read
// from the wrapped reader, the only side effect is calls to a Reporter.
package progress

import (
	"io"
	"log/slog"
)

// minStep is the smallest advance, in percentage points, that triggers a report.
const minStep = 0.05

// Update is a progress snapshot.
type Update struct {
	Consumed int64
	Total    int64 // <= 0 when unknown
	Percent  float64
	Done     bool // the wrapped reader returned io.EOF
}

// Reporter receives progress updates.
type Reporter interface {
	Report(Update)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Update)

// Report calls f(u).
func (f ReporterFunc) Report(u Update) { f(u) }

// Reader wraps an io.Reader and reports consumption to a Reporter.
type Reader struct {
	r        io.Reader
	total    int64
	consumed int64
	last     float64 // percent at the last report
	done     bool
	reporter Reporter
}

// NewReader returns a Reader over r. total is the expected stream length;
// when it is unknown (<= 0) only the final update is reported.
func NewReader(r io.Reader, total int64, reporter Reporter) *Reader {
	if reporter == nil {
		reporter = Nop()
	}
	return &Reader{r: r, total: total, reporter: reporter}
}

// Read implements io.Reader.
func (p *Reader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	p.consumed += int64(n)

	if p.total > 0 {
		pct := 100 * float64(p.consumed) / float64(p.total)
		if pct > p.last+minStep {
			p.last = pct
			p.reporter.Report(Update{Consumed: p.consumed, Total: p.total, Percent: pct})
		}
	}
	if err == io.EOF && !p.done {
		p.done = true
		p.reporter.Report(Update{Consumed: p.consumed, Total: p.total, Percent: 100, Done: true})
	}
	return n, err
}

// Consumed returns the number of bytes read so far.
func (p *Reader) Consumed() int64 {
	return p.consumed
}

// Nop returns a Reporter that discards updates.
func Nop() Reporter {
	return ReporterFunc(func(Update) {})
}

// LogReporter logs an info record every step percentage points, and at the end.
type LogReporter struct {
	logger *slog.Logger
	step   float64
	next   float64
}

// NewLogReporter returns a LogReporter. A step <= 0 defaults to 10.
func NewLogReporter(logger *slog.Logger, step float64) *LogReporter {
	if step <= 0 {
		step = 10
	}
	return &LogReporter{logger: logger, step: step, next: step}
}

// Report implements Reporter.
func (l *LogReporter) Report(u Update) {
	switch {
	case u.Done:
		l.logger.Info("input fully read", "bytes", u.Consumed)
	case u.Percent >= l.next:
		for l.next <= u.Percent {
			l.next += l.step
		}
		l.logger.Info("reading input", "percent", int(u.Percent), "bytes", u.Consumed, "total", u.Total)
	}
}
