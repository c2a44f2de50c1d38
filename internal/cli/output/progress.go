package output

import (
	"fmt"
	"io"
	"strings"

	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"

	"github.com/leapstack-labs/dump2tsv/internal/progress"
)

const barWidth = 40

// ProgressBar draws reading progress on a single terminal line, redrawn in
// place with a carriage return.
type ProgressBar struct {
	w     io.Writer
	fancy bool
	bar   bprogress.Model
	width int
}

// NewProgressBar creates a progress reporter writing to w. When fancy is
// false it prints only the percentage ("05.20%"), which suits dumb terminals.
func NewProgressBar(w io.Writer, fancy bool) *ProgressBar {
	return &ProgressBar{
		w:     w,
		fancy: fancy,
		bar:   bprogress.New(bprogress.WithDefaultGradient(), bprogress.WithWidth(barWidth)),
	}
}

// Report implements progress.Reporter.
func (p *ProgressBar) Report(u progress.Update) {
	line := p.line(u)
	pad := ""
	if n := p.width - len(line); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	p.width = len(line)

	end := "\r"
	if u.Done {
		end = "\n"
	}
	_, _ = fmt.Fprint(p.w, "\r"+line+pad+end)
}

func (p *ProgressBar) line(u progress.Update) string {
	if !p.fancy {
		if u.Total <= 0 {
			return humanize.Bytes(uint64(u.Consumed)) //nolint:gosec // non-negative
		}
		return fmt.Sprintf("%05.2f%%", u.Percent)
	}
	if u.Total <= 0 {
		return "read " + humanize.Bytes(uint64(u.Consumed)) //nolint:gosec // non-negative
	}
	return fmt.Sprintf("%s %6.2f%%  %s / %s",
		p.bar.ViewAs(u.Percent/100),
		u.Percent,
		humanize.Bytes(uint64(u.Consumed)), //nolint:gosec // non-negative
		humanize.Bytes(uint64(u.Total)),    //nolint:gosec // non-negative
	)
}
