package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dump2tsv/internal/progress"
)

func newTestRenderer(mode OutputMode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestMode(t *testing.T) {
	tests := []struct {
		in   string
		want OutputMode
	}{
		{"", ModeAuto},
		{"auto", ModeAuto},
		{"text", ModeText},
		{"Markdown", ModeMarkdown},
		{" json ", ModeJSON},
		{"yaml", ModeAuto},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Mode(tt.in))
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  OutputMode
		isTTY bool
		want  OutputMode
	}{
		{"auto on terminal", ModeAuto, true, ModeText},
		{"auto when piped", ModeAuto, false, ModeMarkdown},
		{"explicit text when piped", ModeText, false, ModeText},
		{"explicit json on terminal", ModeJSON, true, ModeJSON},
		{"empty mode", "", false, ModeMarkdown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestRenderer_Markdown(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeMarkdown, false)

	r.Header(1, "Summary")
	r.Success("done")
	r.Muted("note")
	r.Warning("careful")

	assert.Equal(t, "# Summary\n\n**done**\n_note_\n", out.String())
	assert.Contains(t, errOut.String(), "warning: careful")
}

func TestRenderer_TextWithoutColors(t *testing.T) {
	// A bytes.Buffer is not a terminal, so lipgloss emits no escape codes.
	r, out, errOut := newTestRenderer(ModeText, true)

	r.Header(2, "Tables")
	r.Success("converted")
	r.Error("boom")

	assert.Contains(t, out.String(), "Tables")
	assert.Contains(t, out.String(), "✓ converted")
	assert.NotContains(t, out.String(), "\x1b[")
	assert.Contains(t, errOut.String(), "error: boom")
}

func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON, false)

	require.NoError(t, r.JSON(map[string]int{"rows": 3}))
	assert.Equal(t, "{\n  \"rows\": 3\n}\n", out.String())
}

func TestRenderer_Table(t *testing.T) {
	header := []string{"Table", "Rows"}
	rows := [][]string{{"a", "1"}, {"b", "22"}}

	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeMarkdown, false)
		r.Table(header, rows, []string{"Total", "23"})

		s := out.String()
		assert.Contains(t, s, "| Table | Rows |")
		assert.Contains(t, s, "| a | 1 |")
		assert.Contains(t, s, "| b | 22 |")
		assert.Contains(t, s, "| Total | 23 |")
	})

	t.Run("text", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, true)
		r.Table(header, rows, nil)

		s := out.String()
		assert.Contains(t, s, "┌")
		assert.Contains(t, s, "TABLE")
		assert.Contains(t, s, "22")
	})
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "## Tables\n", FormatHeader(2, "Tables"))
	assert.Equal(t, "# X\n", FormatHeader(0, "X"))
	assert.Equal(t, "- **Rows**: 12", FormatKeyValue("Rows", "12"))
}

func TestProgressBar_Plain(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, false)

	bar.Report(progress.Update{Consumed: 52, Total: 1000, Percent: 5.2})
	bar.Report(progress.Update{Consumed: 1000, Total: 1000, Percent: 100, Done: true})

	assert.Equal(t, "\r05.20%\r\r100.00%\n", buf.String())
}

func TestProgressBar_Fancy(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, true)

	bar.Report(progress.Update{Consumed: 512 * 1000, Total: 1000 * 1000, Percent: 51.2})
	s := buf.String()

	assert.True(t, strings.HasPrefix(s, "\r"))
	assert.True(t, strings.HasSuffix(s, "\r"))
	assert.Contains(t, s, "51.20%")
	assert.Contains(t, s, "512 kB / 1.0 MB")
}

func TestProgressBar_UnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, true)

	bar.Report(progress.Update{Consumed: 2048, Percent: 100, Done: true})
	assert.Equal(t, "\rread 2.0 kB\n", buf.String())
}

func TestProgressBar_ShorterLineIsPadded(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, false)

	bar.Report(progress.Update{Consumed: 123456})
	bar.Report(progress.Update{Consumed: 9})

	assert.Equal(t, "\r124 kB\r\r9 B   \r", buf.String())
}
