package progress

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/leapstack-labs/dump2tsv/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	updates []Update
}

func (r *recorder) Report(u Update) { r.updates = append(r.updates, u) }

func TestReader_PassesBytesThrough(t *testing.T) {
	data := bytes.Repeat([]byte("INSERT INTO t VALUES (1,'\t\n\xff');\n"), 500)
	r := NewReader(bytes.NewReader(data), int64(len(data)), nil)

	require.NoError(t, iotest.TestReader(r, data))
}

func TestReader_ReportsMonotonicProgress(t *testing.T) {
	data := strings.Repeat("x", 10000)
	rec := &recorder{}
	r := NewReader(iotest.HalfReader(strings.NewReader(data)), int64(len(data)), rec)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, string(out))
	assert.Equal(t, int64(len(data)), r.Consumed())

	require.NotEmpty(t, rec.updates)
	last := rec.updates[len(rec.updates)-1]
	assert.True(t, last.Done)
	assert.Equal(t, int64(len(data)), last.Consumed)
	assert.Equal(t, float64(100), last.Percent)

	prev := -1.0
	for _, u := range rec.updates[:len(rec.updates)-1] {
		assert.Greater(t, u.Percent, prev+minStep)
		prev = u.Percent
	}
}

func TestReader_SmallStepsAreCoalesced(t *testing.T) {
	data := strings.Repeat("y", 100000)
	rec := &recorder{}
	r := NewReader(iotest.OneByteReader(strings.NewReader(data)), int64(len(data)), rec)

	_, err := io.Copy(io.Discard, r)
	require.NoError(t, err)

	// one byte is 0.001%, so reports happen every ~51 bytes, not every read
	assert.Less(t, len(rec.updates), 2100)
	assert.Greater(t, len(rec.updates), 1000)
}

func TestReader_UnknownTotal(t *testing.T) {
	rec := &recorder{}
	r := NewReader(strings.NewReader("abc"), 0, rec)

	_, err := io.ReadAll(r)
	require.NoError(t, err)

	require.Len(t, rec.updates, 1)
	assert.True(t, rec.updates[0].Done)
	assert.Equal(t, int64(3), rec.updates[0].Consumed)
}

func TestReader_PropagatesErrors(t *testing.T) {
	boom := io.ErrUnexpectedEOF
	r := NewReader(iotest.ErrReader(boom), 10, nil)

	_, err := r.Read(make([]byte, 4))
	assert.ErrorIs(t, err, boom)
}

func TestLogReporter(t *testing.T) {
	logger, logs := testutil.NewCapturingLogger()
	rep := NewLogReporter(logger, 25)

	for _, pct := range []float64{1, 10, 26, 27, 60, 99} {
		rep.Report(Update{Percent: pct, Consumed: int64(pct), Total: 100})
	}
	rep.Report(Update{Percent: 100, Consumed: 100, Total: 100, Done: true})

	out := logs.String()
	assert.Equal(t, 3, strings.Count(out, "reading input"), out)
	assert.Contains(t, out, "percent=26")
	assert.Contains(t, out, "percent=60")
	assert.Contains(t, out, "percent=99")
	assert.Contains(t, out, "input fully read")
}
