package tsv

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_RowLayout(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 0)

	require.NoError(t, w.WriteRawField("id"))
	require.NoError(t, w.WriteRawField("name"))
	require.NoError(t, w.EndRow())
	require.NoError(t, w.WriteField("42"))
	require.NoError(t, w.WriteField("a\tb\nc"))
	require.NoError(t, w.EndRow())

	assert.Empty(t, buf.String(), "output should stay buffered until Flush")
	require.NoError(t, w.Flush())

	assert.Equal(t, "id\tname\t\n42\ta\\tb\\nc\t\n", buf.String())
	assert.Equal(t, int64(buf.Len()), w.Written())
}

func TestWriter_WriteEscapedHasNoTerminator(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 16)

	require.NoError(t, w.WriteEscaped("-"))
	require.NoError(t, w.WriteField("7"))
	require.NoError(t, w.Flush())

	assert.Equal(t, "-7\t", buf.String())
}

func TestWriter_SmallBufferPreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 16)

	var want bytes.Buffer
	for i := 0; i < 100; i++ {
		require.NoError(t, w.WriteField("value\twith\ttabs"))
		require.NoError(t, w.EndRow())
		want.WriteString("value\\twith\\ttabs\t\n")
	}
	require.NoError(t, w.Flush())

	assert.Equal(t, want.String(), buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_PropagatesErrors(t *testing.T) {
	w := NewWriter(failingWriter{}, 16)

	require.NoError(t, w.WriteField("short"))
	err := w.WriteField("a value longer than the buffer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
