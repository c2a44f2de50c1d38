package tsv

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "abc 123", want: "abc 123"},
		{name: "tab", in: "a\tb", want: `a\tb`},
		{name: "newline", in: "a\nb", want: `a\nb`},
		{name: "carriage return", in: "a\r\nb", want: `a\r\nb`},
		{name: "tab and newline", in: "a\tb\nc", want: `a\tb\nc`},
		{name: "only specials", in: "\t\n\r", want: `\t\n\r`},
		{name: "backslash untouched", in: `C:\dir`, want: `C:\dir`},
		{name: "utf8 passthrough", in: "Zürich 東京", want: "Zürich 東京"},
		{name: "invalid utf8 passthrough", in: "\xff\xfe\t", want: "\xff\xfe\\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
			assert.Equal(t, tt.want, string(AppendEscaped(nil, tt.in)))
		})
	}
}

func TestAppendEscaped_KeepsPrefix(t *testing.T) {
	got := AppendEscaped([]byte("x="), "1\t2")
	assert.Equal(t, `x=1\t2`, string(got))
}

func TestEscape_Deterministic(t *testing.T) {
	in := "line1\nline2\tcol\r"
	first := Escape(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Escape(in))
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `a\tb`, want: "a\tb"},
		{in: `a\nb\rc`, want: "a\nb\rc"},
		{in: `no escapes`, want: "no escapes"},
		{in: `trailing\`, want: `trailing\`},
		{in: `\x stays`, want: `\x stays`},
		{in: `\\t`, want: "\\\t"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Unescape(tt.in))
		})
	}
}

func TestEscapeUnescape_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []byte("ab\\tnr\t\n\r\x00\xc3\xa9 ")

	checked := 0
	for i := 0; i < 2000; i++ {
		buf := make([]byte, rng.Intn(24))
		for j := range buf {
			buf[j] = alphabet[rng.Intn(len(alphabet))]
		}
		in := string(buf)
		if strings.Contains(in, `\t`) || strings.Contains(in, `\n`) || strings.Contains(in, `\r`) {
			continue
		}
		checked++
		out := Escape(in)
		assert.NotContains(t, out, "\t")
		assert.NotContains(t, out, "\n")
		assert.NotContains(t, out, "\r")
		assert.Equal(t, in, Unescape(out), "round trip of %q", in)
	}
	assert.Greater(t, checked, 100)
}
