// Package tsv writes tab-separated rows in the layout produced by dump2tsv.
//
// Every field, including the last one in a row, is followed by a tab and rows
// end with a single line feed. Field content is escaped so that tab, line feed
// and carriage return never appear raw inside a field:
//
//	"\t" -> `\t`
//	"\n" -> `\n`
//	"\r" -> `\r`
//
// All other bytes, including backslashes and UTF-8 continuation bytes, are
// copied unchanged.
package tsv

import "strings"

// special holds the bytes that must be escaped inside a field.
const special = "\t\n\r"

// escapeOf returns the escape sequence for a special byte.
func escapeOf(b byte) string {
	switch b {
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	}
	return string(b)
}

// Escape returns s with tab, line feed and carriage return replaced by their
// two-character escapes.
func Escape(s string) string {
	if !strings.ContainsAny(s, special) {
		return s
	}
	return string(AppendEscaped(make([]byte, 0, len(s)+8), s))
}

// AppendEscaped appends the escaped form of s to dst and returns the extended slice.
func AppendEscaped(dst []byte, s string) []byte {
	for {
		i := strings.IndexAny(s, special)
		if i < 0 {
			return append(dst, s...)
		}
		dst = append(dst, s[:i]...)
		dst = append(dst, escapeOf(s[i])...)
		s = s[i+1:]
	}
}

// Unescape reverses Escape. Backslashes not followed by t, n or r are kept as-is,
// so the result equals the original only for inputs that did not already
// contain one of the escape sequences.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 't':
				b.WriteByte('\t')
				i++
				continue
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case 'r':
				b.WriteByte('\r')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
