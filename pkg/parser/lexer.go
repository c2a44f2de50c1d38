package parser

import (
	"bufio"
	"io"
	"strings"
)

// maxLeadingWords is how many leading keywords are kept to classify a statement.
const maxLeadingWords = 3

// RawStatement is the text of one statement cut from the input stream,
// with comments removed and without its terminating semicolon.
type RawStatement struct {
	Text string
	Pos  Position
	// Words holds up to maxLeadingWords leading keywords, upper-cased.
	Words []string
}

// Lexer splits a byte stream into statements at top-level semicolons.
//
// It tracks quoting ('...', "..." and `...`), backslash escapes inside string
// literals, and the three MySQL comment forms (-- , # and /* */, including
// /*! */ conditional comments, which are dropped like any other comment).
// Only the statement currently being cut is held in memory.
type Lexer struct {
	r    *bufio.Reader
	ch   byte // current char under examination
	eof  bool
	err  error // read error other than io.EOF
	line int   // current line number (1-based)
	col  int   // current column number (1-based)
}

// NewLexer creates a new Lexer reading from r.
func NewLexer(r io.Reader) *Lexer {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, 64*1024)
	}
	return &Lexer{r: br, line: 1}
}

// readChar advances to the next character. It returns false at end of input.
func (l *Lexer) readChar() bool {
	if l.eof {
		return false
	}
	c, err := l.r.ReadByte()
	if err != nil {
		l.eof = true
		if err != io.EOF {
			l.err = err
		}
		return false
	}
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	l.ch = c
	l.col++
	return true
}

// peekChar returns the next character without advancing, or 0 at end of input.
func (l *Lexer) peekChar() byte {
	p, _ := l.r.Peek(1)
	if len(p) == 0 {
		return 0
	}
	return p[0]
}

// currentPos returns the position of the current char.
func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col}
}

// NextStatement returns the next non-empty statement, or io.EOF when the
// input holds nothing but whitespace and comments.
func (l *Lexer) NextStatement() (*RawStatement, error) {
	var (
		text      []byte
		start     Position
		words     []string
		word      []byte
		wordsDone bool
	)

	endWord := func() {
		if wordsDone || len(word) == 0 {
			return
		}
		words = append(words, strings.ToUpper(string(word)))
		word = word[:0]
		if len(words) == maxLeadingWords {
			wordsDone = true
		}
	}
	begin := func() {
		if text == nil {
			start = l.currentPos()
			text = make([]byte, 0, 256)
		}
	}
	separate := func() {
		endWord()
		if text != nil {
			text = append(text, ' ')
		}
	}

	for l.readChar() {
		c := l.ch
		switch {
		case c == ';':
			if text != nil {
				endWord()
				return &RawStatement{Text: strings.TrimSpace(string(text)), Pos: start, Words: words}, nil
			}

		case c == '\'' || c == '"' || c == '`':
			begin()
			endWord()
			wordsDone = true
			pos := l.currentPos()
			text = append(text, c)
			var ok bool
			if text, ok = l.readQuoted(c, text); !ok {
				if l.err != nil {
					return nil, l.err
				}
				return nil, &SyntaxError{Pos: pos, Message: ErrUnterminatedString}
			}

		case c == '#':
			l.skipLineComment()
			separate()

		case c == '-' && l.dashComment():
			l.skipLineComment()
			separate()

		case c == '/' && l.peekChar() == '*':
			pos := l.currentPos()
			l.readChar() // skip '*'
			if !l.skipBlockComment() {
				if l.err != nil {
					return nil, l.err
				}
				return nil, &SyntaxError{Pos: pos, Message: ErrUnterminatedComment}
			}
			separate()

		case isSpace(c):
			endWord()
			if text != nil {
				text = append(text, c)
			}

		default:
			begin()
			if !wordsDone {
				if isWordChar(c) {
					word = append(word, c)
				} else {
					endWord()
					wordsDone = true
				}
			}
			text = append(text, c)
		}
	}

	if l.err != nil {
		return nil, l.err
	}
	if text != nil {
		// final statement without a terminating semicolon
		endWord()
		return &RawStatement{Text: strings.TrimSpace(string(text)), Pos: start, Words: words}, nil
	}
	return nil, io.EOF
}

// readQuoted appends the rest of a quoted token opened by quote to dst.
// Doubled quotes stay inside the token; backslash escapes apply to string
// literals but not to backtick identifiers. It reports false at end of input.
func (l *Lexer) readQuoted(quote byte, dst []byte) ([]byte, bool) {
	for l.readChar() {
		c := l.ch
		dst = append(dst, c)
		switch {
		case c == '\\' && quote != '`':
			if !l.readChar() {
				return dst, false
			}
			dst = append(dst, l.ch)
		case c == quote:
			if l.peekChar() != quote {
				return dst, true
			}
			l.readChar()
			dst = append(dst, l.ch)
		}
	}
	return dst, false
}

// dashComment reports whether the current '-' starts a "-- " line comment.
// MySQL requires whitespace (or end of line) after the two dashes.
func (l *Lexer) dashComment() bool {
	p, _ := l.r.Peek(2)
	if len(p) == 0 || p[0] != '-' {
		return false
	}
	return len(p) == 1 || isSpace(p[1])
}

// skipLineComment consumes input up to and including the next line feed.
func (l *Lexer) skipLineComment() {
	for l.readChar() {
		if l.ch == '\n' {
			return
		}
	}
}

// skipBlockComment consumes input up to and including the closing "*/".
// It reports false if the comment is not terminated.
func (l *Lexer) skipBlockComment() bool {
	for l.readChar() {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			return true
		}
	}
	return false
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isWordChar(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch == '_'
}
