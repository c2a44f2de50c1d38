// Package parser turns a MySQL dump byte stream into core statements.
//
// # Usage
//
//	p := parser.New(file)
//	for {
//	    stmt, err := p.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // syntax or read error, fatal
//	    }
//	    // handle *core.CreateTable, *core.Insert, *core.Other
//	}
//
// The input is cut into statements by a streaming Lexer, so memory use is
// bounded by the largest single statement rather than by the dump size.
// CREATE TABLE statements are parsed with the TiDB MySQL grammar, which
// understands the full column and key syntax mysqldump emits (foreign keys,
// FULLTEXT keys, generated columns, table options). INSERT and REPLACE are
// parsed with github.com/xwb1989/sqlparser, whose literal nodes keep the digit
// text of numbers. Every other statement is reported as *core.Other without
// being parsed.
package parser

import (
	"fmt"
	"io"
	"strings"

	tidbparser "github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver" // value expressions in column defaults
	"github.com/xwb1989/sqlparser"

	"github.com/leapstack-labs/dump2tsv/pkg/core"
)

// Parser is a pull-based core.Source over a MySQL dump.
type Parser struct {
	lexer *Lexer
	ddl   *tidbparser.Parser // created on the first CREATE TABLE
	err   error              // sticky; set once the stream failed or ended
}

var _ core.Source = (*Parser)(nil)

// New creates a parser reading statements from r.
func New(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// Next returns the next statement, io.EOF once the input is exhausted, or a
// *SyntaxError. After the first error every call returns that same error.
func (p *Parser) Next() (core.Statement, error) {
	if p.err != nil {
		return nil, p.err
	}

	raw, err := p.lexer.NextStatement()
	if err != nil {
		if err != io.EOF {
			if _, ok := err.(*SyntaxError); !ok {
				err = fmt.Errorf("reading dump: %w", err)
			}
		}
		p.err = err
		return nil, err
	}

	stmt, err := p.parse(raw)
	if err != nil {
		p.err = err
		return nil, err
	}
	return stmt, nil
}

// parse classifies raw by its leading keywords and converts the statements
// the engine acts on.
func (p *Parser) parse(raw *RawStatement) (core.Statement, error) {
	switch {
	case isCreateTable(raw.Words):
		return p.parseCreateTable(raw)

	case len(raw.Words) > 0 && (raw.Words[0] == "INSERT" || raw.Words[0] == "REPLACE"):
		stmt, err := parseSQL(raw, keepPatternEscapes(raw.Text))
		if err != nil {
			return nil, err
		}
		ins, ok := stmt.(*sqlparser.Insert)
		if !ok {
			return nil, &SyntaxError{Pos: raw.Pos, Message: fmt.Sprintf(ErrUnexpectedStatement, raw.Words[0], stmt)}
		}
		return convertInsert(ins), nil

	default:
		return &core.Other{Verb: strings.Join(raw.Words, " ")}, nil
	}
}

func (p *Parser) parseCreateTable(raw *RawStatement) (core.Statement, error) {
	if p.ddl == nil {
		p.ddl = tidbparser.New()
	}
	stmt, err := p.ddl.ParseOneStmt(raw.Text, "", "")
	if err != nil {
		return nil, &SyntaxError{Pos: raw.Pos, Message: err.Error()}
	}
	create, ok := stmt.(*ast.CreateTableStmt)
	if !ok {
		return nil, &SyntaxError{Pos: raw.Pos, Message: fmt.Sprintf(ErrUnexpectedStatement, "CREATE TABLE", stmt)}
	}
	table, err := convertCreateTable(raw, create)
	if err != nil {
		return nil, err
	}
	return table, nil
}

func parseSQL(raw *RawStatement, text string) (sqlparser.Statement, error) {
	stmt, err := sqlparser.Parse(text)
	if err != nil {
		return nil, &SyntaxError{Pos: raw.Pos, Message: err.Error()}
	}
	return stmt, nil
}

func isCreateTable(words []string) bool {
	return len(words) >= 2 && words[0] == "CREATE" && words[1] == "TABLE"
}
