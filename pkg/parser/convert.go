package parser

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/xwb1989/sqlparser"

	"github.com/leapstack-labs/dump2tsv/pkg/core"
)

// convertCreateTable extracts the table name and declared column order.
// Index, key and constraint definitions are not columns and are skipped.
func convertCreateTable(raw *RawStatement, stmt *ast.CreateTableStmt) (*core.CreateTable, error) {
	name := stmt.Table.Name.O
	if len(stmt.Cols) == 0 {
		// CREATE TABLE ... LIKE, or ... AS SELECT without a column list
		return nil, &SyntaxError{Pos: raw.Pos, Message: fmt.Sprintf(ErrNoColumnDefinitions, name)}
	}

	columns := make([]string, 0, len(stmt.Cols))
	for _, col := range stmt.Cols {
		columns = append(columns, col.Name.Name.O)
	}
	return &core.CreateTable{Name: name, Columns: columns}, nil
}

// keepPatternEscapes doubles the backslash of \% and \_ inside string
// literals. MySQL keeps the backslash for those two sequences, while the
// INSERT grammar would decode them to a bare % or _.
func keepPatternEscapes(text string) string {
	if !strings.Contains(text, `\%`) && !strings.Contains(text, `\_`) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 8)
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote == 0:
			if c == '\'' || c == '"' || c == '`' {
				quote = c
			}
		case c == quote:
			quote = 0
		case c == '\\' && quote != '`' && i+1 < len(text):
			next := text[i+1]
			if next == '%' || next == '_' {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
			b.WriteByte(next)
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// convertInsert converts a multi-row INSERT ... VALUES statement.
// Any other row source is outside what a dump contains.
func convertInsert(ins *sqlparser.Insert) *core.Insert {
	table := ins.Table.Name.String()

	values, ok := ins.Rows.(sqlparser.Values)
	if !ok {
		core.Violatef("INSERT into %q does not use a VALUES list: %s", table, sqlparser.String(ins.Rows))
	}

	rows := make([][]core.Literal, 0, len(values))
	for _, tuple := range values {
		row := make([]core.Literal, 0, len(tuple))
		for _, expr := range tuple {
			row = append(row, convertLiteral(expr))
		}
		rows = append(rows, row)
	}
	return &core.Insert{Table: table, Rows: rows}
}

// convertLiteral maps a value expression onto the closed core.Literal set.
//
// The MySQL grammar folds a minus sign into integer literals ("-7" is an
// IntVal with text "-7"); other negative numbers arrive as a unary minus.
func convertLiteral(expr sqlparser.Expr) core.Literal {
	switch v := expr.(type) {
	case *sqlparser.SQLVal:
		switch v.Type {
		case sqlparser.IntVal, sqlparser.FloatVal:
			if len(v.Val) > 1 && v.Val[0] == '-' {
				return core.NegativeNumber{Text: string(v.Val[1:])}
			}
			return core.Number{Text: string(v.Val)}
		case sqlparser.StrVal:
			return core.QuotedString{Text: string(v.Val)}
		}
	case *sqlparser.NullVal:
		return core.Null{}
	case *sqlparser.UnaryExpr:
		if v.Operator == sqlparser.UMinusStr {
			if n, ok := v.Expr.(*sqlparser.SQLVal); ok && isUnsignedNumber(n) {
				return core.NegativeNumber{Text: string(n.Val)}
			}
		}
	}
	core.Violatef("unsupported value expression %s", sqlparser.String(expr))
	return nil
}

func isUnsignedNumber(v *sqlparser.SQLVal) bool {
	if v.Type != sqlparser.IntVal && v.Type != sqlparser.FloatVal {
		return false
	}
	return len(v.Val) > 0 && v.Val[0] != '-'
}
