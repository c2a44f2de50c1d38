package core

// Statement is a parsed unit from a dump.
// The set of implementations is closed: CreateTable, Insert and Other.
type Statement interface {
	statementNode()
}

// CreateTable declares a table and the order of its columns.
type CreateTable struct {
	Name    string
	Columns []string
}

func (*CreateTable) statementNode() {}

// Insert carries the literal rows of a multi-row INSERT ... VALUES statement.
type Insert struct {
	Table string
	Rows  [][]Literal
}

func (*Insert) statementNode() {}

// Other is any statement the engine does not act on (SET, DROP, LOCK TABLES, ...).
type Other struct {
	// Verb is the leading keyword(s) of the statement, upper-cased.
	Verb string
}

func (*Other) statementNode() {}

// Source produces statements one at a time.
//
// Next returns io.EOF once the stream is exhausted. Any other error is fatal
// to the consumer; a Source is not restartable after it returned an error.
type Source interface {
	Next() (Statement, error)
}
