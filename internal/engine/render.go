package engine

import (
	"github.com/leapstack-labs/dump2tsv/pkg/core"
	"github.com/leapstack-labs/dump2tsv/pkg/tsv"
)

// nullText is what a NULL literal renders as.
const nullText = "null"

// WriteLiteral renders lit as one escaped, tab-terminated field.
//
//	Number          digits verbatim
//	NegativeNumber  "-" followed by the digits
//	QuotedString    the unquoted content
//	Null            null
//
// Any other Literal panics with *core.ContractViolation.
func WriteLiteral(w *tsv.Writer, lit core.Literal) error {
	switch v := lit.(type) {
	case core.Number:
		return w.WriteField(v.Text)
	case core.NegativeNumber:
		if err := w.WriteEscaped("-"); err != nil {
			return err
		}
		return w.WriteField(v.Text)
	case core.QuotedString:
		return w.WriteField(v.Text)
	case core.Null:
		return w.WriteField(nullText)
	default:
		core.Violatef("unsupported literal %T", lit)
		return nil
	}
}

// WriteRow renders every literal of row in order and terminates the line.
func WriteRow(w *tsv.Writer, row []core.Literal) error {
	for _, lit := range row {
		if err := WriteLiteral(w, lit); err != nil {
			return err
		}
	}
	return w.EndRow()
}
