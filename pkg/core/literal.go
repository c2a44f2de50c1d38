package core

// Literal is a value appearing in an INSERT row.
// The set of implementations is closed: Number, NegativeNumber, QuotedString and Null.
type Literal interface {
	literalNode()
}

// Number is an unsigned numeric literal, kept as its original digit text.
type Number struct {
	Text string
}

func (Number) literalNode() {}

// NegativeNumber is a unary minus applied to a numeric literal.
// Text holds the digits without the sign.
type NegativeNumber struct {
	Text string
}

func (NegativeNumber) literalNode() {}

// QuotedString is a string literal with quotes stripped and escapes decoded.
type QuotedString struct {
	Text string
}

func (QuotedString) literalNode() {}

// Null is the SQL NULL literal.
type Null struct{}

func (Null) literalNode() {}
