package core

import "fmt"

// ContractViolation is the panic value raised when the input has a shape the
// dump is guaranteed never to contain, such as an INSERT into a table with no
// prior CREATE TABLE. It is not meant to be recovered.
type ContractViolation struct {
	Message string
}

func (e *ContractViolation) Error() string {
	return "contract violation: " + e.Message
}

// Violatef panics with a ContractViolation built from format and args.
func Violatef(format string, args ...any) {
	panic(&ContractViolation{Message: fmt.Sprintf(format, args...)})
}
