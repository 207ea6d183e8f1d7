package scope

import "fmt"

// ContractError is the panic value for misuse of the scope API: closing
// out of order, using a closed scope, registering with no scope open.
type ContractError struct {
	Op  string
	Msg string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("scope contract violation in %s: %s", e.Op, e.Msg)
}

func violation(op, format string, args ...any) {
	panic(&ContractError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
