package compliance

import "fmt"

// InfraError marks a failure of the storage layer itself, as opposed to a
// business-rule finding or a single failed insert.
type InfraError struct {
	Op  string
	Err error
}

func (e *InfraError) Error() string {
	return fmt.Sprintf("infrastructure failure during %s: %v", e.Op, e.Err)
}

func (e *InfraError) Unwrap() error {
	return e.Err
}
