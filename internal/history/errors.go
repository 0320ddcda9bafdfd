package history

import "fmt"

// RepositoryError represents database operation failures
type RepositoryError struct {
	Operation string
	Cause     error
}

func (e RepositoryError) Error() string {
	return fmt.Sprintf("history repository error during %s: %v", e.Operation, e.Cause)
}

func (e RepositoryError) Unwrap() error {
	return e.Cause
}

// wrapRepositoryError wraps a database error with the failing operation
func wrapRepositoryError(err error, operation string) error {
	if err == nil {
		return nil
	}
	return RepositoryError{Operation: operation, Cause: err}
}
