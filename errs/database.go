package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// StorageError reports that the durable layer was unreachable or rejected an
// operation.
type StorageError struct {
	Op     string
	Entity string
	Err    error
}

func NewStorageError(op, entity string, cause error) *StorageError {
	return &StorageError{Op: op, Entity: entity, Err: cause}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsStorageError(err error) bool {
	var sErr *StorageError
	return errors.As(err, &sErr)
}

// NewDatabaseError converts a storage failure into a 500. The driver message
// is kept in Cause for the logs.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    fmt.Sprintf("Failed to %s %s", operation, entity),
		Cause:      cause,
	}
}
