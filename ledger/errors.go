package ledger

import "fmt"

// ValidationError: bad input, rejected before any store access.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func errValidation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthorizationError: the caller does not own the requested scope.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

// PreconditionError: the ledger is not in a state the operation requires
// (e.g. netting without both sides open). Nothing is persisted.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return e.Msg }

func errPrecondition(format string, args ...any) error {
	return &PreconditionError{Msg: fmt.Sprintf(format, args...)}
}

// StorageError wraps a failed transaction. Multi-entry writes roll back as a
// whole, so a StorageError never means a partially applied write.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// wrapStorage keeps domain errors and record-not-found as-is so callers can
// map them, and tags everything else as a storage failure.
func wrapStorage(err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *ValidationError, *AuthorizationError, *PreconditionError, *StorageError:
		return err
	}
	return &StorageError{Err: err}
}
