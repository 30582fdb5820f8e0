package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/quenchapp/quench/internal/logger"
)

// ValidationError reports malformed schedule input. It is always returned
// before any side effect has happened.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// StorageError wraps a persistence read/write failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// TriggerError wraps a trigger-subsystem registration or cancellation
// failure. A save that hits one must leave the previous schedule armed.
type TriggerError struct {
	Op  string
	Err error
}

func (e *TriggerError) Error() string {
	return fmt.Sprintf("trigger %s: %v", e.Op, e.Err)
}

func (e *TriggerError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsTrigger reports whether err is (or wraps) a TriggerError.
func IsTrigger(err error) bool {
	var te *TriggerError
	return errors.As(err, &te)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
