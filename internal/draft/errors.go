package draft

import (
	"errors"
	"fmt"
)

var (
	// ErrEntryNotFound is returned when a list entry id is not in the list.
	ErrEntryNotFound = errors.New("list entry not found")
	// ErrUnknownKind is returned for document types the draft does not support.
	ErrUnknownKind = errors.New("unknown document type")
	// ErrUnknownField is returned when a field does not belong to the active document type.
	ErrUnknownField = errors.New("unknown field")
	// ErrUnknownList is returned for list names the draft does not hold.
	ErrUnknownList = errors.New("unknown list")
)

// ValidationError indicates a list entry is missing a required field.
type ValidationError struct {
	List    ListName
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s entry: %s", e.List, e.Message)
}

// DecodeError indicates stored input data could not be mapped onto a draft.
type DecodeError struct {
	Field string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode input field %q: %v", e.Field, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
