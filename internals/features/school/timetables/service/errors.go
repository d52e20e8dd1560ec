package service

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind string

const (
	KindNotFound         ErrorKind = "NOT_FOUND"
	KindDuplicateEntry   ErrorKind = "DUPLICATE_ENTRY"
	KindConflict         ErrorKind = "CONFLICT"
	KindCapacityExceeded ErrorKind = "CAPACITY_EXCEEDED"
	KindValidation       ErrorKind = "VALIDATION_ERROR"
)

// TimetableError is a rule violation reported back to the caller as-is.
type TimetableError struct {
	Kind    ErrorKind
	Message string
	Entity  string              // only for KindNotFound
	Fields  map[string][]string // only for KindValidation
}

func (e *TimetableError) Error() string { return e.Message }

func NotFound(entity string) error {
	return &TimetableError{Kind: KindNotFound, Entity: entity, Message: entity + " not found"}
}

func DuplicateEntry() error {
	return &TimetableError{
		Kind:    KindDuplicateEntry,
		Message: "timetable already exists for this class, day and academic year",
	}
}

func Conflict(periodNumber int) error {
	return &TimetableError{
		Kind:    KindConflict,
		Message: fmt.Sprintf("teacher already teaches period %d elsewhere", periodNumber),
	}
}

func CapacityExceeded(current int) error {
	return &TimetableError{
		Kind:    KindCapacityExceeded,
		Message: fmt.Sprintf("teacher already has %d periods today", current),
	}
}

func Validation(fields map[string][]string) error {
	return &TimetableError{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// KindOf returns the rule kind of err, or "" for infrastructure errors.
func KindOf(err error) ErrorKind {
	var te *TimetableError
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}
