package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Error classes. Every error returned by this package wraps exactly one of
// them so the HTTP layer can map it with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrDatabase   = errors.New("database error")
)

var (
	ErrMemberNotFound     = fmt.Errorf("%w: member profile not found", ErrNotFound)
	ErrInsufficientPoints = fmt.Errorf("%w: insufficient loyalty points", ErrValidation)
	ErrSlotUnavailable    = fmt.Errorf("%w: slot is not available", ErrConflict)
	ErrInvalidTransition  = fmt.Errorf("%w: status does not allow this action", ErrConflict)
)

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// classify leaves already-classified errors alone and files everything else
// under ErrDatabase.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, class := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrForbidden, ErrDatabase} {
		if errors.Is(err, class) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrDatabase, err)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

func forbiddenf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}
