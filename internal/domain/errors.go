package domain

import (
	"errors"
	"fmt"
)

// Common error types
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// ErrCompanyExists is returned when a company is registered twice with the
// same contact email
type ErrCompanyExists struct {
	Email string
}

func (e *ErrCompanyExists) Error() string {
	return "A company with this email already exists"
}

// ErrCSVParse wraps a contact list that could not be turned into contacts
type ErrCSVParse struct {
	Reason string
}

func (e *ErrCSVParse) Error() string {
	return fmt.Sprintf("Error parsing CSV file: %s", e.Reason)
}

// ErrContentIncomplete is returned when an email is requested for a
// newsletter whose sections are not generated yet
var ErrContentIncomplete = errors.New("Newsletter content not fully generated yet")

// ErrNoRecipients is returned when a newsletter is sent to a company
// without contacts
var ErrNoRecipients = errors.New("No contacts found for this company")

// UserMessage returns the part of err that is safe to show to API callers
func UserMessage(err error) (string, bool) {
	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message, true
	}

	var exists *ErrCompanyExists
	if errors.As(err, &exists) {
		return exists.Error(), true
	}

	var csvErr *ErrCSVParse
	if errors.As(err, &csvErr) {
		return csvErr.Error(), true
	}

	var notFound *ErrNotFound
	if errors.As(err, &notFound) {
		return notFound.Error(), true
	}

	if errors.Is(err, ErrContentIncomplete) || errors.Is(err, ErrNoRecipients) {
		return err.Error(), true
	}

	return "", false
}
