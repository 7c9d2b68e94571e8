package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Quote errors

type QuoteNotFoundError struct {
	*DomainError
	QuoteID string
}

func NewQuoteNotFoundError(quoteID string) *QuoteNotFoundError {
	return &QuoteNotFoundError{
		DomainError: NewDomainError(fmt.Sprintf("quote not found: %s", quoteID)),
		QuoteID:     quoteID,
	}
}

type RegionNotFoundError struct {
	*DomainError
	Code string
}

func NewRegionNotFoundError(code string) *RegionNotFoundError {
	return &RegionNotFoundError{
		DomainError: NewDomainError(fmt.Sprintf("region not found: %s", code)),
		Code:        code,
	}
}
