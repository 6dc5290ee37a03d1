package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a failure of the exchange pipeline or of an order operation.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeEmptyPayload     = "EMPTY_PAYLOAD"
	ErrCodeMalformedPayload = "MALFORMED_PAYLOAD"
	ErrCodeUnknownStatus    = "UNKNOWN_STATUS"
	ErrCodeSigningFailed    = "SIGNING_FAILED"
	ErrCodeMissingOrderID   = "MISSING_ORDER_ID"
	ErrCodeEscalationFailed = "ESCALATION_FAILED"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
)

func NewEmptyPayloadError() *DomainError {
	return &DomainError{
		Code:    ErrCodeEmptyPayload,
		Message: "empty payload",
	}
}

func NewMalformedPayloadError(reason string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeMalformedPayload,
		Message: fmt.Sprintf("payload error: %s", reason),
		Err:     err,
	}
}

func NewUnknownStatusError(code int) *DomainError {
	return &DomainError{
		Code:    ErrCodeUnknownStatus,
		Message: fmt.Sprintf("unexpected status: %d", code),
	}
}

func NewSigningFailedError() *DomainError {
	return &DomainError{
		Code:    ErrCodeSigningFailed,
		Message: "signing request failed",
	}
}

func NewMissingOrderIDError() *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingOrderID,
		Message: "missing pay order id in payload",
	}
}

func NewValidationError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidationFailed,
		Message: "invalid request",
		Err:     err,
	}
}

// EscalationError is returned when the authoritative status lookup fails.
// Technical holds the transport/API detail, Friendly the message fit for end users.
type EscalationError struct {
	Technical string
	Friendly  string
	Err       error
}

func (e *EscalationError) Error() string {
	return e.Friendly
}

func (e *EscalationError) Unwrap() error {
	return e.Err
}

const defaultFriendlyMessage = "status could not be retrieved"

// NewEscalationFailedError wraps a status lookup failure. The friendly text comes from
// FriendlyMessage() when the cause has one; transport details never end up in it.
func NewEscalationFailedError(err error) *DomainError {
	escErr := &EscalationError{Technical: err.Error(), Friendly: defaultFriendlyMessage, Err: err}

	var friendly interface{ FriendlyMessage() string }
	if errors.As(err, &friendly) && friendly.FriendlyMessage() != "" {
		escErr.Friendly = friendly.FriendlyMessage()
	}

	return &DomainError{
		Code:    ErrCodeEscalationFailed,
		Message: "api retrieval error",
		Err:     escErr,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
