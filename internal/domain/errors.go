package domain

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is compares by Code so wrapped or re-worded errors still match errors.Is.
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

const (
	CodeNotFound         = "NOT_FOUND"
	CodeBadRequest       = "BAD_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeSlugExists       = "SLUG_EXISTS"
	CodeEmailExists      = "EMAIL_EXISTS"
	CodeInvalidSignature = "INVALID_SIGNATURE"
	CodeInvalidPayload   = "INVALID_PAYLOAD"
)

var (
	// ErrNotFound - resource does not exist
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "resource not found",
	}

	ErrBadRequest = &DomainError{
		Code:    CodeBadRequest,
		Message: "bad request",
	}

	ErrUnauthorized = &DomainError{
		Code:    CodeUnauthorized,
		Message: "authentication required",
	}

	ErrForbidden = &DomainError{
		Code:    CodeForbidden,
		Message: "insufficient permissions",
	}

	// ErrSlugExists - another article already uses the slug
	ErrSlugExists = &DomainError{
		Code:    CodeSlugExists,
		Message: "article slug already exists",
	}

	ErrEmailExists = &DomainError{
		Code:    CodeEmailExists,
		Message: "email already registered",
	}

	// ErrInvalidSignature - webhook body does not match the signature header
	ErrInvalidSignature = &DomainError{
		Code:    CodeInvalidSignature,
		Message: "webhook signature mismatch",
	}

	ErrInvalidPayload = &DomainError{
		Code:    CodeInvalidPayload,
		Message: "invalid payload",
	}
)

// NewNotFoundError builds a NOT_FOUND error naming the missing resource.
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewBadRequestError(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    CodeBadRequest,
		Message: fmt.Sprintf(format, args...),
	}
}

func NewInvalidPayloadError(reason string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidPayload,
		Message: "invalid payload: " + reason,
	}
}
