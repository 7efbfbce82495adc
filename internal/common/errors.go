package common

import (
	"errors"
	"fmt"
)

// ErrorKind identifies one of the expected failures a request can end in.
type ErrorKind int

const (
	KindMalformedID ErrorKind = iota + 1
	KindValidation
	KindUniqueness
	KindAuthenticationRequired
	KindInvalidToken
	KindUnknownUser
	KindNotFound
	KindUnauthorized
	KindInvalidCredentials
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformedID:
		return "malformed_id"
	case KindValidation:
		return "validation"
	case KindUniqueness:
		return "uniqueness"
	case KindAuthenticationRequired:
		return "authentication_required"
	case KindInvalidToken:
		return "invalid_token"
	case KindUnknownUser:
		return "unknown_user"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidCredentials:
		return "invalid_credentials"
	default:
		return "unknown"
	}
}

// Error is an expected failure. Message is safe to show to the client.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// AsError reports whether err wraps a *Error and returns it.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err wraps a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}

func NewMalformedIDError() *Error {
	return &Error{Kind: KindMalformedID, Message: "Malformed id"}
}

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewUniquenessError(field string) *Error {
	return &Error{Kind: KindUniqueness, Message: fmt.Sprintf("expected `%s` to be unique", field)}
}

func NewAuthenticationRequiredError() *Error {
	return &Error{Kind: KindAuthenticationRequired, Message: "Authorization required"}
}

// NewInvalidTokenError carries the verifier specific reason, e.g. "jwt malformed" or "Token expired".
func NewInvalidTokenError(reason string) *Error {
	return &Error{Kind: KindInvalidToken, Message: reason}
}

func NewUnknownUserError() *Error {
	return &Error{Kind: KindUnknownUser, Message: "Invalid user"}
}

// NewNotFoundError takes the resource name as it should appear to the client ("Blog", "User").
func NewNotFoundError(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func NewUnauthorizedError() *Error {
	return &Error{Kind: KindUnauthorized, Message: "Unauthorized command"}
}

func NewInvalidCredentialsError() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: "Invalid username or password"}
}
