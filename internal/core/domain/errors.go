package domain

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInfrastructure ErrorKind = iota
	KindAccountIDExists
	KindPasswordMismatch
	KindBadRequest
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindAccountIDExists:
		return "account_id_exists"
	case KindPasswordMismatch:
		return "password_mismatch"
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "infrastructure"
	}
}

// UseCaseError is the single error type returned by use-case methods.
// Two UseCaseErrors match under errors.Is when their kinds are equal, so the
// sentinels below can be used to classify any returned error.
type UseCaseError struct {
	Kind   ErrorKind
	Reason string
	cause  error
}

var (
	ErrAccountIDExists  = &UseCaseError{Kind: KindAccountIDExists}
	ErrPasswordMismatch = &UseCaseError{Kind: KindPasswordMismatch}
	ErrUnauthorized     = &UseCaseError{Kind: KindUnauthorized}
	ErrBadRequest       = &UseCaseError{Kind: KindBadRequest}
	ErrInfrastructure   = &UseCaseError{Kind: KindInfrastructure}
)

func BadRequest(reason string) error {
	return &UseCaseError{Kind: KindBadRequest, Reason: reason}
}

// Infrastructure wraps a storage, hashing or signing failure. The cause stays
// reachable through errors.Unwrap for logging but never reaches PublicMessage.
func Infrastructure(err error) error {
	var uc *UseCaseError
	if errors.As(err, &uc) {
		return err
	}

	return &UseCaseError{Kind: KindInfrastructure, cause: err}
}

func (e *UseCaseError) Error() string {
	switch e.Kind {
	case KindInfrastructure:
		if e.cause != nil {
			return fmt.Sprintf("an unexpected infrastructure error occurred: %v", e.cause)
		}
		return "an unexpected infrastructure error occurred"
	case KindBadRequest:
		return "bad request: " + e.Reason
	default:
		return e.PublicMessage()
	}
}

// PublicMessage is the text safe to show to a client.
func (e *UseCaseError) PublicMessage() string {
	switch e.Kind {
	case KindAccountIDExists:
		return "Account ID already exists"
	case KindPasswordMismatch:
		return "The entered passwords do not match"
	case KindBadRequest:
		return e.Reason
	case KindUnauthorized:
		return "Unauthorized"
	default:
		return "An internal server error occurred"
	}
}

func (e *UseCaseError) Unwrap() error {
	return e.cause
}

func (e *UseCaseError) Is(target error) bool {
	t, ok := target.(*UseCaseError)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// KindOf classifies err. Errors that are not UseCaseErrors count as
// infrastructure failures.
func KindOf(err error) ErrorKind {
	var uc *UseCaseError
	if errors.As(err, &uc) {
		return uc.Kind
	}

	return KindInfrastructure
}
