// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

// Code is the failure discriminant surfaced to clients in result objects.
type Code string

const (
	CodeUnauthenticated  Code = "Unauthenticated"
	CodeSelfLikeRejected Code = "SelfLikeRejected"
	CodeDuplicateLike    Code = "DuplicateLike"
	CodeMessageTooLong   Code = "MessageTooLong"
	CodeInvalidRequest   Code = "InvalidRequest"
	CodeForbidden        Code = "Forbidden"
	CodeEmptyMessage     Code = "EmptyMessage"
	CodeNotFound         Code = "NotFound"
	CodePersistence      Code = "PersistenceError"
)

// Error is a domain failure. Err carries the underlying cause, if any.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a domain error with the given code.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func Unauthenticated() *Error {
	return New(CodeUnauthenticated, "User not authenticated")
}

func SelfLikeRejected() *Error {
	return New(CodeSelfLikeRejected, "Cannot like yourself")
}

func DuplicateLike() *Error {
	return New(CodeDuplicateLike, "You have already liked this")
}

func MessageTooLong(max int) *Error {
	return New(CodeMessageTooLong, fmt.Sprintf("message must be at most %d characters", max))
}

func Invalid(msg string) *Error {
	return New(CodeInvalidRequest, msg)
}

func Forbidden(msg string) *Error {
	return New(CodeForbidden, msg)
}

func EmptyMessage() *Error {
	return New(CodeEmptyMessage, "Message content cannot be empty")
}

func NotFound(msg string) *Error {
	return New(CodeNotFound, msg)
}

// Persistence wraps a storage failure. Context cancellation keeps its identity through Unwrap.
func Persistence(op string, err error) *Error {
	return &Error{Code: CodePersistence, Message: op, Err: err}
}

// CodeOf extracts the domain code of err. Unknown errors are persistence failures.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CodeNotFound
	}
	return CodePersistence
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	if err == nil {
		return ""
	}
	return "internal error"
}

// Map converts repo/infra/domain errors into gRPC-friendly status errors.
// Used where a result object cannot carry the failure (streams, interceptors).
func Map(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return status.Error(codes.NotFound, "record not found")

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled")
	}

	var de *Error
	if errors.As(err, &de) {
		return status.Error(grpcCode(de.Code), de.Message)
	}

	// fallback → bubble up error message for debugging
	return status.Error(codes.Internal, err.Error())
}

func grpcCode(c Code) codes.Code {
	switch c {
	case CodeUnauthenticated:
		return codes.Unauthenticated
	case CodeForbidden:
		return codes.PermissionDenied
	case CodeNotFound:
		return codes.NotFound
	case CodeDuplicateLike:
		return codes.AlreadyExists
	case CodeSelfLikeRejected, CodeMessageTooLong, CodeInvalidRequest, CodeEmptyMessage:
		return codes.InvalidArgument
	default:
		return codes.Internal
	}
}
