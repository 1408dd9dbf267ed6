package registry

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode classifies a ServiceError.
type ErrorCode int

const (
	ErrUnknown ErrorCode = iota
	ErrNotFound
	ErrForbidden
	ErrInvalidParameter
	ErrConflict
)

// String returns the string representation of the ErrorCode.
func (c ErrorCode) String() string {
	switch c {
	case ErrNotFound:
		return "NotFound"
	case ErrForbidden:
		return "Forbidden"
	case ErrInvalidParameter:
		return "InvalidParameter"
	case ErrConflict:
		return "Conflict"
	default:
		return "Unknown"
	}
}

// ServiceError is the failure attached to a failed Request.
type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func serviceErrorf(code ErrorCode, format string, args ...any) *ServiceError {
	return &ServiceError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// asServiceError classifies err, keeping an existing *ServiceError as is.
func asServiceError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return &ServiceError{Code: ErrUnknown, Message: err.Error()}
}

// PackageServiceError reports a package the service failed to add.
type PackageServiceError struct {
	Identifier string
	Code       ErrorCode
	Message    string
}

func (e *PackageServiceError) Error() string {
	return fmt.Sprintf("adding %s: %s", e.Identifier, e.Message)
}

// Unwrap exposes the service failure.
func (e *PackageServiceError) Unwrap() error {
	return &ServiceError{Code: e.Code, Message: e.Message}
}

// PackageFileNotFoundError reports a package archive that does not exist.
type PackageFileNotFoundError struct {
	Path string
}

func (e *PackageFileNotFoundError) Error() string {
	return "package file not found: " + e.Path
}

// Unwrap makes errors.Is(err, fs.ErrNotExist) hold.
func (e *PackageFileNotFoundError) Unwrap() error { return fs.ErrNotExist }
