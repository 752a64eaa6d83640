package gerberbasetypes

import (
	"errors"
	"fmt"
)

// ErrCode is a machine-readable error code.
type ErrCode string

const (
	// number can not be represented in the digit budget of the format, NaN or Inf
	ErrCodeNumberFormat ErrCode = "NUMBER_FORMAT"
	// aperture number below MinApertureCode
	ErrCodeInvalidApertureCode ErrCode = "INVALID_APERTURE_CODE"
	// local shape constraint of an aperture template or macro primitive
	ErrCodeInvalidTemplateParameter ErrCode = "INVALID_TEMPLATE_PARAMETER"
	// attribute name or value list is malformed
	ErrCodeInvalidAttributeValue ErrCode = "INVALID_ATTRIBUTE_VALUE"
	// any other operand out of range (SR repeats, LS scale, ...)
	ErrCodeInvalidParameter ErrCode = "INVALID_PARAMETER"
	// command or enum value with no Gerber representation
	ErrCodeInvalidCommand ErrCode = "INVALID_COMMAND"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    ErrCode
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

func NewError(code ErrCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func WrapError(code ErrCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the chain of err holds an *Error with the given code.
func Is(err error, code ErrCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of the first *Error in the chain, or "" if there is none.
func GetCode(err error) ErrCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
