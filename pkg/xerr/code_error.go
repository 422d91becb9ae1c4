package xerr

import "fmt"

// CodeError carries a business error code alongside the message.
type CodeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *CodeError) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

// New creates a new CodeError.
func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Message: msg}
}

// Common error codes.
const (
	OK                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

// Common predefined errors.
var (
	ErrSuccess     = New(OK, "Success")
	ErrServerError = New(InternalServerError, "internal error, please try again later")
	ErrParam       = New(BadRequest, "invalid parameters")
	ErrNotFound    = New(NotFound, "resource not found")
)
