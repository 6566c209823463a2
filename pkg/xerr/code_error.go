package xerr

import "fmt"

// CodeError carries an HTTP-like status code alongside the message.
type CodeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Message: msg}
}

const (
	OK                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
	UpstreamUnavailable = 502
)

var (
	ErrSuccess      = New(OK, "Success")
	ErrServerError  = New(InternalServerError, "internal server error")
	ErrParam        = New(BadRequest, "invalid parameters")
	ErrUnauthorized = New(Unauthorized, "unauthorized")
	ErrForbidden    = New(Forbidden, "forbidden")
)

// NotFoundf builds a NotFound error for a missing entity.
func NotFoundf(format string, args ...interface{}) *CodeError {
	return New(NotFound, fmt.Sprintf(format, args...))
}

// Upstreamf builds an UpstreamUnavailable error for a failed collaborator call.
func Upstreamf(format string, args ...interface{}) *CodeError {
	return New(UpstreamUnavailable, fmt.Sprintf(format, args...))
}
