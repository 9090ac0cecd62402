package apierr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeUpstreamError   = "UPSTREAM_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "Not found", "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "Invalid request", "some or all request parameters are invalid")

	// ErrUnauthorized is returned when the admin API is called without a valid key.
	ErrUnauthorized = New(fiber.StatusUnauthorized, CodeUnauthorized, "Unauthorized", "a valid admin key is required")

	// ErrTooManyRequests is returned by the rate limiter.
	ErrTooManyRequests = New(fiber.StatusTooManyRequests, CodeTooManyRequests, "Too many requests", "your client is sending requests too frequently; stats are refreshed at most once an hour")

	// ErrUpstream is returned when the LeetCode statistics could not be fetched.
	ErrUpstream = New(fiber.StatusInternalServerError, CodeUpstreamError, "Failed to fetch LeetCode data", "upstream request failed")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "Internal server error", "internal server error occurred")
)

type Extras map[string]any

// Error is rendered as {"error": Title, "message": Message, ...Extras}.
type Error struct {
	StatusCode int
	ErrorCode  string
	Title      string
	Message    string
	Extras     *Extras
}

func New(statusCode int, errorCode string, title string, message string) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Title:      title,
		Message:    message,
	}
}

func (e Error) Msg(format string, parts ...any) *Error {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

// Wrap keeps the title and status of e and reports err as the message.
func (e Error) Wrap(err error) *Error {
	e.Message = err.Error()
	return &e
}

func (e Error) WithExtras(extras Extras) *Error {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations any) *Error {
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
