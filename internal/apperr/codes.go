package apperr

import "github.com/gofiber/fiber/v2"

// Code is a machine-readable error code returned to API clients.
type Code string

const (
	CodeNotFound          Code = "NOT_FOUND"
	CodeForbidden         Code = "FORBIDDEN"
	CodeInvalidState      Code = "INVALID_STATE"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeCapacityExceeded  Code = "CAPACITY_EXCEEDED"
	CodeAlreadyMember     Code = "ALREADY_MEMBER"
	CodeInvalidArgument   Code = "INVALID_ARGUMENT"
	CodeUnauthenticated   Code = "UNAUTHENTICATED"
	CodeConfiguration     Code = "CONFIGURATION"
	CodeInternal          Code = "INTERNAL"
)

// HTTPStatus maps the code to the status the HTTP layer answers with.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeInvalidState, CodeInvalidTransition, CodeCapacityExceeded, CodeAlreadyMember:
		return fiber.StatusConflict
	case CodeInvalidArgument:
		return fiber.StatusBadRequest
	case CodeUnauthenticated:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
