package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a failure the caller can act on. Anything that is not an *Error
// is reported as an internal error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) error {
	return newError(KindBadRequest, format, args...)
}

func Unauthorized(format string, args ...any) error {
	return newError(KindUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) error {
	return newError(KindForbidden, format, args...)
}

func NotFound(format string, args ...any) error {
	return newError(KindNotFound, format, args...)
}

func Conflict(format string, args ...any) error {
	return newError(KindConflict, format, args...)
}

// KindOf unwraps err looking for an *Error.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

var kindStatus = map[Kind]int{
	KindBadRequest:   fiber.StatusBadRequest,
	KindUnauthorized: fiber.StatusUnauthorized,
	KindForbidden:    fiber.StatusForbidden,
	KindNotFound:     fiber.StatusNotFound,
	KindConflict:     fiber.StatusConflict,
}

func StatusFor(err error) int {
	if status, ok := kindStatus[KindOf(err)]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

// Raise writes err using the envelope matching its kind.
func Raise(context *fiber.Ctx, err error) error {
	switch KindOf(err) {
	case KindBadRequest:
		return RaiseBadRequestError(context, err.Error())
	case KindUnauthorized:
		return RaiseError(context, fiber.StatusUnauthorized, "authorization required", err.Error())
	case KindForbidden:
		return RaisePermissionsError(context, err.Error())
	case KindNotFound:
		return RaiseNotFoundError(context, err.Error())
	case KindConflict:
		return RaiseConflictError(context, err.Error())
	default:
		return RaiseInternalServerError(context, err.Error())
	}
}

func RaiseError(context *fiber.Ctx, status int, message string, data string) error {
	return context.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    data})
}

func RaisePermissionsError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusForbidden, "lack of permissions", data)
}

func RaiseInternalServerError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusInternalServerError, "internal error", data)
}

func RaiseBadRequestError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusBadRequest, "bad request", data)
}

func RaiseNotFoundError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusNotFound, "resource not found", data)
}

func RaiseConflictError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusConflict, "conflict", data)
}
