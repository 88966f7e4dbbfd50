// Package apperr is the error taxonomy every handler speaks: validation
// failures carry the full list of field violations, reference and target
// misses map to 404, duplicate associations and blocked deletions to 409.
// Persistence errors are re-classified here so no caller ever inspects a raw
// storage error.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindInternal
)

// FieldViolation is one field-level validation failure. All violations of a
// payload are reported together, not just the first.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind       Kind
	Message    string
	Violations []FieldViolation
	// Existing is the already-stored row echoed back on duplicate-association
	// conflicts so clients can report idempotently.
	Existing interface{}
}

func (e *Error) Error() string {
	if e.Kind == KindValidation {
		return fmt.Sprintf("validation failed (%d violations)", len(e.Violations))
	}
	return e.Message
}

func Validation(violations []FieldViolation) *Error {
	return &Error{Kind: KindValidation, Violations: violations}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func ConflictWith(existing interface{}, format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...), Existing: existing}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: err.Error()}
}

// FromDB translates a persistence error into the taxonomy. GORM's translated
// errors are the backstop for races that slip past the explicit pre-checks:
// a duplicate key or foreign-key violation still surfaces as a 409 instead of
// leaking the driver error.
func FromDB(err error) *Error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("record not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict("a record with these values already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Conflict("a referenced record does not exist")
	default:
		return Internal(err)
	}
}

// Respond writes err to the client with the status mapping of the taxonomy.
func Respond(c *fiber.Ctx, err error) error {
	var e *Error
	if !errors.As(err, &e) {
		e = Internal(err)
	}

	switch e.Kind {
	case KindValidation:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": e.Violations})
	case KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": e.Message})
	case KindConflict:
		body := fiber.Map{"error": e.Message}
		if e.Existing != nil {
			body["existing"] = e.Existing
		}
		return c.Status(fiber.StatusConflict).JSON(body)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": e.Message})
	}
}
