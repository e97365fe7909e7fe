package handlers

import (
	"crispybid/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps the error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
