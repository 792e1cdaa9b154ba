package httpapi

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/storefront/internal/common"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned for malformed or invalid request input.
// Details are sorted by field name.
type ValidationError struct {
	Details []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+": "+d.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(fields map[string]string) *ValidationError {
	e := &ValidationError{Details: make([]FieldError, 0, len(fields))}
	for f, m := range fields {
		e.Details = append(e.Details, FieldError{Field: f, Message: m})
	}
	sort.Slice(e.Details, func(i, j int) bool { return e.Details[i].Field < e.Details[j].Field })
	return e
}

func fieldError(field, message string) *ValidationError {
	return newValidationError(map[string]string{field: message})
}

// fromValidation converts ozzo-validation errors into a ValidationError.
func fromValidation(err error) error {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for f, e := range verrs {
			if e != nil {
				fields[f] = e.Error()
			}
		}
		return newValidationError(fields)
	}

	return fieldError("body", err.Error())
}

type errorBody struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details"`
}

type messageBody struct {
	Message string `json:"message"`
}

// errorHandler is the single place where errors become HTTP responses.
// Unexpected errors are logged in full and answered with a generic 500.
func (s *HTTPServer) errorHandler(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{Error: "validation failed", Details: verr.Details})
	}

	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return c.Status(ferr.Code).JSON(messageBody{Message: ferr.Message})
	}

	switch {
	case errors.Is(err, common.ErrAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(messageBody{Message: "email already registered"})
	case errors.Is(err, common.ErrorUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(messageBody{Message: "invalid email or password"})
	case errors.Is(err, common.ErrMissingToken):
		return c.Status(fiber.StatusUnauthorized).JSON(messageBody{Message: "missing token"})
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return c.Status(fiber.StatusForbidden).JSON(messageBody{Message: "invalid or expired token"})
	case errors.Is(err, common.ErrorNotFound):
		return c.Status(fiber.StatusNotFound).JSON(messageBody{Message: "not found"})
	}

	s.logger.Error(c.UserContext(), "request failed",
		"method", c.Method(), "path", c.Path(), "error", err.Error())

	return c.Status(fiber.StatusInternalServerError).JSON(messageBody{Message: "internal server error"})
}
