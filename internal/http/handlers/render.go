package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"harvestdesk/internal/domain"
	applog "harvestdesk/internal/log"
)

const friendlyMessage = "Something went wrong. Please try again."

// statusFor maps a core failure kind to an HTTP status. Anything that is not
// a domain error is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUnresolved):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrPreconditionFailed):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidReference):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	}
	return fiber.StatusInternalServerError
}

// fail answers a refused or failed request. Domain errors are reported with
// their context; backend faults go to ErrorHandler, which hides them.
func fail(c *fiber.Ctx, action string, err error, fields map[string]any) error {
	de, ok := domain.AsError(err)
	if !ok {
		if errors.Is(err, context.DeadlineExceeded) {
			applog.Error(c, action+".timeout", err, fields)
			return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{"error": "request timed out"})
		}
		return err
	}
	c.Status(statusFor(err))
	applog.Warn(c, action+".reject", err, fields)
	body := fiber.Map{"error": de.Kind.Error(), "message": de.Error()}
	if de.Entity != "" {
		body["entity"] = de.Entity
	}
	if de.ID != "" {
		body["id"] = de.ID
	}
	if de.Field != "" {
		body["field"] = de.Field
	}
	return c.JSON(body)
}

// badBody reports a request body that could not be parsed at all.
func badBody(c *fiber.Ctx, action, entity string, err error) error {
	return fail(c, action, domain.Invalid(entity, "", "body", "malformed request body"), map[string]any{"parse": err.Error()})
}

// ErrorHandler logs unexpected errors and answers with a friendly message.
// Errors raised by fiber itself keep their status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": friendlyMessage})
}
