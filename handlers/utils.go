package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"thought-echo/middleware"
	"thought-echo/services"
	"thought-echo/validator"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func serverErrorWithDetails(c *fiber.Ctx, logger *slog.Logger, message string, err error) error {
	logger.Error("server error",
		"request_id", middleware.GetRequestID(c),
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

// statusFor maps a service error to the HTTP status it is reported with.
func statusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs), services.IsInvalidID(err):
		return fiber.StatusBadRequest
	case services.IsNotFound(err):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrNotInitialized):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// apiError writes err as a JSON error body. message is what a storage failure
// is reported as; the underlying error is only logged.
func apiError(c *fiber.Ctx, logger *slog.Logger, message string, err error) error {
	switch statusFor(err) {
	case fiber.StatusBadRequest:
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verrs.Error(), "fields": verrs})
		}
		return badRequest(c, "Invalid note id")
	case fiber.StatusNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Note not found"})
	case fiber.StatusServiceUnavailable:
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Note storage is not available"})
	default:
		return serverErrorWithDetails(c, logger, message, err)
	}
}

func noteID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("note id %q: %w", c.Params("id"), services.ErrInvalidNoteID)
	}
	return id, nil
}

func render(c *fiber.Ctx, status int, component templ.Component) error {
	c.Status(status)
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return component.Render(c.UserContext(), c.Response().BodyWriter())
}
