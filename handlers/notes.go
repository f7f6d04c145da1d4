package handlers

import (
	"thought-echo/app"
	"thought-echo/models"

	"github.com/gofiber/fiber/v2"
)

// ListNotes returns every note, most recently updated first
func ListNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notes, err := a.Notes.List(c.UserContext())
		if err != nil {
			return apiError(c, a.Logger, "Failed to fetch notes", err)
		}

		return success(c, fiber.Map{"notes": notes})
	}
}

// GetNote returns a single note
func GetNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := noteID(c)
		if err != nil {
			return apiError(c, a.Logger, "", err)
		}

		note, err := a.Notes.Get(c.UserContext(), id)
		if err != nil {
			return apiError(c, a.Logger, "Failed to fetch note", err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// CreateNote creates a note from a JSON body
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.NoteCreate
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		note, err := a.Notes.Create(c.UserContext(), req)
		if err != nil {
			return apiError(c, a.Logger, "Failed to save note", err)
		}

		return created(c, fiber.Map{"note": note})
	}
}

// PatchNote applies a partial update. Fields missing from the body, or sent
// as null, keep their stored value. Only JSON bodies are accepted, since a
// form cannot tell an absent field from an empty one.
func PatchNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := noteID(c)
		if err != nil {
			return apiError(c, a.Logger, "", err)
		}

		if !c.Is("json") {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
				"error": "Content-Type must be application/json",
			})
		}

		var req models.NoteUpdate
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		req.ID = id

		note, err := a.Notes.Update(c.UserContext(), req)
		if err != nil {
			return apiError(c, a.Logger, "Failed to save note", err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// DeleteNote removes a note. Deleting a missing note still answers 204.
func DeleteNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := noteID(c)
		if err != nil {
			return apiError(c, a.Logger, "", err)
		}

		if err := a.Notes.Delete(c.UserContext(), id); err != nil {
			return apiError(c, a.Logger, "Failed to delete note", err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
