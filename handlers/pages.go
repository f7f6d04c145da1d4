package handlers

import (
	"errors"
	"net/url"

	"thought-echo/app"
	"thought-echo/middleware"
	"thought-echo/models"
	"thought-echo/services"
	"thought-echo/templates/pages"
	"thought-echo/validator"

	"github.com/gofiber/fiber/v2"
)

func redirectHome(c *fiber.Ctx, message string) error {
	target := "/"
	if message != "" {
		target += "?error=" + url.QueryEscape(message)
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

// HomePage renders the notes list
func HomePage(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data := pages.ListData{Error: c.Query("error")}

		notes, err := a.Notes.List(c.UserContext())
		if err != nil {
			a.Logger.Error("failed to load notes", "request_id", middleware.GetRequestID(c), "error", err)
			data.Error = "Failed to load notes"
			return render(c, statusFor(err), pages.NotesList(data))
		}
		data.Notes = notes

		return render(c, fiber.StatusOK, pages.NotesList(data))
	}
}

// NewNotePage renders an empty editor
func NewNotePage(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, fiber.StatusOK, pages.NoteEditor(pages.EditorData{Mode: pages.ModeCreate}))
	}
}

// EditNotePage renders the editor filled with a stored note
func EditNotePage(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := noteID(c)
		if err != nil {
			return redirectHome(c, "Failed to load note")
		}

		note, err := a.Notes.Get(c.UserContext(), id)
		if err != nil {
			if statusFor(err) >= fiber.StatusInternalServerError {
				a.Logger.Error("failed to load note", "request_id", middleware.GetRequestID(c), "id", id, "error", err)
			}
			return redirectHome(c, "Failed to load note")
		}

		return render(c, fiber.StatusOK, pages.NoteEditor(pages.EditorData{
			Mode:    pages.ModeEdit,
			NoteID:  note.ID,
			Title:   note.Title,
			Content: note.Content,
		}))
	}
}

// SubmitNewNote creates a note from the editor form
func SubmitNewNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data := pages.EditorData{
			Mode:    pages.ModeCreate,
			Title:   c.FormValue("title"),
			Content: c.FormValue("content"),
		}

		_, err := a.Notes.Create(c.UserContext(), models.NoteCreate{Title: data.Title, Content: data.Content})
		if err != nil {
			return editorError(c, a, data, err)
		}

		return redirectHome(c, "")
	}
}

// SubmitNoteEdit saves the editor form over an existing note
func SubmitNoteEdit(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := noteID(c)
		if err != nil {
			return redirectHome(c, "Note not found")
		}

		data := pages.EditorData{
			Mode:    pages.ModeEdit,
			NoteID:  id,
			Title:   c.FormValue("title"),
			Content: c.FormValue("content"),
		}

		_, err = a.Notes.Update(c.UserContext(), models.NoteUpdate{
			ID:      id,
			Title:   models.Some(data.Title),
			Content: models.Some(data.Content),
		})
		if err != nil {
			if services.IsNotFound(err) || services.IsInvalidID(err) {
				return redirectHome(c, "Note not found")
			}
			return editorError(c, a, data, err)
		}

		return redirectHome(c, "")
	}
}

// DeleteNotePage asks for confirmation before a note is deleted
func DeleteNotePage(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := noteID(c)
		if err != nil {
			return redirectHome(c, "Note not found")
		}

		note, err := a.Notes.Get(c.UserContext(), id)
		if err != nil {
			if statusFor(err) >= fiber.StatusInternalServerError {
				a.Logger.Error("failed to load note", "request_id", middleware.GetRequestID(c), "id", id, "error", err)
				return redirectHome(c, "Failed to load note")
			}
			return redirectHome(c, "Note not found")
		}

		return render(c, fiber.StatusOK, pages.DeleteConfirm(note.ID, note.Title))
	}
}

// SubmitNoteDelete removes a note and goes back to the list
func SubmitNoteDelete(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := noteID(c)
		if err != nil {
			return redirectHome(c, "")
		}

		if err := a.Notes.Delete(c.UserContext(), id); err != nil {
			a.Logger.Error("failed to delete note", "request_id", middleware.GetRequestID(c), "id", id, "error", err)
			return redirectHome(c, "Failed to delete note")
		}

		return redirectHome(c, "")
	}
}

// editorError re-renders the editor with the user's input kept.
func editorError(c *fiber.Ctx, a *app.App, data pages.EditorData, err error) error {
	status := statusFor(err)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		data.Errors = verrs
	} else {
		a.Logger.Error("failed to save note", "request_id", middleware.GetRequestID(c), "error", err)
		data.Error = "Failed to save note"
	}

	return render(c, status, pages.NoteEditor(data))
}
