package setup

import (
	"thought-echo/app"
	"thought-echo/handlers"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	fiberApp.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	// Screens
	fiberApp.Get("/", handlers.HomePage(application))
	fiberApp.Get("/notes/new", handlers.NewNotePage(application))
	fiberApp.Get("/notes/:id/edit", handlers.EditNotePage(application))
	fiberApp.Get("/notes/:id/delete", handlers.DeleteNotePage(application))
	fiberApp.Post("/notes", handlers.SubmitNewNote(application))
	fiberApp.Post("/notes/:id", handlers.SubmitNoteEdit(application))
	fiberApp.Post("/notes/:id/delete", handlers.SubmitNoteDelete(application))

	api := fiberApp.Group("/api")
	api.Get("/notes", handlers.ListNotes(application))
	api.Post("/notes", handlers.CreateNote(application))
	api.Get("/notes/:id", handlers.GetNote(application))
	api.Patch("/notes/:id", handlers.PatchNote(application))
	api.Delete("/notes/:id", handlers.DeleteNote(application))
}
