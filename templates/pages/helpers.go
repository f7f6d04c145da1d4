// Package pages renders the list, editor and delete screens of the local web UI.
package pages

import (
	"fmt"
	"time"

	"thought-echo/models"
	"thought-echo/validator"

	"github.com/a-h/templ"
)

const previewLength = 100

// ListData is what the list screen shows.
type ListData struct {
	Notes []models.Note
	Error string
}

type EditorMode string

const (
	ModeCreate EditorMode = "create"
	ModeEdit   EditorMode = "edit"
)

// EditorData is what the editor screen shows.
type EditorData struct {
	Mode    EditorMode
	NoteID  int64
	Title   string
	Content string
	Errors  validator.ValidationErrors
	Error   string
}

func (d EditorData) heading() string {
	if d.Mode == ModeEdit {
		return "Edit Note"
	}
	return "New Note"
}

func (d EditorData) action() templ.SafeURL {
	if d.Mode == ModeEdit {
		return templ.SafeURL(fmt.Sprintf("/notes/%d", d.NoteID))
	}
	return templ.SafeURL("/notes")
}

func editURL(id int64) templ.SafeURL {
	return templ.SafeURL(fmt.Sprintf("/notes/%d/edit", id))
}

func deleteURL(id int64) templ.SafeURL {
	return templ.SafeURL(fmt.Sprintf("/notes/%d/delete", id))
}

// TruncateContent shortens content to max characters, marking the cut with "...".
func TruncateContent(content string, max int) string {
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}

// FormatDate renders a timestamp in local time for display.
func FormatDate(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 15:04")
}
