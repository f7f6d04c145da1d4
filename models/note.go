package models

import "time"

// Note is a single user-authored text note as persisted by the store.
type Note struct {
	ID        int64     `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// NoteCreate is the input for creating a note. The store assigns the id and timestamps.
type NoteCreate struct {
	Title   string `json:"title" form:"title" validate:"notblank,max=100"`
	Content string `json:"content" form:"content" validate:"notblank"`
}

// NoteUpdate is a partial update. Absent fields keep their persisted value.
type NoteUpdate struct {
	ID      int64            `json:"id"`
	Title   Optional[string] `json:"title"`
	Content Optional[string] `json:"content"`
}
