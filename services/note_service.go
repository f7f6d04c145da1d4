package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"thought-echo/models"
	"thought-echo/validator"
)

const (
	titleRules   = "notblank,max=100"
	contentRules = "notblank"
)

// NoteService handles business logic for notes: it trims and validates input
// before anything reaches the store.
type NoteService struct {
	store     NoteStore
	validator *validator.Validator
	logger    *slog.Logger
}

// NewNoteService creates a new note service
func NewNoteService(store NoteStore, v *validator.Validator, logger *slog.Logger) *NoteService {
	if v == nil {
		v = validator.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteService{
		store:     store,
		validator: v,
		logger:    logger,
	}
}

// Create validates and persists a new note
func (ns *NoteService) Create(ctx context.Context, in models.NoteCreate) (*models.Note, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)

	if err := ns.validator.Validate(&in); err != nil {
		return nil, err
	}

	note, err := ns.store.Create(ctx, in)
	if err != nil {
		ns.logger.Error("failed to create note", "error", err)
		return nil, err
	}

	return note, nil
}

// Update validates the fields present in the patch and applies it
func (ns *NoteService) Update(ctx context.Context, in models.NoteUpdate) (*models.Note, error) {
	var errs validator.ValidationErrors
	var err error

	if title, ok := in.Title.Get(); ok {
		title = strings.TrimSpace(title)
		in.Title = models.Some(title)
		if errs, err = collectInvalid(errs, ns.validator.ValidateField("title", title, titleRules)); err != nil {
			return nil, err
		}
	}
	if content, ok := in.Content.Get(); ok {
		content = strings.TrimSpace(content)
		in.Content = models.Some(content)
		if errs, err = collectInvalid(errs, ns.validator.ValidateField("content", content, contentRules)); err != nil {
			return nil, err
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	note, err := ns.store.Update(ctx, in)
	if err != nil {
		if !IsNotFound(err) && !IsInvalidID(err) {
			ns.logger.Error("failed to update note", "id", in.ID, "error", err)
		}
		return nil, err
	}

	return note, nil
}

// Get retrieves a single note
func (ns *NoteService) Get(ctx context.Context, id int64) (*models.Note, error) {
	return ns.store.GetByID(ctx, id)
}

// List retrieves all notes, most recently updated first
func (ns *NoteService) List(ctx context.Context) ([]models.Note, error) {
	return ns.store.GetAll(ctx)
}

// Delete removes a note. Deleting a note that does not exist succeeds.
func (ns *NoteService) Delete(ctx context.Context, id int64) error {
	return ns.store.Delete(ctx, id)
}

// collectInvalid appends field failures to errs. Any other error is returned
// as is so the caller can stop.
func collectInvalid(errs validator.ValidationErrors, err error) (validator.ValidationErrors, error) {
	if err == nil {
		return errs, nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return append(errs, fieldErrs...), nil
	}
	return errs, err
}
