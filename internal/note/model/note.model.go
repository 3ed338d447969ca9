package model

import (
	"fmt"
	"strings"
	"time"

	authmodel "notetaker/internal/auth/model"
	commentmodel "notetaker/internal/comment/model"
	"notetaker/internal/note/query"
	"notetaker/pkg/apperror"
)

const maxTitleLength = 100

type Note struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title"`
	Content   string                 `json:"content"`
	IsPublic  bool                   `json:"isPublic"`
	AuthorID  string                 `json:"authorId"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
	Author    authmodel.Profile      `json:"author"`
	Comments  []commentmodel.Comment `json:"comments"`
	Shares    []Share                `json:"shares"`
}

type Share struct {
	ID           string            `json:"id"`
	NoteID       string            `json:"noteId"`
	SharedWithID string            `json:"sharedWithId"`
	CreatedAt    time.Time         `json:"createdAt"`
	SharedWith   authmodel.Profile `json:"sharedWith"`
}

type NotesPage struct {
	Notes      []Note         `json:"notes"`
	Pagination query.PageInfo `json:"pagination"`
}

type CreateNoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPublic bool   `json:"isPublic"`
}

func (r CreateNoteRequest) Validate() error {
	if err := validateTitle(r.Title); err != nil {
		return err
	}
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("%w: content is required", apperror.ErrValidation)
	}
	return nil
}

// UpdateNoteRequest carries partial note fields; nil means unchanged.
type UpdateNoteRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	IsPublic *bool   `json:"isPublic"`
}

func (r UpdateNoteRequest) Validate() error {
	if r.Title == nil && r.Content == nil && r.IsPublic == nil {
		return fmt.Errorf("%w: no fields to update", apperror.ErrValidation)
	}
	if r.Title != nil {
		if err := validateTitle(*r.Title); err != nil {
			return err
		}
	}
	if r.Content != nil && strings.TrimSpace(*r.Content) == "" {
		return fmt.Errorf("%w: content is required", apperror.ErrValidation)
	}
	return nil
}

type ShareRequest struct {
	NoteID string `json:"noteId"`
	Email  string `json:"email"`
}

func (r ShareRequest) Validate() error {
	if r.NoteID == "" {
		return fmt.Errorf("%w: noteId is required", apperror.ErrValidation)
	}
	if !authmodel.ValidEmail(r.Email) {
		return fmt.Errorf("%w: invalid email address", apperror.ErrValidation)
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", apperror.ErrValidation)
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("%w: title too long", apperror.ErrValidation)
	}
	return nil
}
