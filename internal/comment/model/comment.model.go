package model

import (
	"fmt"
	"strings"
	"time"

	authmodel "notetaker/internal/auth/model"
	"notetaker/pkg/apperror"
)

const maxContentLength = 500

type Comment struct {
	ID        string            `json:"id"`
	NoteID    string            `json:"noteId"`
	AuthorID  string            `json:"authorId"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Author    authmodel.Profile `json:"author"`
}

type CreateCommentRequest struct {
	NoteID  string `json:"noteId"`
	Content string `json:"content"`
}

func (r CreateCommentRequest) Validate() error {
	if r.NoteID == "" {
		return fmt.Errorf("%w: noteId is required", apperror.ErrValidation)
	}
	return validateContent(r.Content)
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

func (r UpdateCommentRequest) Validate() error {
	return validateContent(r.Content)
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: comment cannot be empty", apperror.ErrValidation)
	}
	if len(content) > maxContentLength {
		return fmt.Errorf("%w: comment too long", apperror.ErrValidation)
	}
	return nil
}
