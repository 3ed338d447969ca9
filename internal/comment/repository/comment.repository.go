package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"notetaker/internal/comment/model"
	"notetaker/internal/note/query"
	"notetaker/pkg/apperror"
	"notetaker/pkg/logger"
)

type CommentRepository struct {
	DB *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

const commentColumns = `c.id, c.note_id, c.author_id, c.content, c.created_at, c.updated_at,
	       u.id, u.fullname, u.email`

// Create inserts the comment only if the author can see the parent
// note. The visibility check and the insert are one statement, so a
// racing note deletion cannot slip between them.
func (r *CommentRepository) Create(id, noteID, authorID, content string) (*model.Comment, error) {
	stmt := fmt.Sprintf(
		`INSERT INTO comments (id, note_id, author_id, content, created_at, updated_at)
		 SELECT $1, $2, $3, $4, NOW(), NOW()
		 WHERE EXISTS (SELECT 1 FROM notes n WHERE n.id = $2 AND %s)
		 RETURNING id, note_id, author_id, content, created_at, updated_at`,
		query.VisiblePredicate("n", 3))

	var c model.Comment
	err := r.DB.QueryRow(stmt, id, noteID, authorID, content).Scan(
		&c.ID, &c.NoteID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		logger.Sugar.Errorf("Failed to create comment on note %s: %v", noteID, err)
		return nil, err
	}
	return &c, nil
}

// ListByNote returns the note's comments newest first, each with its
// author's profile, provided userID can see the note.
func (r *CommentRepository) ListByNote(noteID, userID string) ([]model.Comment, error) {
	var visible bool
	check := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM notes n WHERE n.id = $1 AND %s)`,
		query.VisiblePredicate("n", 2))
	if err := r.DB.QueryRow(check, noteID, userID).Scan(&visible); err != nil {
		logger.Sugar.Errorf("Failed to check access to note %s: %v", noteID, err)
		return nil, err
	}
	if !visible {
		return nil, apperror.ErrNotFound
	}

	rows, err := r.DB.Query(
		`SELECT `+commentColumns+`
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.note_id = $1
		 ORDER BY c.created_at DESC, c.id DESC`, noteID)
	if err != nil {
		logger.Sugar.Errorf("Failed to list comments for note %s: %v", noteID, err)
		return nil, err
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.NoteID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&c.Author.ID, &c.Author.Fullname, &c.Author.Email); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Update rewrites the comment body, author only.
func (r *CommentRepository) Update(commentID, authorID, content string) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.QueryRow(
		`UPDATE comments SET content = $1, updated_at = NOW()
		 WHERE id = $2 AND author_id = $3
		 RETURNING id, note_id, author_id, content, created_at, updated_at`,
		content, commentID, authorID,
	).Scan(&c.ID, &c.NoteID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		logger.Sugar.Errorf("Failed to update comment %s: %v", commentID, err)
		return nil, err
	}
	return &c, nil
}

// Delete removes the comment, author only. Returns the note id for
// event fan-out.
func (r *CommentRepository) Delete(commentID, authorID string) (string, error) {
	var noteID string
	err := r.DB.QueryRow(
		`DELETE FROM comments WHERE id = $1 AND author_id = $2 RETURNING note_id`,
		commentID, authorID,
	).Scan(&noteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperror.ErrNotFound
		}
		logger.Sugar.Errorf("Failed to delete comment %s: %v", commentID, err)
		return "", err
	}
	return noteID, nil
}
