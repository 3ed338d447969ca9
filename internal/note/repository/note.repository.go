package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	commentmodel "notetaker/internal/comment/model"
	"notetaker/internal/note/model"
	"notetaker/internal/note/query"
	"notetaker/pkg/apperror"
	"notetaker/pkg/logger"
)

type NoteRepository struct {
	DB *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{DB: db}
}

const noteColumns = `n.id, n.title, n.content, n.is_public, n.author_id, n.created_at, n.updated_at,
	       u.id, u.fullname, u.email`

// List executes the composed predicate and returns one page of notes
// with their authors. Comments and shares are attached separately via
// AttachRelations.
func (r *NoteRepository) List(spec query.Spec) ([]model.Note, error) {
	args := append(append([]interface{}{}, spec.Args...), spec.Limit, spec.Offset)
	stmt := fmt.Sprintf(
		`SELECT `+noteColumns+`
		 FROM notes n
		 JOIN users u ON u.id = n.author_id
		 WHERE %s
		 ORDER BY %s
		 LIMIT $%d OFFSET $%d`,
		spec.Where, spec.OrderBy, len(spec.Args)+1, len(spec.Args)+2)

	rows, err := r.DB.Query(stmt, args...)
	if err != nil {
		logger.Sugar.Errorf("Failed to list notes: %v", err)
		return nil, err
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		var n model.Note
		if err := scanNote(rows, &n); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Count returns the number of rows matching the predicate, ignoring
// paging.
func (r *NoteRepository) Count(spec query.Spec) (int, error) {
	var total int
	stmt := fmt.Sprintf(`SELECT COUNT(*) FROM notes n WHERE %s`, spec.Where)
	if err := r.DB.QueryRow(stmt, spec.Args...).Scan(&total); err != nil {
		logger.Sugar.Errorf("Failed to count notes: %v", err)
		return 0, err
	}
	return total, nil
}

// GetVisible fetches a single note if userID may see it. A hidden note
// and a missing note are the same error.
func (r *NoteRepository) GetVisible(noteID, userID string) (*model.Note, error) {
	stmt := fmt.Sprintf(
		`SELECT `+noteColumns+`
		 FROM notes n
		 JOIN users u ON u.id = n.author_id
		 WHERE n.id = $1 AND %s`,
		query.VisiblePredicate("n", 2))

	var n model.Note
	err := scanNote(r.DB.QueryRow(stmt, noteID, userID), &n)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		logger.Sugar.Errorf("Failed to get note %s: %v", noteID, err)
		return nil, err
	}
	return &n, nil
}

func (r *NoteRepository) Create(note *model.Note) error {
	err := r.DB.QueryRow(
		`INSERT INTO notes (id, title, content, is_public, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		 RETURNING created_at, updated_at`,
		note.ID, note.Title, note.Content, note.IsPublic, note.AuthorID,
	).Scan(&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to create note: %v", err)
	}
	return err
}

// Update applies the provided fields, owner only. The ownership check
// rides inside the statement so nothing can change between check and
// act. Returns the rows affected.
func (r *NoteRepository) Update(noteID, userID string, req model.UpdateNoteRequest) (int64, error) {
	result, err := r.DB.Exec(
		`UPDATE notes
		 SET title     = COALESCE($1, title),
		     content   = COALESCE($2, content),
		     is_public = COALESCE($3, is_public),
		     updated_at = NOW()
		 WHERE id = $4 AND author_id = $5`,
		req.Title, req.Content, req.IsPublic, noteID, userID)
	if err != nil {
		logger.Sugar.Errorf("Failed to update note %s: %v", noteID, err)
		return 0, err
	}
	return result.RowsAffected()
}

// Delete removes the note, owner only. Comments and shares go with it
// via ON DELETE CASCADE.
func (r *NoteRepository) Delete(noteID, userID string) (int64, error) {
	result, err := r.DB.Exec(`DELETE FROM notes WHERE id = $1 AND author_id = $2`, noteID, userID)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete note %s: %v", noteID, err)
		return 0, err
	}
	return result.RowsAffected()
}

func (r *NoteRepository) IsOwner(noteID, userID string) (bool, error) {
	var owner bool
	err := r.DB.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM notes WHERE id = $1 AND author_id = $2)`,
		noteID, userID,
	).Scan(&owner)
	if err != nil {
		logger.Sugar.Errorf("Failed to check note owner: %v", err)
		return false, err
	}
	return owner, nil
}

// CreateShare inserts a share grant. ON CONFLICT DO NOTHING makes the
// uniqueness check atomic: of two racing grants for the same pair,
// exactly one inserts a row. Returns the rows affected (0 = already
// shared).
func (r *NoteRepository) CreateShare(id, noteID, sharedWithID string) (int64, error) {
	result, err := r.DB.Exec(
		`INSERT INTO note_shares (id, note_id, shared_with_id, created_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (note_id, shared_with_id) DO NOTHING`,
		id, noteID, sharedWithID)
	if err != nil {
		logger.Sugar.Errorf("Failed to share note %s: %v", noteID, err)
		return 0, err
	}
	return result.RowsAffected()
}

// AttachRelations loads comments (newest first) and share grants for
// the given notes in two batched queries.
func (r *NoteRepository) AttachRelations(notes []model.Note) error {
	if len(notes) == 0 {
		return nil
	}

	ids := make([]string, len(notes))
	index := make(map[string]*model.Note, len(notes))
	for i := range notes {
		ids[i] = notes[i].ID
		notes[i].Comments = []commentmodel.Comment{}
		notes[i].Shares = []model.Share{}
		index[notes[i].ID] = &notes[i]
	}

	rows, err := r.DB.Query(
		`SELECT c.id, c.note_id, c.author_id, c.content, c.created_at, c.updated_at,
		        u.id, u.fullname, u.email
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.note_id = ANY($1)
		 ORDER BY c.created_at DESC, c.id DESC`, pq.Array(ids))
	if err != nil {
		logger.Sugar.Errorf("Failed to load comments: %v", err)
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var c commentmodel.Comment
		if err := rows.Scan(&c.ID, &c.NoteID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&c.Author.ID, &c.Author.Fullname, &c.Author.Email); err != nil {
			return err
		}
		if n, ok := index[c.NoteID]; ok {
			n.Comments = append(n.Comments, c)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	shareRows, err := r.DB.Query(
		`SELECT ns.id, ns.note_id, ns.shared_with_id, ns.created_at,
		        u.id, u.fullname, u.email
		 FROM note_shares ns
		 JOIN users u ON u.id = ns.shared_with_id
		 WHERE ns.note_id = ANY($1)
		 ORDER BY ns.created_at ASC`, pq.Array(ids))
	if err != nil {
		logger.Sugar.Errorf("Failed to load shares: %v", err)
		return err
	}
	defer shareRows.Close()
	for shareRows.Next() {
		var s model.Share
		if err := shareRows.Scan(&s.ID, &s.NoteID, &s.SharedWithID, &s.CreatedAt,
			&s.SharedWith.ID, &s.SharedWith.Fullname, &s.SharedWith.Email); err != nil {
			return err
		}
		if n, ok := index[s.NoteID]; ok {
			n.Shares = append(n.Shares, s)
		}
	}
	return shareRows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(row rowScanner, n *model.Note) error {
	return row.Scan(&n.ID, &n.Title, &n.Content, &n.IsPublic, &n.AuthorID, &n.CreatedAt, &n.UpdatedAt,
		&n.Author.ID, &n.Author.Fullname, &n.Author.Email)
}
