package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	authrepo "notetaker/internal/auth/repository"
	commentmodel "notetaker/internal/comment/model"
	"notetaker/internal/note/model"
	"notetaker/internal/note/query"
	"notetaker/internal/note/repository"
	"notetaker/pkg/apperror"
	"notetaker/socket"
)

// searchResultCap bounds the /api/search response.
const searchResultCap = 50

type NoteService struct {
	Repo  *repository.NoteRepository
	Users *authrepo.UserRepository
	Hub   *socket.Hub
}

func NewNoteService(repo *repository.NoteRepository, users *authrepo.UserRepository, hub *socket.Hub) *NoteService {
	return &NoteService{Repo: repo, Users: users, Hub: hub}
}

// List returns one page of notes visible to userID under the given
// filter and search term.
func (s *NoteService) List(userID string, params query.Params) (*model.NotesPage, error) {
	params.UserID = userID
	params = params.Normalize()
	spec := query.Build(params)

	total, err := s.Repo.Count(spec)
	if err != nil {
		return nil, err
	}

	notes, err := s.Repo.List(spec)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.AttachRelations(notes); err != nil {
		return nil, err
	}

	return &model.NotesPage{
		Notes:      notes,
		Pagination: params.PageInfo(total),
	}, nil
}

// Search returns matching visible notes, capped at searchResultCap.
func (s *NoteService) Search(userID, q, filterType string) ([]model.Note, error) {
	if q == "" {
		return nil, fmt.Errorf("%w: search query is required", apperror.ErrValidation)
	}

	spec := query.Build(query.Params{
		UserID: userID,
		Filter: query.ParseFilter(filterType),
		Search: q,
	})
	spec.Limit = searchResultCap
	spec.Offset = 0

	notes, err := s.Repo.List(spec)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.AttachRelations(notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *NoteService) Get(noteID, userID string) (*model.Note, error) {
	note, err := s.Repo.GetVisible(noteID, userID)
	if err != nil {
		return nil, err
	}
	notes := []model.Note{*note}
	if err := s.Repo.AttachRelations(notes); err != nil {
		return nil, err
	}
	return &notes[0], nil
}

func (s *NoteService) Create(userID string, req model.CreateNoteRequest) (*model.Note, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	author, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	note := &model.Note{
		ID:       uuid.NewString(),
		Title:    req.Title,
		Content:  req.Content,
		IsPublic: req.IsPublic,
		AuthorID: userID,
		Author:   author.Profile(),
		Comments: []commentmodel.Comment{},
		Shares:   []model.Share{},
	}
	if err := s.Repo.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Update(noteID, userID string, req model.UpdateNoteRequest) (*model.Note, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rowsAffected, err := s.Repo.Update(noteID, userID, req)
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, apperror.ErrNotFound
	}

	note, err := s.Get(noteID, userID)
	if err != nil {
		return nil, err
	}

	payload, _ := json.Marshal(note)
	s.Hub.Publish(socket.Event{
		Type:    socket.NoteUpdateType,
		NoteID:  noteID,
		UserID:  userID,
		Payload: payload,
	})
	return note, nil
}

func (s *NoteService) Delete(noteID, userID string) error {
	rowsAffected, err := s.Repo.Delete(noteID, userID)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return apperror.ErrNotFound
	}

	s.Hub.CloseRoom(noteID)
	return nil
}

// Share grants read access on the caller's note to the user registered
// under req.Email.
func (s *NoteService) Share(userID string, req model.ShareRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	owner, err := s.Repo.IsOwner(req.NoteID, userID)
	if err != nil {
		return err
	}
	if !owner {
		return fmt.Errorf("%w: note not found", apperror.ErrNotFound)
	}

	target, err := s.Users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return err
	}

	rowsAffected, err := s.Repo.CreateShare(uuid.NewString(), req.NoteID, target.ID)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: note already shared with this user", apperror.ErrConflict)
	}

	payload, _ := json.Marshal(target.Profile())
	s.Hub.Publish(socket.Event{
		Type:    socket.NoteSharedType,
		NoteID:  req.NoteID,
		UserID:  userID,
		Payload: payload,
	})
	return nil
}
