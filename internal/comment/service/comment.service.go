package service

import (
	"encoding/json"

	"github.com/google/uuid"

	authrepo "notetaker/internal/auth/repository"
	"notetaker/internal/comment/model"
	"notetaker/internal/comment/repository"
	"notetaker/socket"
)

type CommentService struct {
	Repo  *repository.CommentRepository
	Users *authrepo.UserRepository
	Hub   *socket.Hub
}

func NewCommentService(repo *repository.CommentRepository, users *authrepo.UserRepository, hub *socket.Hub) *CommentService {
	return &CommentService{Repo: repo, Users: users, Hub: hub}
}

func (s *CommentService) Create(userID string, req model.CreateCommentRequest) (*model.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	comment, err := s.Repo.Create(uuid.NewString(), req.NoteID, userID, req.Content)
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthor(comment); err != nil {
		return nil, err
	}

	s.publish(socket.CommentType, comment)
	return comment, nil
}

func (s *CommentService) ListByNote(noteID, userID string) ([]model.Comment, error) {
	return s.Repo.ListByNote(noteID, userID)
}

func (s *CommentService) Update(commentID, userID string, req model.UpdateCommentRequest) (*model.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	comment, err := s.Repo.Update(commentID, userID, req.Content)
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthor(comment); err != nil {
		return nil, err
	}

	s.publish(socket.CommentUpdateType, comment)
	return comment, nil
}

func (s *CommentService) Delete(commentID, userID string) error {
	noteID, err := s.Repo.Delete(commentID, userID)
	if err != nil {
		return err
	}

	payload, _ := json.Marshal(map[string]string{"id": commentID})
	s.Hub.Publish(socket.Event{
		Type:    socket.CommentDeleteType,
		NoteID:  noteID,
		UserID:  userID,
		Payload: payload,
	})
	return nil
}

func (s *CommentService) attachAuthor(c *model.Comment) error {
	author, err := s.Users.GetByID(c.AuthorID)
	if err != nil {
		return err
	}
	c.Author = author.Profile()
	return nil
}

func (s *CommentService) publish(eventType string, c *model.Comment) {
	payload, _ := json.Marshal(c)
	s.Hub.Publish(socket.Event{
		Type:    eventType,
		NoteID:  c.NoteID,
		UserID:  c.AuthorID,
		Payload: payload,
	})
}
