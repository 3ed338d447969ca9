package comment

import (
	"encoding/json"
	"fmt"
	"net/http"

	"notetaker/internal/comment/model"
	"notetaker/internal/comment/service"
	"notetaker/middleware"
	"notetaker/pkg/apperror"
	"notetaker/pkg/web"
)

type CommentHandler struct {
	Service *service.CommentService
}

func NewCommentHandler(service *service.CommentService) *CommentHandler {
	return &CommentHandler{Service: service}
}

// Comments serves /api/comments, keyed by noteId / commentId query
// parameters.
func (h *CommentHandler) Comments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodPut:
		h.update(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CommentHandler) list(w http.ResponseWriter, r *http.Request) {
	noteID := r.URL.Query().Get("noteId")
	if noteID == "" {
		web.Error(w, fmt.Errorf("%w: noteId is required", apperror.ErrValidation))
		return
	}

	comments, err := h.Service.ListByNote(noteID, middleware.UserID(r))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperror.ErrValidation)
		return
	}

	comment, err := h.Service.Create(middleware.UserID(r), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) update(w http.ResponseWriter, r *http.Request) {
	commentID := r.URL.Query().Get("commentId")
	if commentID == "" {
		web.Error(w, fmt.Errorf("%w: commentId is required", apperror.ErrValidation))
		return
	}

	var req model.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperror.ErrValidation)
		return
	}

	comment, err := h.Service.Update(commentID, middleware.UserID(r), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) delete(w http.ResponseWriter, r *http.Request) {
	commentID := r.URL.Query().Get("commentId")
	if commentID == "" {
		web.Error(w, fmt.Errorf("%w: commentId is required", apperror.ErrValidation))
		return
	}

	if err := h.Service.Delete(commentID, middleware.UserID(r)); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
}
