package note

import (
	"encoding/json"
	"net/http"
	"strconv"

	"notetaker/internal/note/model"
	"notetaker/internal/note/query"
	"notetaker/internal/note/service"
	"notetaker/middleware"
	"notetaker/pkg/apperror"
	"notetaker/pkg/web"
)

type NoteHandler struct {
	Service *service.NoteService
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{Service: service}
}

// Notes serves /api/notes: GET lists, POST creates.
func (h *NoteHandler) Notes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// NoteByID serves /api/notes/{id}: GET, PUT, DELETE.
func (h *NoteHandler) NoteByID(w http.ResponseWriter, r *http.Request) {
	noteID := r.PathValue("id")
	if noteID == "" {
		web.Error(w, apperror.ErrNotFound)
		return
	}
	userID := middleware.UserID(r)

	switch r.Method {
	case http.MethodGet:
		note, err := h.Service.Get(noteID, userID)
		if err != nil {
			web.Error(w, err)
			return
		}
		web.JSON(w, http.StatusOK, note)

	case http.MethodPut:
		var req model.UpdateNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Error(w, apperror.ErrValidation)
			return
		}
		note, err := h.Service.Update(noteID, userID, req)
		if err != nil {
			web.Error(w, err)
			return
		}
		web.JSON(w, http.StatusOK, note)

	case http.MethodDelete:
		if err := h.Service.Delete(noteID, userID); err != nil {
			web.Error(w, err)
			return
		}
		web.JSON(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Share serves POST /api/notes/share.
func (h *NoteHandler) Share(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req model.ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperror.ErrValidation)
		return
	}

	if err := h.Service.Share(middleware.UserID(r), req); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "Note shared successfully"})
}

// Search serves GET /api/search?q=&type=.
func (h *NoteHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	notes, err := h.Service.Search(middleware.UserID(r), r.URL.Query().Get("q"), r.URL.Query().Get("type"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// Non-numeric page/limit parse to zero and clamp to their defaults.
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	pageData, err := h.Service.List(middleware.UserID(r), query.Params{
		Filter: query.ParseFilter(q.Get("filter")),
		Search: q.Get("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, pageData)
}

func (h *NoteHandler) create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperror.ErrValidation)
		return
	}

	note, err := h.Service.Create(middleware.UserID(r), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, note)
}
