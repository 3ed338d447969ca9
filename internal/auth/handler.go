package auth

import (
	"encoding/json"
	"net/http"

	"notetaker/internal/auth/model"
	"notetaker/internal/auth/service"
	"notetaker/pkg/apperror"
	"notetaker/pkg/web"
)

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: service}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperror.ErrValidation)
		return
	}

	profile, err := h.Service.Register(req)
	if err != nil {
		web.Error(w, err)
		return
	}

	web.JSON(w, http.StatusCreated, profile)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperror.ErrValidation)
		return
	}

	resp, err := h.Service.Login(req)
	if err != nil {
		web.Error(w, err)
		return
	}

	web.JSON(w, http.StatusOK, resp)
}
