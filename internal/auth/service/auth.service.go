package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"notetaker/internal/auth/model"
	"notetaker/internal/auth/repository"
	"notetaker/pkg/apperror"
	"notetaker/pkg/token"
)

const bcryptCost = 12

type AuthService struct {
	Repo          *repository.UserRepository
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewAuthService(repo *repository.UserRepository, jwtSecret []byte) *AuthService {
	return &AuthService{
		Repo:          repo,
		jwtSecret:     jwtSecret,
		tokenValidity: 7 * 24 * time.Hour,
	}
}

func (s *AuthService) Register(req model.RegisterRequest) (*model.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Fullname:     strings.TrimSpace(req.Fullname),
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, fmt.Errorf("%w: email already registered", apperror.ErrConflict)
		}
		return nil, err
	}

	profile := user.Profile()
	return &profile, nil
}

func (s *AuthService) Login(req model.LoginRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("%w: invalid email or password", apperror.ErrUnauthorized)
	}

	signed, err := token.Generate(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{Token: signed, User: user.Profile()}, nil
}
