package model

import (
	"fmt"
	"strings"
	"time"

	"notetaker/pkg/apperror"
)

// User is the persisted account. The password hash never leaves the
// server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Fullname     string    `json:"fullname"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is the subset of User embedded in notes, comments and shares.
type Profile struct {
	ID       string `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}

func (u User) Profile() Profile {
	return Profile{ID: u.ID, Fullname: u.Fullname, Email: u.Email}
}

type RegisterRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	if len(strings.TrimSpace(r.Fullname)) < 3 {
		return fmt.Errorf("%w: fullname must be at least 3 characters", apperror.ErrValidation)
	}
	if !ValidEmail(r.Email) {
		return fmt.Errorf("%w: invalid email address", apperror.ErrValidation)
	}
	if len(r.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", apperror.ErrValidation)
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if !ValidEmail(r.Email) {
		return fmt.Errorf("%w: invalid email address", apperror.ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", apperror.ErrValidation)
	}
	return nil
}

type AuthResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// ValidEmail is a cheap structural check; the mail system is the real
// validator.
func ValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}
