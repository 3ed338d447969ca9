package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"notetaker/internal/auth/model"
	"notetaker/pkg/apperror"
	"notetaker/pkg/logger"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	err := r.DB.QueryRow(
		`INSERT INTO users (id, email, fullname, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 RETURNING created_at`,
		user.ID, user.Email, user.Fullname, user.PasswordHash,
	).Scan(&user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperror.ErrConflict
		}
		logger.Sugar.Errorf("Failed to create user %s: %v", user.Email, err)
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.QueryRow(
		`SELECT id, email, fullname, password_hash, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &user.Fullname, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		logger.Sugar.Errorf("Failed to get user by email: %v", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.QueryRow(
		`SELECT id, email, fullname, password_hash, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Email, &user.Fullname, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		logger.Sugar.Errorf("Failed to get user %s: %v", id, err)
		return nil, err
	}
	return &user, nil
}
