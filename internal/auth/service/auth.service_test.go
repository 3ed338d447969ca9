package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notetaker/internal/auth/model"
	"notetaker/internal/auth/repository"
	"notetaker/pkg/apperror"
	"notetaker/pkg/token"
)

func newTestService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAuthService(repository.NewUserRepository(db), []byte("test-secret")), mock
}

func TestRegister(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "john@example.com", "John Doe", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	profile, err := svc.Register(model.RegisterRequest{
		Fullname: "John Doe",
		Email:    "John@Example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", profile.Email)
	assert.Equal(t, "John Doe", profile.Fullname)
	assert.NotEmpty(t, profile.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := svc.Register(model.RegisterRequest{
		Fullname: "John Doe",
		Email:    "john@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []model.RegisterRequest{
		{Fullname: "Jo", Email: "john@example.com", Password: "password123"},
		{Fullname: "John Doe", Email: "not-an-email", Password: "password123"},
		{Fullname: "John Doe", Email: "john@example.com", Password: "short"},
	}
	for _, req := range cases {
		_, err := svc.Register(req)
		assert.ErrorIs(t, err, apperror.ErrValidation)
	}
}

func TestLogin(t *testing.T) {
	svc, mock := newTestService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, email, fullname, password_hash, created_at FROM users WHERE email").
		WithArgs("john@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "fullname", "password_hash", "created_at"}).
			AddRow("user-1", "john@example.com", "John Doe", string(hash), time.Now()))

	resp, err := svc.Login(model.LoginRequest{Email: "john@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.User.ID)

	userID, err := token.Parse(resp.Token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, mock := newTestService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, email, fullname, password_hash, created_at FROM users WHERE email").
		WithArgs("john@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "fullname", "password_hash", "created_at"}).
			AddRow("user-1", "john@example.com", "John Doe", string(hash), time.Now()))

	_, err = svc.Login(model.LoginRequest{Email: "john@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT id, email, fullname, password_hash, created_at FROM users WHERE email").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "fullname", "password_hash", "created_at"}))

	_, err := svc.Login(model.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
