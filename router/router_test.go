package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notemodel "notetaker/internal/note/model"
	"notetaker/pkg/token"
	"notetaker/socket"
)

var noteCols = []string{"id", "title", "content", "is_public", "author_id", "created_at", "updated_at", "u_id", "u_fullname", "u_email"}

func newTestServer(t *testing.T) (*httptest.Server, sqlmock.Sqlmock, string) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	hub := socket.NewHub(db)
	go hub.Run()

	server := httptest.NewServer(Setup(db, hub, []byte("test-secret")))
	t.Cleanup(server.Close)

	signed, err := token.Generate("userB", []byte("test-secret"), time.Hour)
	require.NoError(t, err)

	return server, mock, signed
}

func get(t *testing.T, url, bearer string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := get(t, server.URL+"/api/notes", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// A private note someone else owns is indistinguishable from a missing
// one.
func TestGetHiddenNoteIs404(t *testing.T) {
	server, mock, bearer := newTestServer(t)

	mock.ExpectQuery("FROM notes n").
		WithArgs("n1", "userB").
		WillReturnRows(sqlmock.NewRows(noteCols))

	resp := get(t, server.URL+"/api/notes/n1", bearer)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListClampsPagingAndShapesResponse(t *testing.T) {
	server, mock, bearer := newTestServer(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notes n`).
		WithArgs("userB").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	// limit=999 clamps to 48, page=abc clamps to 1.
	mock.ExpectQuery(`LIMIT \$2 OFFSET \$3`).
		WithArgs("userB", 48, 0).
		WillReturnRows(sqlmock.NewRows(noteCols))

	resp := get(t, server.URL+"/api/notes?page=abc&limit=999", bearer)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page notemodel.NotesPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Empty(t, page.Notes)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 48, page.Pagination.Limit)
	assert.Equal(t, 0, page.Pagination.Total)
	assert.False(t, page.Pagination.HasNext)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchWithoutQueryIs400(t *testing.T) {
	server, mock, bearer := newTestServer(t)

	resp := get(t, server.URL+"/api/search", bearer)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
