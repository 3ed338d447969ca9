package router

import (
	"database/sql"
	"net/http"

	authHandler "notetaker/internal/auth"
	authrepo "notetaker/internal/auth/repository"
	authservice "notetaker/internal/auth/service"
	commentHandler "notetaker/internal/comment"
	commentrepo "notetaker/internal/comment/repository"
	commentservice "notetaker/internal/comment/service"
	noteHandler "notetaker/internal/note"
	noterepo "notetaker/internal/note/repository"
	noteservice "notetaker/internal/note/service"
	"notetaker/middleware"
	"notetaker/socket"
)

func Setup(db *sql.DB, hub *socket.Hub, jwtSecret []byte) http.Handler {
	mux := http.NewServeMux()

	// WebSocket
	wsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		socket.ServeWs(hub, w, r, middleware.UserID(r))
	})
	mux.Handle("/ws", middleware.AuthMiddleware(wsHandler))

	// REST API
	users := authrepo.NewUserRepository(db)
	auth := authHandler.NewAuthHandler(authservice.NewAuthService(users, jwtSecret))
	notes := noteHandler.NewNoteHandler(noteservice.NewNoteService(noterepo.NewNoteRepository(db), users, hub))
	comments := commentHandler.NewCommentHandler(commentservice.NewCommentService(commentrepo.NewCommentRepository(db), users, hub))
	guard := middleware.AuthMiddleware

	mux.Handle("/api/auth/register", http.HandlerFunc(auth.Register))
	mux.Handle("/api/auth/login", http.HandlerFunc(auth.Login))

	mux.Handle("/api/notes", guard(http.HandlerFunc(notes.Notes)))
	mux.Handle("/api/notes/share", guard(http.HandlerFunc(notes.Share)))
	mux.Handle("/api/notes/{id}", guard(http.HandlerFunc(notes.NoteByID)))
	mux.Handle("/api/search", guard(http.HandlerFunc(notes.Search)))
	mux.Handle("/api/comments", guard(http.HandlerFunc(comments.Comments)))

	return middleware.CORSMiddleware(mux)
}
