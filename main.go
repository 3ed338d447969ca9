package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"notetaker/config/database"
	"notetaker/pkg/logger"
	"notetaker/router"
	"notetaker/socket"
)

func main() {
	logger.Init()
	defer logger.Log.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Sugar.Fatal("JWT_SECRET environment variable is required")
	}

	db := database.Connect()
	defer db.Close()

	hub := socket.NewHub(db)
	go hub.Run()

	handler := router.Setup(db, hub, []byte(jwtSecret))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Sugar.Infof("Backend listening on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.Sugar.Fatalf("Server stopped: %v", err)
	}
}
