package main

import (
	"os"

	"github.com/yigit/studyshare/internal/pkg/logger"
	"github.com/yigit/studyshare/internal/server"
)

// @title StudyShare API
// @version 1.0
// @description Note sharing backend: upload, browse, download and rate study notes

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name studyshare.sid

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
