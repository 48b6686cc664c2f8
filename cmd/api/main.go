package main

import (
	"os"

	"github.com/sharecrm/share/internal/pkg/logger"
	"github.com/sharecrm/share/internal/server"
)

// @title SHARE CRM API
// @version 1.0
// @description Enrollment, attendance and back office API for SHARE community fitness classes

// @contact.name SHARE support
// @contact.email support@share.example.org

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token as "Bearer <token>"

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
