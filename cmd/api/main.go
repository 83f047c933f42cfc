package main

import (
	"flag"
	"os"

	"github.com/futureintern/platform/internal/pkg/logger"
	"github.com/futureintern/platform/internal/server"
)

// @title FutureIntern API
// @version 1.0
// @description Internship matching platform for students and companies
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the server config file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
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
