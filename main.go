package main

import (
	"github.com/FlagBrew/local-teambuilder/internal/database"
	"github.com/FlagBrew/local-teambuilder/internal/gui"
	"github.com/FlagBrew/local-teambuilder/internal/models"
	"github.com/apex/log"
	"github.com/lrstanley/chix"
	"github.com/lrstanley/clix"
)

var (
	cli    = &clix.CLI[models.Flags]{}
	logger log.Interface
	db     *database.Store
	cfg    *models.Config
	screen *gui.Builder
)

func main() {
	ctx := setup()

	if cli.Flags.Builder {
		if err := screen.Start(); err != nil {
			logger.WithError(err).Error("team builder exited unexpectedly")
		}
		closeDatabase()
		return
	}

	logger.Infof("Starting HTTP server on %s:%d", cfg.HTTP.ListeningAddr, cfg.HTTP.Port)
	if err := chix.RunContext(ctx, httpServer(ctx)); err != nil {
		logger.WithError(err).Error("http server stopped")
	}
	closeDatabase()
}

func closeDatabase() {
	if db == nil {
		return
	}

	if err := db.Close(); err != nil {
		logger.WithError(err).Warn("failed to close database")
	}
}
