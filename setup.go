package main

import (
	"context"

	"github.com/FlagBrew/local-teambuilder/internal/database"
	"github.com/FlagBrew/local-teambuilder/internal/gui"
	"github.com/FlagBrew/local-teambuilder/internal/remote"
	"github.com/FlagBrew/local-teambuilder/internal/teambuilder"
	"github.com/FlagBrew/local-teambuilder/internal/utils"
	"github.com/apex/log"
)

func setup() context.Context {
	cli.Parse()
	logger = cli.Logger

	ctx, cancel := context.WithCancel(context.Background())
	ctx = log.NewContext(ctx, logger)

	if cli.Flags.Builder {
		return setupBuilder(ctx)
	}

	cfg = utils.Setup(ctx, cli.Flags.Mode)
	if cfg.FancyScreen {
		ctx = attachScreen(ctx)
		go func() {
			if err := screen.Start(); err != nil {
				logger.WithError(err).Error("team builder screen exited unexpectedly")
			}
			cancel()
		}()
	}

	ctx = openDatabase(ctx)

	seed := cfg.Misc.SeedCatalog
	if cli.Flags.Seed != "" {
		seed = cli.Flags.Seed
	}
	if seed != "" {
		if err := utils.SeedCatalog(ctx, db, seed, cfg.Misc.SeedBatch); err != nil {
			logger.WithError(err).Error("failed to import seed catalog")
		}
	}

	if screen != nil {
		screen.SetBuilder(ctx, teambuilder.New(db))
	}

	return ctx
}

// setupBuilder prepares the team builder screen, backed either by a remote server or by the
// configured database.
func setupBuilder(ctx context.Context) context.Context {
	var store teambuilder.Store

	if cli.Flags.Remote != "" {
		logger.WithField("remote", cli.Flags.Remote).Info("using remote team builder server")
		store = remote.NewClient(remote.Config{BaseURL: cli.Flags.Remote})
	} else {
		cfg = utils.Setup(ctx, cli.Flags.Mode)
		ctx = openDatabase(ctx)
		store = db
	}

	ctx = attachScreen(ctx)
	screen.SetBuilder(ctx, teambuilder.New(store))

	return ctx
}

// attachScreen creates the team builder screen and routes all further logs into it.
func attachScreen(ctx context.Context) context.Context {
	screen = gui.NewBuilder()
	cli.Logger = utils.NewLogger(log.InfoLevel, cli.Debug, screen.GetLogOutput())
	logger = cli.Logger

	return log.NewContext(ctx, logger)
}

func openDatabase(ctx context.Context) context.Context {
	db = database.New(ctx, &cfg.Database)
	if err := database.Migrate(ctx, db); err != nil {
		logger.WithError(err).Fatal("failed to migrate database")
	}

	return database.NewContext(ctx, db)
}
