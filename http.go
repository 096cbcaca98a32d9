package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/FlagBrew/local-teambuilder/internal/database"
	"github.com/FlagBrew/local-teambuilder/internal/handlers/catalog"
	"github.com/FlagBrew/local-teambuilder/internal/handlers/team"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/lrstanley/chix"
)

func httpServer(ctx context.Context) *http.Server {
	chix.DefaultAPIPrefix = "/api/"

	r := chi.NewRouter()

	r.Use(
		chix.UseContextIP,
		middleware.RequestID,
		chix.UseStructuredLogger(logger),
		chix.UseDebug(cli.Debug),
		chix.UseRecoverer,
		middleware.Compress(5),
		middleware.Maybe(middleware.StripSlashes, func(r *http.Request) bool {
			return !strings.HasPrefix(r.URL.Path, "/debug/")
		}),
		chix.UseNextURL,
	)

	if cli.Debug {
		r.Mount("/debug", middleware.Profiler())
	}

	var writes []func(http.Handler) http.Handler
	if cfg.HTTP.WriteLimit > 0 {
		writes = append(writes, httprate.LimitByIP(cfg.HTTP.WriteLimit, time.Minute))
	}

	store := database.FromContext(ctx)
	r.Route("/api/v1/catalog", catalog.NewHandler(store, writes...).Route)
	r.Route("/api/v1/team", team.NewHandler(store, writes...).Route)

	return &http.Server{
		Addr:    net.JoinHostPort(cfg.HTTP.ListeningAddr, fmt.Sprint(cfg.HTTP.Port)),
		Handler: r,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
		// Some sane defaults.
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
}
