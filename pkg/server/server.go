package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/erate-atlas/pkg/handlers/report"

	eratemiddleware "github.com/de-tools/erate-atlas/pkg/server/middleware"
	"github.com/de-tools/erate-atlas/pkg/services/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

type Dependencies struct {
	Resolver handlers.OrganizationResolver
	History  handlers.HistoryRunner
	State    handlers.StateRunner
	Profile  *config.Profile
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, cfg Config) *WebAPI {
	reportHandler := handlers.NewHandler(
		cfg.Dependencies.Resolver,
		cfg.Dependencies.History,
		cfg.Dependencies.State,
		cfg.Dependencies.Profile,
	)

	router := chi.NewRouter()

	router.Use(eratemiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/organizations", reportHandler.SearchOrganizations)
		r.Get("/reports/history/{organization}", reportHandler.GetHistoryReport)
		r.Get("/reports/state/{state}/{year}", reportHandler.GetStateReport)
	})

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    cfg.Addr,
			Handler: router,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
