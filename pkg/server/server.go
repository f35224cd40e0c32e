package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	compliancehandlers "github.com/de-tools/asset-atlas/pkg/handlers/compliance"
	exporthandlers "github.com/de-tools/asset-atlas/pkg/handlers/export"
	assetatlasmiddleware "github.com/de-tools/asset-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Compliance *compliancehandlers.Handler
	Export     *exporthandlers.Handler
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config.Dependencies)

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func ConfigureRouter(logger zerolog.Logger, deps Dependencies) *chi.Mux {
	router := chi.NewRouter()

	router.Use(assetatlasmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/compliance/scan", deps.Compliance.Scan)
		r.Get("/compliance/metrics", deps.Compliance.Metrics)
		r.Post("/reports/audit", deps.Compliance.AuditReport)
		r.Get("/activity", deps.Compliance.Activity)
		r.Get("/exports/{entity}", deps.Export.Export)
	})

	return router
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
