package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"neighbourcam/internal/api/handlers/http/admin"
	"neighbourcam/internal/api/handlers/http/devices"
	"neighbourcam/internal/api/handlers/http/requests"
	"neighbourcam/internal/api/handlers/http/system"
	"neighbourcam/internal/config"
	"neighbourcam/internal/middleware"
	"neighbourcam/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service) *Server {
	deviceHandler := devices.NewHandler(logger, svc.Devices)
	requestHandler := requests.NewHandler(logger, svc.Requests, svc.Quota, svc.Archive, svc.Coverage)
	adminHandler := admin.NewHandler(logger, svc.Devices, svc.Quota, svc.Archive, svc.Requests)
	systemHandler := system.NewHandler(logger)

	r := InitRouter(cfg, deviceHandler, requestHandler, adminHandler, systemHandler, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(
	cfg *config.Config,
	deviceHandler *devices.Handler,
	requestHandler *requests.Handler,
	adminHandler *admin.Handler,
	systemHandler *system.Handler,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		// ADMIN
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKey(cfg.APIKey))
			ar.Use(middleware.Limit(2, 5, 10*time.Minute, logger))

			ar.Post("/devices/{id}/verification", adminHandler.DeviceSetVerification)
			ar.Delete("/devices/{id}", adminHandler.DeviceDelete)

			ar.Post("/quota/{userID}/limit", adminHandler.QuotaSetLimit)
			ar.Post("/quota/{userID}/reset", adminHandler.QuotaReset)

			ar.Post("/requests/{id}/archive", adminHandler.RequestArchive)
			ar.Post("/archive/{id}/restore", adminHandler.RequestRestore)
			ar.Get("/archive/stats", adminHandler.ArchiveStats)

			ar.Post("/sweep", adminHandler.Sweep)
		})

		// AUTHENTICATED USERS
		api.Group(func(ur chi.Router) {
			ur.Use(middleware.Identity())
			ur.Use(middleware.Limit(10, 20, 5*time.Minute, logger))

			ur.Route("/devices", func(dr chi.Router) {
				dr.Post("/", deviceHandler.DeviceRegister)
				dr.Get("/", deviceHandler.DeviceList)

				dr.Route("/{id}", func(rr chi.Router) {
					rr.Patch("/", deviceHandler.DeviceUpdate)
					rr.Delete("/", deviceHandler.DeviceDelete)
					rr.Post("/regenerate-location", deviceHandler.DeviceRegenerateLocation)
				})
			})

			ur.Post("/markers", deviceHandler.MarkerPlace)

			ur.Route("/requests", func(fr chi.Router) {
				fr.Post("/", requestHandler.RequestCreate)
				fr.Get("/", requestHandler.RequestList)
				fr.Get("/incoming", requestHandler.RequestIncoming)

				fr.Route("/{id}", func(rr chi.Router) {
					rr.Get("/", requestHandler.RequestGet)
					rr.Post("/cancel", requestHandler.RequestCancel)
					rr.Post("/fulfill", requestHandler.RequestFulfill)
					rr.Post("/devices/{deviceID}/response", requestHandler.RequestRespond)
				})
			})

			ur.Get("/quota", requestHandler.QuotaGet)

			ur.Route("/archive", func(arr chi.Router) {
				arr.Get("/", requestHandler.ArchiveList)
				arr.Get("/{id}", requestHandler.ArchiveGet)
			})

			ur.Get("/coverage", requestHandler.CoverageGet)
		})

		// SYSTEM
		api.Get("/health", systemHandler.SystemHealth)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
