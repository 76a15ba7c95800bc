package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Simplici0/worktop/internal/catalog"
	"github.com/Simplici0/worktop/internal/config"
	"github.com/Simplici0/worktop/internal/db"
	"github.com/Simplici0/worktop/internal/migrations"
	"github.com/Simplici0/worktop/internal/seed"
)

const maxBodyBytes = 1 << 20

type server struct {
	auth     *authService
	store    *catalog.Store
	log      *logrus.Logger
	validate *validator.Validate
}

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(ctx, database); err != nil {
			logger.Fatalf("failed to run database migrations: %v", err)
		}
	}

	stats, err := seed.Run(ctx, database, seed.Config{AdminEmail: cfg.AdminEmail, AdminPassword: cfg.AdminPassword})
	if err != nil {
		logger.Fatalf("failed to seed database: %v", err)
	}
	logger.WithFields(logrus.Fields{"inserts": stats.Inserts, "updates": stats.Updates}).Info("seed complete")

	srv := &server{
		auth:     newAuthService(database, cfg.SessionSecret),
		store:    catalog.NewStore(database),
		log:      logger,
		validate: newValidator(),
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("shutdown")
		}
	}()

	logger.Infof("listening on %s", httpServer.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("server stopped: %v", err)
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Get("/materials", s.handleMaterials)
	r.Post("/configurations/validate", s.handleValidateConfiguration)
	r.Post("/quotes/calc", s.handleQuoteCalc)

	r.Group(func(r chi.Router) {
		r.Use(s.auth.requireSession)

		r.Post("/quotes", s.handleQuoteSave)
		r.Get("/quotes", s.handleQuotesList)
		r.Get("/quotes/{id}", s.handleQuoteDetail)
		r.Get("/quotes/{id}/text", s.handleQuoteText)
		r.Get("/quotes/{id}/xlsx", s.handleQuoteXLSX)

		r.Get("/admin/fees", s.handleAdminFees)
		r.Put("/admin/fees", s.handleAdminFeesUpdate)
		r.Post("/admin/materials", s.handleAdminMaterialsCreate)
		r.Put("/admin/materials/{id}", s.handleAdminMaterialsUpdate)
	})

	return r
}
