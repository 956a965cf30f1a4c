package handlers

import (
	"PassKeeper/internal/config"
	"PassKeeper/internal/middleware"
	"PassKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров локального API
func NewHandler(
	session *service.Session,
	idle *service.IdleLocker,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	vaultHandler := NewVaultHandler(session, idle, logger, config)
	entryHandler := NewEntryHandler(session, logger)
	toolHandler := NewToolHandler(logger)

	// Vault routes
	r.Get("/api/vault/status", vaultHandler.Status)
	r.Post("/api/vault/setup", vaultHandler.Setup)
	r.Post("/api/vault/login", vaultHandler.Login)
	r.Post("/api/vault/logout", vaultHandler.Logout)

	// Tools (ключ не нужен)
	r.Post("/api/tools/strength", toolHandler.Strength)
	r.Get("/api/tools/generate", toolHandler.Generate)

	// Entries: только для текущей сессии
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(vaultHandler.SessionID))
		r.Use(vaultHandler.TouchIdle)

		r.Get("/api/entries", entryHandler.List)
		r.Post("/api/entries", entryHandler.Create)
		r.Get("/api/entries/categories", entryHandler.Categories)
		r.Get("/api/entries/{id}", entryHandler.Get)
		r.Put("/api/entries/{id}", entryHandler.Update)
		r.Delete("/api/entries/{id}", entryHandler.Delete)

		r.Get("/api/export", entryHandler.Export)
		r.Post("/api/import", entryHandler.Import)
	})

	return &Handler{Router: r}
}
