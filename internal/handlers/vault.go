package handlers

import (
	"fmt"
	"net/http"

	"PassKeeper/internal/config"
	"PassKeeper/internal/middleware"
	"PassKeeper/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VaultHandler обрабатывает настройку, вход и выход.
type VaultHandler struct {
	Session *service.Session
	Idle    *service.IdleLocker
	Logger  *zap.SugaredLogger
	Config  *config.Config

	// instance отличает токены разных запусков процесса с одинаковой эпохой.
	instance string
}

// NewVaultHandler создаёт хендлер хранилища
func NewVaultHandler(session *service.Session, idle *service.IdleLocker, logger *zap.SugaredLogger, cfg *config.Config) *VaultHandler {
	return &VaultHandler{
		Session:  session,
		Idle:     idle,
		Logger:   logger,
		Config:   cfg,
		instance: uuid.NewString(),
	}
}

// SessionID — идентификатор текущего входа; меняется при каждом входе и выходе.
func (h *VaultHandler) SessionID() string {
	return fmt.Sprintf("%s.%d", h.instance, h.Session.Epoch())
}

// TouchIdle продлевает окно автоблокировки на каждый аутентифицированный запрос.
func (h *VaultHandler) TouchIdle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Idle != nil {
			h.Idle.Touch()
		}
		next.ServeHTTP(w, r)
	})
}

type passwordRequest struct {
	Password string `json:"password"`
}

// StatusResponse — состояние хранилища и текущего клиента.
type StatusResponse struct {
	State         string `json:"state"`
	SetUp         bool   `json:"setUp"`
	Authenticated bool   `json:"authenticated"`
}

func (h *VaultHandler) status(r *http.Request) StatusResponse {
	st := h.Session.State()
	sid, ok := middleware.GetSessionIDFromContext(r.Context())
	return StatusResponse{
		State:         st.String(),
		SetUp:         st != service.StateUninitialized,
		Authenticated: ok && sid == h.SessionID() && st == service.StateUnlocked,
	}
}

// Status GET /api/vault/status
func (h *VaultHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.status(r))
}

// Setup POST /api/vault/setup — первичная настройка и вход
func (h *VaultHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Session.Setup(r.Context(), req.Password); err != nil {
		writeError(w, h.Logger, "setup", err)
		return
	}
	h.startSession(w)
}

// Login POST /api/vault/login
func (h *VaultHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Session.Login(r.Context(), req.Password); err != nil {
		writeError(w, h.Logger, "login", err)
		return
	}
	h.startSession(w)
}

func (h *VaultHandler) startSession(w http.ResponseWriter) {
	if err := middleware.SetSessionCookie(w, h.SessionID(), h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("failed to issue session token", "error", err)
		h.Session.Logout()
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	if h.Idle != nil {
		h.Idle.Touch()
	}
	writeJSON(w, http.StatusOK, StatusResponse{
		State:         service.StateUnlocked.String(),
		SetUp:         true,
		Authenticated: true,
	})
}

// Logout POST /api/vault/logout — блокирует хранилище; повторный вызов безопасен
func (h *VaultHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Session.Logout()
	if h.Idle != nil {
		h.Idle.Stop()
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
