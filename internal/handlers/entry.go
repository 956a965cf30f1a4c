package handlers

import (
	"io"
	"net/http"
	"time"

	"PassKeeper/internal/model"
	"PassKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EntryHandler обрабатывает CRUD записей, экспорт и импорт.
type EntryHandler struct {
	Session *service.Session
	Logger  *zap.SugaredLogger
}

// NewEntryHandler создаёт хендлер записей
func NewEntryHandler(session *service.Session, logger *zap.SugaredLogger) *EntryHandler {
	return &EntryHandler{Session: session, Logger: logger}
}

// List GET /api/entries?q=&category=
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	cat, err := model.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, h.Logger, "list entries", err)
		return
	}
	entries, err := h.Session.SearchEntries(r.Context(), service.Filter{
		Query:    r.URL.Query().Get("q"),
		Category: cat,
	})
	if err != nil {
		writeError(w, h.Logger, "list entries", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Create POST /api/entries
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rec model.CredentialRecord
	if !decodeJSON(w, r, &rec) {
		return
	}
	created, err := h.Session.AddEntry(r.Context(), rec)
	if err != nil {
		writeError(w, h.Logger, "add entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Get GET /api/entries/{id}
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Session.GetEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "get entry", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Update PUT /api/entries/{id}; ID берётся из пути
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var rec model.CredentialRecord
	if !decodeJSON(w, r, &rec) {
		return
	}
	rec.ID = chi.URLParam(r, "id")
	updated, err := h.Session.UpdateEntry(r.Context(), rec)
	if err != nil {
		writeError(w, h.Logger, "update entry", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete DELETE /api/entries/{id}; отсутствующий ID — тоже 204
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, "delete entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Categories GET /api/entries/categories
func (h *EntryHandler) Categories(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Session.Categories(r.Context())
	if err != nil {
		writeError(w, h.Logger, "categories", err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// Export GET /api/export — открытый JSON-снимок как вложение
func (h *EntryHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.Session.Export(r.Context())
	if err != nil {
		writeError(w, h.Logger, "export", err)
		return
	}
	name := "passwords-backup-" + time.Now().Format("2006-01-02") + ".json"
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, data)
}

type importResponse struct {
	Imported int `json:"imported"`
}

// Import POST /api/import — тело запроса целиком является снимком экспорта
func (h *EntryHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
		return
	}
	n, err := h.Session.Import(r.Context(), string(body))
	if err != nil {
		writeError(w, h.Logger, "import", err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Imported: n})
}
