package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"PassKeeper/internal/common"

	"go.uber.org/zap"
)

// maxBodyBytes ограничивает тело запроса (импорт — самый большой).
const maxBodyBytes = 8 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor сопоставляет доменные ошибки HTTP-кодам.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrAlreadySetUp),
		errors.Is(err, common.ErrAlreadyExists),
		errors.Is(err, common.ErrNotSetUp):
		return http.StatusConflict
	case errors.Is(err, common.ErrPasswordTooShort),
		errors.Is(err, common.ErrPasswordTooWeak),
		errors.Is(err, common.ErrInvalidRecord),
		errors.Is(err, common.ErrInvalidFormat):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError пишет ошибку в JSON. Текст внутренних ошибок наружу не отдаётся.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Errorw(op+" failed", "error", err)
		msg = "internal error"
		if errors.Is(err, common.ErrDecryptionFailed) {
			msg = common.ErrDecryptionFailed.Error()
		}
	} else {
		logger.Warnw(op+" rejected", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return false
	}
	return true
}
