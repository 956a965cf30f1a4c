package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"PassKeeper/internal/common"
	"PassKeeper/internal/generator"
	"PassKeeper/internal/strength"

	"go.uber.org/zap"
)

// ToolHandler — генератор паролей и оценка стойкости; ключ хранилища не нужен.
type ToolHandler struct {
	Logger *zap.SugaredLogger
}

func NewToolHandler(logger *zap.SugaredLogger) *ToolHandler {
	return &ToolHandler{Logger: logger}
}

// Strength POST /api/tools/strength
func (h *ToolHandler) Strength(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, strength.Evaluate(req.Password))
}

type generateResponse struct {
	Value    string          `json:"value"`
	Strength strength.Result `json:"strength"`
}

// Generate GET /api/tools/generate?type=password|pin|passphrase&length=&words=&upper=&lower=&numbers=&symbols=
func (h *ToolHandler) Generate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n, err := intParam(q.Get("length"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid length"})
		return
	}

	var value string
	switch q.Get("type") {
	case "", "password":
		opts := generator.DefaultOptions()
		if n > 0 {
			opts.Length = n
		}
		opts.IncludeUppercase = boolParam(q.Get("upper"), opts.IncludeUppercase)
		opts.IncludeLowercase = boolParam(q.Get("lower"), opts.IncludeLowercase)
		opts.IncludeNumbers = boolParam(q.Get("numbers"), opts.IncludeNumbers)
		opts.IncludeSymbols = boolParam(q.Get("symbols"), opts.IncludeSymbols)
		value, err = generator.Password(opts)
	case "pin":
		value, err = generator.PIN(n)
	case "passphrase":
		words, perr := intParam(q.Get("words"))
		if perr != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid words"})
			return
		}
		value, err = generator.Passphrase(words)
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown type"})
		return
	}
	if err != nil {
		if errors.Is(err, common.ErrCryptoUnavailable) {
			writeError(w, h.Logger, "generate", err)
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, generateResponse{Value: value, Strength: strength.Evaluate(value)})
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func boolParam(s string, def bool) bool {
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}
