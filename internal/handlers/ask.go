package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"guidance-navigator/internal/contextutil"
	"guidance-navigator/internal/navigator"
)

// AskHandler handles HTTP requests for guidance questions.
type AskHandler struct {
	engine      navigator.Engine
	topKDefault int
}

// NewAskHandler creates a new AskHandler. topKDefault applies when the
// request omits top_k; non-positive values defer to the engine default.
func NewAskHandler(engine navigator.Engine, topKDefault int) *AskHandler {
	return &AskHandler{engine: engine, topKDefault: topKDefault}
}

// AskRequest is the HTTP request payload. It mirrors navigator.AskRequest
// but is defined here for HTTP layer separation.
type AskRequest struct {
	Question   string `json:"question"`
	TopK       int    `json:"top_k,omitempty"`
	Paraphrase bool   `json:"paraphrase,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP answers a question against the guidance corpus. Refusals and
// empty retrievals are normal 200 responses with very_low confidence, never
// errors; only malformed requests produce a 4xx.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		logger.WarnContext(ctx, "empty question in request")
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}
	if req.TopK <= 0 {
		req.TopK = h.topKDefault
	}

	debug := false
	if debugParam := r.URL.Query().Get("debug"); debugParam != "" {
		debug = strings.EqualFold(debugParam, "true") || debugParam == "1"
	}

	resp, err := h.engine.Ask(ctx, navigator.AskRequest{
		Question:   req.Question,
		TopK:       req.TopK,
		Paraphrase: req.Paraphrase,
		Debug:      debug,
	})
	if err != nil {
		var validationErr *navigator.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, http.StatusBadRequest, validationErr.Message)
			return
		}
		logger.ErrorContext(ctx, "engine error", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process question")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
