package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/content"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/study"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/trivia"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// respondJSON writes v as a JSON response with the given status.
func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

// respondError maps an error to an HTTP status and a sanitized message.
// Raw details stay in the server log only.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	var (
		ve *content.ValidationError
		ce *content.CredentialError
		ge *content.GenerationError
		te *content.TransportError
		se *trivia.StatusError
		re *trivia.RequestError
	)
	switch {
	case errors.As(err, &ve):
		status = http.StatusUnprocessableEntity
		message = content.UserMessage(err)
	case errors.As(err, &ce):
		status = http.StatusBadGateway
		message = content.UserMessage(err)
	case errors.As(err, &ge):
		status = http.StatusBadGateway
		message = content.UserMessage(err)
	case errors.As(err, &te):
		status = http.StatusGatewayTimeout
		message = content.UserMessage(err)
	case errors.Is(err, study.ErrSessionNotFound):
		status = http.StatusNotFound
		message = "session not found"
	case errors.Is(err, study.ErrQuizNotReady):
		status = http.StatusConflict
		message = "the quiz for this session is not ready yet"
	case errors.Is(err, trivia.ErrNoAPIKey):
		status = http.StatusBadGateway
		message = "this feature is not configured; set the corresponding API key"
	case errors.As(err, &se):
		status = http.StatusBadGateway
		message = "upstream service rejected the request"
	case errors.As(err, &re):
		status = http.StatusGatewayTimeout
		message = "upstream service unreachable"
	}

	h.logger.Warn("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err))

	h.respondJSON(w, status, errorBody{Error: message})
}

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &content.ValidationError{Message: "request body is not valid JSON"}
	}
	return nil
}
