package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"danishdeck/internal/importer"
	"danishdeck/internal/repository"
	"danishdeck/internal/service"

	"go.uber.org/zap"
)

// errChatLocked is returned when a learner without enough phrases opens the chat
var errChatLocked = errors.New("chat unlocks at 10 saved phrases")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// errorStatus maps service errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrDuplicateAccount),
		errors.Is(err, repository.ErrConcurrentUpdate):
		return http.StatusConflict
	case errors.Is(err, errChatLocked):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrEmptyField),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidMode),
		errors.Is(err, service.ErrInvalidCount),
		errors.Is(err, service.ErrEmptyDeck),
		errors.Is(err, importer.ErrUnsupportedFormat),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
