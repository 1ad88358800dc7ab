package handler

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "image-panel/pkg/errors"
)

type contextKey string

const sessionContextKey contextKey = "session"

// withSessionID stores the panel session ID in the request context
func withSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionContextKey, sessionID)
}

// GetSessionIDFromContext extracts the panel session ID from request context
func GetSessionIDFromContext(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(sessionContextKey).(string)
	return id, ok && id != ""
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeAppError maps an error to its status code and user-facing message
func writeAppError(w http.ResponseWriter, err error) {
	writeError(w, apperrors.GetStatusCode(err), apperrors.UserMessage(err))
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
