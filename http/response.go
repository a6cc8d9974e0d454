package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sagarc03/softserve"
)

const internalErrorBody = "Internal server error"

// WriteText writes a plain text response
func WriteText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(code)
	if _, err := io.WriteString(w, body); err != nil {
		slog.Debug("failed to write response body", "error", err)
	}
}

// WriteNotFound writes the 404 response naming the requested path. Missing
// files and rejected traversal attempts share this response.
func WriteNotFound(w http.ResponseWriter, requestPath string) {
	WriteText(w, http.StatusNotFound, "Not found: "+requestPath)
}

// HandleError writes appropriate error response based on error type
func HandleError(w http.ResponseWriter, requestPath string, err error) {
	if errors.Is(err, softserve.ErrNotFound) || errors.Is(err, softserve.ErrInvalidInput) || errors.Is(err, softserve.ErrOutsideRoot) {
		WriteNotFound(w, requestPath)
		return
	}

	slog.Error("request error", "path", requestPath, "error", err)

	// Default internal error
	WriteText(w, http.StatusInternalServerError, internalErrorBody)
}
