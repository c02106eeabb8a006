package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// maxBodyBytes caps JSON and urlencoded request bodies.
const maxBodyBytes = 100 << 10

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// formRequest is a request body that can also arrive as a urlencoded form.
type formRequest interface {
	fromForm(form url.Values)
}

// readRequest decodes a JSON or urlencoded body into dst, reading at most
// maxBodyBytes.
func readRequest(w http.ResponseWriter, r *http.Request, dst formRequest) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return json.NewDecoder(r.Body).Decode(dst)
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	dst.fromForm(r.PostForm)
	return nil
}

// writeBodyError answers a request whose body could not be read.
func writeBodyError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large.")
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid request body.")
}
