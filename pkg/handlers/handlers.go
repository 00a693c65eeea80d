// Package handlers provides HTTP request and response utilities for JSON APIs.
// These stateless functions standardize body decoding, response formatting,
// and client address extraction across handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
)

type okResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// RespondJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondOK writes the standard success envelope {"status":"ok"} with HTTP 200.
func RespondOK(w http.ResponseWriter) {
	RespondJSON(w, http.StatusOK, okResponse{Status: "ok"})
}

// RespondError logs the error and writes a JSON error response.
// The response body contains {"error": "<error message>"}.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("handler error", "error", err, "status", status)
	RespondJSON(w, status, errorResponse{Error: err.Error()})
}

// DecodeJSON parses the request body into dst. An empty body leaves dst
// unchanged; malformed JSON, trailing data, and bodies over the configured
// size cap are errors the caller should surface as HTTP 400.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	// A second document after the first is not a valid JSON body.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON document")
	}
	return nil
}

// ClientIP returns the originating client address. For connections arriving
// through a local proxy it honors the first X-Forwarded-For entry.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
			first, _, _ := strings.Cut(forwarded, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
	}

	return host
}
