package httpapi

import (
	"encoding/json"
	"net/http"
)

// Codes carried by internal API error envelopes.
const (
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeNotFound            = "NOT_FOUND"
	CodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidCoordinate   = "INVALID_COORDINATE"
	CodeTabNotFound         = "TAB_NOT_FOUND"
	CodeViewNotFound        = "VIEW_NOT_FOUND"
	CodeUnknownCommand      = "UNKNOWN_COMMAND"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// MaxBodyBytes bounds the JSON bodies of interaction endpoints.
const MaxBodyBytes = 4 << 10

// ErrorEnvelope is the body of every internal API error.
type ErrorEnvelope struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{Code: code, Message: message, Meta: meta})
}

// WriteInternal answers a failure the caller cannot act on. Log the cause before calling it.
func WriteInternal(w http.ResponseWriter) error {
	return WriteError(w, http.StatusInternalServerError, CodeInternalServerError, "internal server error", nil)
}

// WriteNoContent acknowledges fire-and-forget calls such as page teardown beacons.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// DecodeJSON reads a bounded JSON body into dst. On failure it answers 400 and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(dst); err != nil {
		_ = WriteError(w, http.StatusBadRequest, CodeInvalidRequest, "invalid JSON body", nil)
		return false
	}
	return true
}
