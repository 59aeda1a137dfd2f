package web

// errors.go provides unified error response handling for the web layer.
// Technical errors are logged server-side with the request ID for
// correlation; clients receive a sanitized JSON body with the HTTP status
// matching the domain error:
//
//	*account.ValidationError -> 400 (with the offending field)
//	account.ErrNotFound      -> 404
//	account.ErrDuplicateKey  -> 409
//	auth.ErrInvalidCredentials -> 401
//	anything else            -> 500 with a generic message

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/reclaimhq/dormant/internal/account"
	"github.com/reclaimhq/dormant/internal/auth"
	"github.com/reclaimhq/dormant/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondError maps a domain error to an HTTP response and logs it.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	body := ErrorResponse{Error: "internal server error"}

	var verr *account.ValidationError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		body = ErrorResponse{Error: verr.Reason, Field: verr.Field}
	case errors.Is(err, account.ErrNotFound):
		status = http.StatusNotFound
		body = ErrorResponse{Error: "account not found"}
	case errors.Is(err, account.ErrDuplicateKey):
		status = http.StatusConflict
		body = ErrorResponse{Error: "account number already exists"}
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		body = ErrorResponse{Error: "invalid username or password"}
	}

	logger := logging.FromContext(r.Context())
	logger.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
	)

	writeJSON(w, status, body)
}

// respondBadRequest reports a malformed request (unparseable body or
// parameters) without a domain error behind it.
func (s *Server) respondBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	logger := logging.FromContext(r.Context())
	logger.Warn("bad request",
		"path", r.URL.Path,
		"method", r.Method,
		"reason", msg,
	)
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
}

// writeJSON encodes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; log and move on.
		slog.Error("json encode error", "error", err)
	}
}
