package web

import (
	"encoding/json"
	"net/http"
)

// loginRequest is the body of POST /api/auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse carries the bearer token and the caller's role.
type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// handleLogin checks staff credentials and issues a bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondBadRequest(w, r, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		s.respondBadRequest(w, r, "username and password are required")
		return
	}

	token, role, err := s.auth.Login(req.Username, req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Role: role})
}
