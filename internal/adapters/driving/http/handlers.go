package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/keyfold/keyfold-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"access denied"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// WhoAmIResponse carries the authenticated user's ID
// @Description Authenticated user identity
type WhoAmIResponse struct {
	UserID string `json:"user_id"`
}

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRegister godoc
// @Summary      Register a new user
// @Description  Create an account with a username and password
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RegisterRequest  true  "Account credentials"
// @Success      201      {object}  domain.RegisterResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      409      {object}  ErrorResponse  "Username already taken"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/register [post]
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Register(r.Context(), req)
	if err != nil {
		status, message := statusForError(err)
		writeError(w, status, message)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with username and password to receive a session token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      403      {object}  ErrorResponse  "Unknown username or wrong password"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		status, message := statusForError(err)
		writeError(w, status, message)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleWhoAmI godoc
// @Summary      Current identity
// @Description  Returns the user ID the presented token was issued for
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  WhoAmIResponse
// @Failure      403  {object}  ErrorResponse  "Missing, malformed, or expired token"
// @Router       /auth/whoami [get]
func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, WhoAmIResponse{UserID: UserIDFromContext(r.Context())})
}

// statusForError maps engine error kinds to wire responses. Login and token
// failures share one deliberately vague message; whatever detail the engine
// wrapped stays out of the response body.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, "a user with that name already exists"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "username and password are required"
	case errors.Is(err, domain.ErrLoginFailed), errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusForbidden, "access denied"
	default:
		return http.StatusInternalServerError, "an unknown error has occurred"
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
