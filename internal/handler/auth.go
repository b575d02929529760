package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"recycletrack-api/internal/model"
	"recycletrack-api/internal/repository"
	"recycletrack-api/internal/service"
	"recycletrack-api/pkg/apierror"
	"recycletrack-api/pkg/response"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	accounts *service.AccountService
	sessions *service.SessionService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(accounts *service.AccountService, sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
	}
}

// CredentialsRequest represents the request body for register and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse represents a successful register or login.
type SessionResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	ExpiresIn int64  `json:"expires_in"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if req.Username == "" {
		response.Error(w, apierror.BadRequest("username is required"))
		return
	}
	if req.Password == "" {
		response.Error(w, apierror.BadRequest("password is required"))
		return
	}

	userID, err := h.accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			response.Error(w, apierror.Conflict("username already taken"))
			return
		}
		response.Error(w, apierror.InternalError("failed to register account"))
		return
	}

	token, err := h.sessions.GenerateToken(r.Context(), model.TokenData{
		UserID:   userID,
		Username: req.Username,
	})
	if err != nil {
		response.Error(w, apierror.InternalError("failed to create session"))
		return
	}

	response.Created(w, SessionResponse{
		Token:     token,
		UserID:    userID,
		Username:  req.Username,
		ExpiresIn: int64(h.sessions.TTL().Seconds()),
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	userID, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(w, apierror.Unauthorized("invalid username or password"))
			return
		}
		response.Error(w, apierror.InternalError("failed to log in"))
		return
	}

	token, err := h.sessions.GenerateToken(r.Context(), model.TokenData{
		UserID:   userID,
		Username: req.Username,
	})
	if err != nil {
		response.Error(w, apierror.InternalError("failed to create session"))
		return
	}

	response.OK(w, SessionResponse{
		Token:     token,
		UserID:    userID,
		Username:  req.Username,
		ExpiresIn: int64(h.sessions.TTL().Seconds()),
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Token")
	if token == "" {
		response.Error(w, apierror.BadRequest("X-Token header required"))
		return
	}

	if err := h.sessions.RevokeToken(r.Context(), token); err != nil {
		response.Error(w, apierror.InternalError("failed to revoke session"))
		return
	}

	response.OK(w, map[string]string{"status": "logged_out"})
}
