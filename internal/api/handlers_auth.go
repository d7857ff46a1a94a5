package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sainikith07/DynoCollect/internal/identity"
)

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// decodeCredentials reads and validates the email/password body.
func decodeCredentials(r *http.Request) (identity.Credentials, bool) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return identity.Credentials{}, false
	}
	if req.Email == "" || req.Password == "" {
		return identity.Credentials{}, false
	}
	return identity.Credentials{Email: req.Email, Password: req.Password}, true
}

// bearerToken extracts the access token from the Authorization header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(auth, prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	session, err := h.identity.Register(r.Context(), creds)
	if err != nil {
		h.logger.Warn("registration failed",
			"email", creds.Email,
			"error", err,
			"request_id", requestIDFrom(r.Context()),
		)
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    session.User,
		"session": session,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	session, err := h.identity.SignIn(r.Context(), creds)
	if err != nil {
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    session.User,
		"session": session,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.identity.SignOut(r.Context(), token); err != nil {
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out",
	})
}

func (h *Handler) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.identity.CurrentUser(r.Context(), token)
	if err != nil {
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}
