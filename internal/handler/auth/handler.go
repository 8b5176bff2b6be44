// Package auth exposes the account endpoints: register, login, logout and
// profile.
package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/askmatic/askly-server/internal/auth"
	"github.com/askmatic/askly-server/internal/middleware"
	"github.com/askmatic/askly-server/internal/model/user"
	authservice "github.com/askmatic/askly-server/internal/service/auth"
	"github.com/askmatic/askly-server/internal/storage"
	"github.com/askmatic/askly-server/pkg/utils"
)

// Handler serves the auth routes.
type Handler struct {
	svc    *authservice.Service
	issuer *auth.Issuer
}

// New creates the auth handler.
func New(svc *authservice.Service, issuer *auth.Issuer) *Handler {
	return &Handler{svc: svc, issuer: issuer}
}

// RegisterRoutes mounts the auth endpoints. Only profile sits behind the
// session gate; the rest are public by nature.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.With(middleware.SessionGate(h.issuer)).Get("/profile", h.handleProfile)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FullName user.FullName `json:"fullName"`
		Email    string        `json:"email"`
		Password string        `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.FullName.FirstName == "" || payload.FullName.LastName == "" {
		utils.RespondError(w, http.StatusBadRequest, "first name and last name are required")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if !strings.Contains(payload.Email, "@") {
		utils.RespondError(w, http.StatusBadRequest, "invalid email format")
		return
	}

	u, err := h.svc.Register(r.Context(), payload.FullName, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrEmailTaken) {
			utils.RespondError(w, http.StatusBadRequest, "user already exists")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "server error")
		return
	}

	if !h.startSession(w, u.ID) {
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    u.Public(),
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Email == "" || payload.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := h.svc.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			utils.RespondError(w, http.StatusBadRequest, "invalid credentials")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "server error")
		return
	}

	if !h.startSession(w, u.ID) {
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    u.Public(),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Only the client-side cookie is removed; an already-issued token stays
	// valid until its natural expiry.
	h.issuer.ClearSessionCookie(w)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	u, err := h.svc.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "user not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"user": u.Public()})
}

// startSession issues a token and sets the session cookie. Returns false
// after writing an error response when issuing fails.
func (h *Handler) startSession(w http.ResponseWriter, userID string) bool {
	token, err := h.issuer.Issue(userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "server error")
		return false
	}
	h.issuer.SetSessionCookie(w, token)
	return true
}
