package handler

import (
	"encoding/json"
	"net/http"

	"github.com/notekeep-api/internal/application/signin"
	"github.com/notekeep-api/internal/transport/http/middleware"
)

// SessionHandler handles sign-in, sign-out and session introspection.
// Sessions are stateless JWTs, so sign-out is an acknowledgement only; the
// client discards the token.
type SessionHandler struct {
	svc signin.Service
}

func NewSessionHandler(svc signin.Service) *SessionHandler { return &SessionHandler{svc: svc} }

func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signin.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.svc.SignIn(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// MagicLink answers 200 with the same message regardless of whether an
// account exists for the address.
func (h *SessionHandler) MagicLink(w http.ResponseWriter, r *http.Request) {
	var req signin.MagicLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.RequestMagicLink(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "sign-in link sent"})
}

func (h *SessionHandler) SignOut(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "signed out"})
}

// Current returns the identity carried by the presented token.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"user_id": claims.UserID,
		"email":   claims.Email,
		"name":    claims.Name,
		"image":   claims.Image,
	})
}
