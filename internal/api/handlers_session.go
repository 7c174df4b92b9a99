package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tinto-app/backend/internal/api/respond"
	"github.com/tinto-app/backend/internal/model"
	"github.com/tinto-app/backend/internal/services"
)

// SessionHandler is a thin HTTP transport over the SessionService.
type SessionHandler struct {
	svc *services.SessionService
}

func NewSessionHandler(svc *services.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

type sessionAttributes struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /session
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data struct {
			Attributes sessionAttributes `json:"attributes"`
		} `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON body")
		return
	}
	identifier := req.Data.Attributes.Email
	password := req.Data.Attributes.Password
	if identifier == "" || password == "" {
		respond.WriteBadRequest(w, "Email and password required")
		return
	}

	token := r.Header.Get(SessionHeader)
	if token == "" {
		respond.WriteBadRequest(w, "No session from identifier (MU-SESSION-ID missing)")
		return
	}

	sess, err := h.svc.Login(r.Context(), token, identifier, password)
	switch {
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
		return
	case errors.Is(err, model.ErrUnauthorized):
		respond.WriteUnauthorized(w, "Invalid email or password")
		return
	case err != nil:
		respond.WriteInternalError(w, "Error creating session")
		return
	}

	respond.WriteData(w, http.StatusCreated, respond.Resource{
		Type: "sessions",
		ID:   sess.URI,
		Attributes: map[string]interface{}{
			"identifier":             sess.Identifier,
			"mu_auth_allowed_groups": sess.AllowedGroups,
		},
	})
}

// Me GET /me
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(SessionHeader) == "" {
		respond.WriteUnauthorized(w, "Session required (MU-SESSION-ID header)")
		return
	}
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		respond.WriteNotFound(w, "Session or user not found")
		return
	}

	respond.WriteData(w, http.StatusOK, respond.Resource{
		Type: "users",
		Attributes: map[string]interface{}{
			"name":        p.Name,
			"accountName": p.AccountName,
			"email":       p.Contact,
		},
	})
}
