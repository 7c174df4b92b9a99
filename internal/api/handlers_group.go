package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tinto-app/backend/internal/api/respond"
	"github.com/tinto-app/backend/internal/model"
	"github.com/tinto-app/backend/internal/services"
)

// GroupHandler serves group and membership endpoints.
type GroupHandler struct {
	groups      *services.GroupService
	memberships *services.MembershipService
}

func NewGroupHandler(groups *services.GroupService, memberships *services.MembershipService) *GroupHandler {
	return &GroupHandler{groups: groups, memberships: memberships}
}

// requirePrincipal writes a 401 and returns false when the request has no
// resolved principal.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (*model.UserPrincipal, bool) {
	if r.Header.Get(SessionHeader) == "" {
		respond.WriteUnauthorized(w, "Session required")
		return nil, false
	}
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		respond.WriteUnauthorized(w, "User not found")
		return nil, false
	}
	return p, true
}

func groupResource(g *model.Group) respond.Resource {
	return respond.Resource{
		Type: "groups",
		ID:   g.ID,
		Attributes: map[string]interface{}{
			"uri":    g.URI,
			"name":   g.Name,
			"status": g.Status,
		},
	}
}

func memberResources(members []*model.GroupMember) []respond.Resource {
	out := make([]respond.Resource, 0, len(members))
	for _, m := range members {
		out = append(out, respond.Resource{
			Type: "users",
			ID:   m.ID,
			Attributes: map[string]interface{}{
				"uri":  m.URI,
				"name": m.Name,
			},
		})
	}
	return out
}

// ListGroups GET /groups
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	gs, err := h.groups.ListGroups(r.Context())
	if err != nil {
		respond.WriteInternalError(w, "Error fetching groups")
		return
	}
	out := make([]respond.Resource, 0, len(gs))
	for _, g := range gs {
		out = append(out, groupResource(g))
	}
	respond.WriteData(w, http.StatusOK, out)
}

// GetGroup GET /groups/{id}
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	g, err := h.groups.GetGroup(r.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		respond.WriteNotFound(w, "Group not found")
		return
	}
	if err != nil {
		respond.WriteInternalError(w, "Error fetching group")
		return
	}

	members, err := h.memberships.ListMembers(r.Context(), id)
	if err != nil {
		respond.WriteInternalError(w, "Error fetching group")
		return
	}

	res := groupResource(g)
	res.Relationships = map[string]interface{}{
		"members": map[string]interface{}{"data": memberResources(members)},
	}
	respond.WriteData(w, http.StatusOK, res)
}

// CreateGroup POST /groups
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req struct {
		Data struct {
			Attributes struct {
				Name   string `json:"name"`
				Status string `json:"status"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON body")
		return
	}

	g, err := h.groups.CreateGroup(r.Context(), p, req.Data.Attributes.Name, req.Data.Attributes.Status)
	if errors.Is(err, model.ErrValidation) {
		respond.WriteBadRequest(w, "Group name is required")
		return
	}
	if err != nil {
		respond.WriteInternalError(w, "Error creating group")
		return
	}
	respond.WriteData(w, http.StatusCreated, groupResource(g))
}

// Join POST /groups/{id}/join
func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	m, err := h.memberships.Join(r.Context(), p, id)
	switch {
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, "Group not found")
		return
	case errors.Is(err, model.ErrAlreadyMember):
		respond.WriteBadRequest(w, "Already a member of this group")
		return
	case err != nil:
		respond.WriteInternalError(w, "Error joining group")
		return
	}

	respond.WriteData(w, http.StatusOK, respond.Resource{
		Type: "memberships",
		Attributes: map[string]interface{}{
			"user":    m.UserURI,
			"group":   m.GroupURI,
			"message": "Successfully joined group",
		},
	})
}

// ListMembers GET /groups/{id}/members
func (h *GroupHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	members, err := h.memberships.ListMembers(r.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		respond.WriteNotFound(w, "Group not found")
		return
	}
	if err != nil {
		respond.WriteInternalError(w, "Error fetching group members")
		return
	}
	respond.WriteData(w, http.StatusOK, memberResources(members))
}

// Leave DELETE /groups/{id}/leave
func (h *GroupHandler) Leave(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	err := h.memberships.Leave(r.Context(), p, id)
	switch {
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, "Group not found")
		return
	case errors.Is(err, model.ErrNotMember):
		respond.WriteBadRequest(w, "Not a member of this group")
		return
	case err != nil:
		respond.WriteInternalError(w, "Error leaving group")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
