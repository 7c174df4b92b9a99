package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tinto-app/backend/internal/api/respond"
	"github.com/tinto-app/backend/internal/services"
	"github.com/tinto-app/backend/internal/store/sparqlstore"
)

// LeaderboardHandler serves the weekly leaderboard endpoint.
type LeaderboardHandler struct {
	svc *services.LeaderboardService
}

func NewLeaderboardHandler(svc *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

// Leaderboard GET /groups/{id}/leaderboard?period=YYYY-Www
func (h *LeaderboardHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(SessionHeader) == "" {
		respond.WriteUnauthorized(w, "Session required (MU-SESSION-ID header)")
		return
	}

	groupID := mux.Vars(r)["id"]

	entries, periodKey, err := h.svc.Rank(r.Context(), groupID, r.URL.Query().Get("period"))
	if err != nil {
		respond.WriteInternalError(w, "Error building leaderboard")
		return
	}

	out := make([]respond.Resource, 0, len(entries))
	for _, e := range entries {
		out = append(out, respond.Resource{
			Type:       "leaderboard-entry",
			ID:         strconv.Itoa(e.Rank),
			Attributes: e,
		})
	}
	respond.WriteDataMeta(w, http.StatusOK, out, map[string]interface{}{
		"groupId":  groupID,
		"groupUri": sparqlstore.GroupURIBase + groupID,
		"period":   periodKey,
	})
}
