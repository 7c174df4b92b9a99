package services

import (
	"context"

	"github.com/tinto-app/backend/internal/model"
	"github.com/tinto-app/backend/internal/period"
	"github.com/tinto-app/backend/internal/store"
	"github.com/tinto-app/backend/internal/store/sparqlstore"
)

// LeaderboardService produces ranked weekly activity for a group.
type LeaderboardService struct {
	store store.Store
}

func NewLeaderboardService(s store.Store) *LeaderboardService {
	return &LeaderboardService{store: s}
}

// Rank returns the leaderboard for a group and period. When periodKey is
// empty the current ISO week is used. Ranks are assigned as the 1-based
// position of the rows as the store returned them; the service does not
// re-sort. A group with no counters for the period yields an empty slice.
func (s *LeaderboardService) Rank(ctx context.Context, groupID, periodKey string) ([]*model.LeaderboardEntry, string, error) {
	if periodKey == "" {
		periodKey = period.Current()
	}
	groupURI := sparqlstore.GroupURIBase + groupID

	counts, err := s.store.Counters().RankedCounts(ctx, groupURI, periodKey)
	if err != nil {
		return nil, "", err
	}

	entries := make([]*model.LeaderboardEntry, 0, len(counts))
	for i, c := range counts {
		entries = append(entries, &model.LeaderboardEntry{
			Rank:     i + 1,
			UserURI:  c.UserURI,
			UserName: c.UserName,
			Count:    c.Count,
			Period:   periodKey,
		})
	}
	return entries, periodKey, nil
}
