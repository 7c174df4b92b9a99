package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tinto-app/backend/internal/model"
	"github.com/tinto-app/backend/internal/store"
)

// MembershipService enforces the join/leave contract over the paired
// membership edges.
type MembershipService struct {
	store store.Store
	log   zerolog.Logger
}

func NewMembershipService(s store.Store, log zerolog.Logger) *MembershipService {
	return &MembershipService{store: s, log: log}
}

// Join adds the user to the group. Returns model.ErrNotFound for unknown
// groups and model.ErrAlreadyMember when the membership already exists;
// a second join never creates duplicate edges.
func (s *MembershipService) Join(ctx context.Context, user *model.UserPrincipal, groupID string) (*model.Membership, error) {
	g, err := s.store.Groups().GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	member, err := s.store.Memberships().Exists(ctx, user.URI, g.URI)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, model.ErrAlreadyMember
	}

	if err := s.store.Memberships().Create(ctx, user.URI, g.URI); err != nil {
		return nil, err
	}
	s.log.Info().Str("user", user.URI).Str("group", g.URI).Msg("membership created")
	return &model.Membership{UserURI: user.URI, GroupURI: g.URI}, nil
}

// Leave removes the user from the group. Returns model.ErrNotMember when
// no membership exists; nothing is mutated in that case.
func (s *MembershipService) Leave(ctx context.Context, user *model.UserPrincipal, groupID string) error {
	g, err := s.store.Groups().GetByID(ctx, groupID)
	if err != nil {
		return err
	}

	member, err := s.store.Memberships().Exists(ctx, user.URI, g.URI)
	if err != nil {
		return err
	}
	if !member {
		return model.ErrNotMember
	}

	if err := s.store.Memberships().Delete(ctx, user.URI, g.URI); err != nil {
		return err
	}
	s.log.Info().Str("user", user.URI).Str("group", g.URI).Msg("membership deleted")
	return nil
}

// ListMembers returns the group's members ordered by name. A group with
// zero members yields an empty list; an unknown group yields
// model.ErrNotFound. The two must stay distinguishable.
func (s *MembershipService) ListMembers(ctx context.Context, groupID string) ([]*model.GroupMember, error) {
	members, err := s.store.Memberships().ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		if _, err := s.store.Groups().GetByID(ctx, groupID); err != nil {
			return nil, err
		}
	}
	return members, nil
}
