package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tinto-app/backend/internal/model"
	"github.com/tinto-app/backend/internal/store"
	"github.com/tinto-app/backend/internal/store/sparqlstore"
)

// GroupService handles group resources.
type GroupService struct {
	store store.Store
	log   zerolog.Logger
}

func NewGroupService(s store.Store, log zerolog.Logger) *GroupService {
	return &GroupService{store: s, log: log}
}

func (s *GroupService) ListGroups(ctx context.Context) ([]*model.Group, error) {
	return s.store.Groups().List(ctx)
}

func (s *GroupService) GetGroup(ctx context.Context, id string) (*model.Group, error) {
	return s.store.Groups().GetByID(ctx, id)
}

// CreateGroup mints a new group and adds the creator as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, creator *model.UserPrincipal, name, status string) (*model.Group, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", model.ErrValidation)
	}
	if status == "" {
		status = sparqlstore.DefaultGroupStatus
	}

	id := uuid.NewString()
	g := &model.Group{
		URI:    sparqlstore.GroupURIBase + id,
		ID:     id,
		Name:   name,
		Status: status,
	}
	if err := s.store.Groups().Create(ctx, g, creator.URI); err != nil {
		return nil, err
	}
	s.log.Info().Str("group", g.URI).Str("creator", creator.URI).Msg("group created")
	return g, nil
}
