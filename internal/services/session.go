package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tinto-app/backend/internal/model"
	"github.com/tinto-app/backend/internal/session"
	"github.com/tinto-app/backend/internal/store"
)

// sessionAllowedGroups is returned with every new session for the
// authorization proxy in front of this service.
var sessionAllowedGroups = []string{"public", "users"}

// SessionService handles login and session-based identity resolution.
type SessionService struct {
	store store.Store
	log   zerolog.Logger
}

func NewSessionService(s store.Store, log zerolog.Logger) *SessionService {
	return &SessionService{store: s, log: log}
}

// Login resolves the identifier to an account and replaces any session
// link held under the token's canonical identity.
//
// Resolution tries the account login name first and falls back to a
// person's contact identifier only when the first path returns zero rows.
// Both paths are tried before reporting model.ErrUnauthorized.
//
// The replace is delete-then-insert with no transaction around it. The
// delete is advisory: a failure is logged and login proceeds, since stale
// records must never block a new login.
func (s *SessionService) Login(ctx context.Context, rawToken, identifier, password string) (*model.Session, error) {
	if rawToken == "" || identifier == "" || password == "" {
		return nil, fmt.Errorf("%w: identifier, password and session token are required", model.ErrValidation)
	}

	accountURI, err := s.store.Accounts().FindByLoginName(ctx, identifier)
	if errors.Is(err, model.ErrNotFound) {
		accountURI, err = s.store.Accounts().FindByContact(ctx, identifier)
	}
	if errors.Is(err, model.ErrNotFound) {
		s.log.Info().Str("identifier", identifier).Msg("login rejected: unknown identifier")
		return nil, model.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	// Password verification is intentionally disabled; presence of the
	// credential field is all that is checked.

	key := session.Normalize(rawToken)
	if err := s.store.Sessions().InvalidateAll(ctx, key); err != nil {
		s.log.Warn().Err(err).Msg("could not invalidate old session records, continuing")
	}
	if err := s.store.Sessions().CreateLink(ctx, key, accountURI); err != nil {
		return nil, err
	}

	s.log.Info().Str("account", accountURI).Msg("session created")
	return &model.Session{
		URI:           session.CanonicalURI(rawToken),
		Identifier:    identifier,
		AllowedGroups: sessionAllowedGroups,
	}, nil
}

// ResolveBySession maps a raw session token to the user principal behind
// it. Returns model.ErrNotFound when the session has no link or the
// linked account has no person.
func (s *SessionService) ResolveBySession(ctx context.Context, rawToken string) (*model.UserPrincipal, error) {
	key := session.Normalize(rawToken)
	accountURI, err := s.store.Sessions().FindAccount(ctx, key)
	if err != nil {
		return nil, err
	}
	p, err := s.store.Accounts().PrincipalByAccount(ctx, accountURI)
	if err != nil {
		return nil, err
	}
	if p.Contact == "" {
		p.Contact = p.AccountName
	}
	return p, nil
}
