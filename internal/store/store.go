package store

import (
	"context"

	"github.com/tinto-app/backend/internal/model"
)

// Store exposes the graph-store operations required by services.
// Implementations live under internal/store/<driver>/ (e.g., sparqlstore).
type Store interface {
	Sessions() Sessions
	Accounts() Accounts
	Groups() Groups
	Memberships() Memberships
	Counters() Counters
}

// Sessions manages session-to-account links in the sessions graph.
// InvalidateAll followed by CreateLink is a best-effort sequence, not an
// atomic swap; the store offers no transaction spanning the two calls.
type Sessions interface {
	// InvalidateAll deletes every stored record whose identity matches the
	// canonical key under any historical representation (bare, prefixed,
	// double-prefixed).
	InvalidateAll(ctx context.Context, canonicalKey string) error
	// CreateLink inserts exactly one new session-to-account link.
	CreateLink(ctx context.Context, canonicalKey, accountURI string) error
	// FindAccount resolves the canonical key to its linked account URI.
	// Returns model.ErrNotFound when no link exists.
	FindAccount(ctx context.Context, canonicalKey string) (string, error)
}

// Accounts reads accounts and the people behind them from the
// application graph.
type Accounts interface {
	// FindByLoginName looks an account up by its login name.
	// Returns model.ErrNotFound on zero rows.
	FindByLoginName(ctx context.Context, name string) (string, error)
	// FindByContact looks an account up through a person's contact
	// identifier. Returns model.ErrNotFound on zero rows.
	FindByContact(ctx context.Context, contact string) (string, error)
	// PrincipalByAccount resolves the person linked to an account.
	// Returns model.ErrNotFound when no person is linked.
	PrincipalByAccount(ctx context.Context, accountURI string) (*model.UserPrincipal, error)
}

// Groups manages group resources.
type Groups interface {
	List(ctx context.Context) ([]*model.Group, error)
	// GetByID returns model.ErrNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*model.Group, error)
	// Create inserts the group facts together with the creator's
	// membership edge pair in a single update.
	Create(ctx context.Context, g *model.Group, creatorURI string) error
}

// Memberships manages the paired group/user edges. Create and Delete each
// emit both directional edges in one update so no caller can produce a
// half-formed relationship.
type Memberships interface {
	Exists(ctx context.Context, userURI, groupURI string) (bool, error)
	Create(ctx context.Context, userURI, groupURI string) error
	Delete(ctx context.Context, userURI, groupURI string) error
	// ListMembers returns group members ordered by display name ascending.
	ListMembers(ctx context.Context, groupID string) ([]*model.GroupMember, error)
}

// Counters reads period-scoped activity counters.
type Counters interface {
	// RankedCounts returns member counters for one group and period,
	// ordered by count descending with ties broken by user URI ascending.
	RankedCounts(ctx context.Context, groupURI, periodKey string) ([]*model.MemberCount, error)
}
