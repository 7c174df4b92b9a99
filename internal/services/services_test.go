package services

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tinto-app/backend/internal/model"
	"github.com/tinto-app/backend/internal/store"
)

// fakeStore is an in-memory store.Store used across the service tests.
type fakeStore struct {
	// accounts graph
	accountsByLogin   map[string]string
	accountsByContact map[string]string
	principals        map[string]*model.UserPrincipal

	// sessions graph: canonical key to linked account URIs. A slice so
	// tests can observe whether old links were removed before new ones
	// were written.
	links map[string][]string

	// application graph
	groups      map[string]*model.Group
	memberOf    map[string]map[string]bool
	membersOf   map[string]map[string]bool
	memberNames map[string]string

	counts map[string][]*model.MemberCount

	invalidateErr error
	createLinkErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accountsByLogin:   map[string]string{},
		accountsByContact: map[string]string{},
		principals:        map[string]*model.UserPrincipal{},
		links:             map[string][]string{},
		groups:            map[string]*model.Group{},
		memberOf:          map[string]map[string]bool{},
		membersOf:         map[string]map[string]bool{},
		memberNames:       map[string]string{},
		counts:            map[string][]*model.MemberCount{},
	}
}

func (f *fakeStore) Sessions() store.Sessions       { return (*fakeSessions)(f) }
func (f *fakeStore) Accounts() store.Accounts       { return (*fakeAccounts)(f) }
func (f *fakeStore) Groups() store.Groups           { return (*fakeGroups)(f) }
func (f *fakeStore) Memberships() store.Memberships { return (*fakeMemberships)(f) }
func (f *fakeStore) Counters() store.Counters       { return (*fakeCounters)(f) }

type fakeSessions fakeStore

func (f *fakeSessions) InvalidateAll(_ context.Context, key string) error {
	if f.invalidateErr != nil {
		return f.invalidateErr
	}
	delete(f.links, key)
	return nil
}

func (f *fakeSessions) CreateLink(_ context.Context, key, accountURI string) error {
	if f.createLinkErr != nil {
		return f.createLinkErr
	}
	f.links[key] = append(f.links[key], accountURI)
	return nil
}

func (f *fakeSessions) FindAccount(_ context.Context, key string) (string, error) {
	accounts := f.links[key]
	if len(accounts) == 0 {
		return "", model.ErrNotFound
	}
	sorted := append([]string(nil), accounts...)
	sort.Strings(sorted)
	return sorted[0], nil
}

type fakeAccounts fakeStore

func (f *fakeAccounts) FindByLoginName(_ context.Context, name string) (string, error) {
	if uri, ok := f.accountsByLogin[name]; ok {
		return uri, nil
	}
	return "", model.ErrNotFound
}

func (f *fakeAccounts) FindByContact(_ context.Context, contact string) (string, error) {
	if uri, ok := f.accountsByContact[contact]; ok {
		return uri, nil
	}
	return "", model.ErrNotFound
}

func (f *fakeAccounts) PrincipalByAccount(_ context.Context, accountURI string) (*model.UserPrincipal, error) {
	if p, ok := f.principals[accountURI]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, model.ErrNotFound
}

type fakeGroups fakeStore

func (f *fakeGroups) List(_ context.Context) ([]*model.Group, error) {
	out := make([]*model.Group, 0, len(f.groups))
	for _, g := range f.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeGroups) GetByID(_ context.Context, id string) (*model.Group, error) {
	if g, ok := f.groups[id]; ok {
		return g, nil
	}
	return nil, model.ErrNotFound
}

func (f *fakeGroups) Create(ctx context.Context, g *model.Group, creatorURI string) error {
	f.groups[g.ID] = g
	return (*fakeMemberships)(f).Create(ctx, creatorURI, g.URI)
}

type fakeMemberships fakeStore

func (f *fakeMemberships) Exists(_ context.Context, userURI, groupURI string) (bool, error) {
	return f.memberOf[userURI][groupURI], nil
}

func (f *fakeMemberships) Create(_ context.Context, userURI, groupURI string) error {
	if f.memberOf[userURI] == nil {
		f.memberOf[userURI] = map[string]bool{}
	}
	if f.membersOf[groupURI] == nil {
		f.membersOf[groupURI] = map[string]bool{}
	}
	f.memberOf[userURI][groupURI] = true
	f.membersOf[groupURI][userURI] = true
	return nil
}

func (f *fakeMemberships) Delete(_ context.Context, userURI, groupURI string) error {
	delete(f.memberOf[userURI], groupURI)
	delete(f.membersOf[groupURI], userURI)
	return nil
}

func (f *fakeMemberships) ListMembers(_ context.Context, groupID string) ([]*model.GroupMember, error) {
	g, ok := f.groups[groupID]
	if !ok {
		return nil, nil
	}
	out := make([]*model.GroupMember, 0, len(f.membersOf[g.URI]))
	for userURI := range f.membersOf[g.URI] {
		out = append(out, &model.GroupMember{
			URI:  userURI,
			ID:   strings.TrimPrefix(userURI, "http://example.org/users/"),
			Name: f.memberNames[userURI],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeCounters fakeStore

func (f *fakeCounters) RankedCounts(_ context.Context, groupURI, periodKey string) ([]*model.MemberCount, error) {
	return f.counts[groupURI+"|"+periodKey], nil
}

var _ store.Store = (*fakeStore)(nil)

func testLogger() zerolog.Logger { return zerolog.Nop() }
