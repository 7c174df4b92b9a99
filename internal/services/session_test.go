package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinto-app/backend/internal/model"
)

const (
	accountURI = "http://example.org/accounts/a1"
	userURI    = "http://example.org/users/u1"
)

func sessionFixture() *fakeStore {
	fs := newFakeStore()
	fs.accountsByLogin["alice@example.org"] = accountURI
	fs.accountsByContact["alice@example.org"] = accountURI
	fs.principals[accountURI] = &model.UserPrincipal{
		URI:         userURI,
		ID:          "uuid-1",
		Name:        "Alice",
		AccountURI:  accountURI,
		AccountName: "alice@example.org",
		Contact:     "alice@example.org",
	}
	return fs
}

func TestLoginByAccountName(t *testing.T) {
	fs := sessionFixture()
	svc := NewSessionService(fs, testLogger())

	sess, err := svc.Login(context.Background(), "tok-1", "alice@example.org", "secret")
	require.NoError(t, err)
	assert.Equal(t, "http://mu.semte.ch/sessions/tok-1", sess.URI)
	assert.Equal(t, []string{"public", "users"}, sess.AllowedGroups)
	assert.Equal(t, []string{accountURI}, fs.links["tok-1"])
}

func TestLoginFallsBackToContact(t *testing.T) {
	fs := sessionFixture()
	// Identifier only reachable through the person's contact path.
	delete(fs.accountsByLogin, "alice@example.org")
	svc := NewSessionService(fs, testLogger())

	_, err := svc.Login(context.Background(), "tok-1", "alice@example.org", "secret")
	require.NoError(t, err)
	assert.Equal(t, []string{accountURI}, fs.links["tok-1"])
}

func TestLoginUnknownIdentifier(t *testing.T) {
	svc := NewSessionService(newFakeStore(), testLogger())
	_, err := svc.Login(context.Background(), "tok-1", "nobody@example.org", "secret")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestLoginValidation(t *testing.T) {
	svc := NewSessionService(sessionFixture(), testLogger())
	for _, tc := range []struct {
		name                        string
		token, identifier, password string
	}{
		{name: "missing token", identifier: "alice@example.org", password: "x"},
		{name: "missing identifier", token: "tok-1", password: "x"},
		{name: "missing password", token: "tok-1", identifier: "alice@example.org"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.token, tc.identifier, tc.password)
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}
}

func TestLoginReplacesExistingLink(t *testing.T) {
	fs := sessionFixture()
	fs.accountsByLogin["bob"] = "http://example.org/accounts/a2"
	fs.principals["http://example.org/accounts/a2"] = &model.UserPrincipal{URI: "http://example.org/users/u2"}
	svc := NewSessionService(fs, testLogger())

	_, err := svc.Login(context.Background(), "tok-1", "alice@example.org", "secret")
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), "tok-1", "bob", "secret")
	require.NoError(t, err)

	// Last login wins; the earlier link is gone.
	assert.Equal(t, []string{"http://example.org/accounts/a2"}, fs.links["tok-1"])
}

func TestLoginNormalizesPrefixedTokens(t *testing.T) {
	fs := sessionFixture()
	svc := NewSessionService(fs, testLogger())

	_, err := svc.Login(context.Background(),
		"http://mu.semte.ch/sessions/http://mu.semte.ch/sessions/tok-1",
		"alice@example.org", "secret")
	require.NoError(t, err)
	assert.Equal(t, []string{accountURI}, fs.links["tok-1"])
}

func TestLoginContinuesWhenInvalidateFails(t *testing.T) {
	fs := sessionFixture()
	fs.invalidateErr = errors.New("endpoint hiccup")
	svc := NewSessionService(fs, testLogger())

	_, err := svc.Login(context.Background(), "tok-1", "alice@example.org", "secret")
	require.NoError(t, err)
	assert.Equal(t, []string{accountURI}, fs.links["tok-1"])
}

func TestLoginFailsWhenCreateLinkFails(t *testing.T) {
	fs := sessionFixture()
	fs.createLinkErr = errors.New("endpoint down")
	svc := NewSessionService(fs, testLogger())

	_, err := svc.Login(context.Background(), "tok-1", "alice@example.org", "secret")
	assert.Error(t, err)
}

func TestResolveBySession(t *testing.T) {
	fs := sessionFixture()
	fs.links["tok-1"] = []string{accountURI}
	svc := NewSessionService(fs, testLogger())

	p, err := svc.ResolveBySession(context.Background(), "http://mu.semte.ch/sessions/tok-1")
	require.NoError(t, err)
	assert.Equal(t, userURI, p.URI)
	assert.Equal(t, "Alice", p.Name)
}

func TestResolveBySessionContactFallsBackToAccountName(t *testing.T) {
	fs := sessionFixture()
	fs.links["tok-1"] = []string{accountURI}
	fs.principals[accountURI].Contact = ""
	svc := NewSessionService(fs, testLogger())

	p, err := svc.ResolveBySession(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.org", p.Contact)
}

func TestResolveBySessionUnknownToken(t *testing.T) {
	svc := NewSessionService(sessionFixture(), testLogger())
	_, err := svc.ResolveBySession(context.Background(), "tok-unknown")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
