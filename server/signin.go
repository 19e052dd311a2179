package server

import (
	"context"

	"github.com/legit-games/portal-iam/forums"
	"github.com/legit-games/portal-iam/store"
)

// signInManager maps the store's view of a linked login onto the sign-in
// statuses the reconciler understands. The portal's session is the JWT issued
// by the callback handler, so SignIn itself has nothing left to do.
type signInManager struct {
	users *store.UserStore
}

func (m *signInManager) ExternalSignIn(ctx context.Context, provider, providerKey string) forums.SignInStatus {
	u, err := m.users.FindByLogin(ctx, provider, providerKey)
	if err != nil || u == nil {
		return forums.SignInFailed
	}
	if u.Locked {
		return forums.SignInLockedOut
	}
	return forums.SignInSucceeded
}

func (m *signInManager) SignIn(ctx context.Context, userID string) error { return nil }

// userRegistry adapts store.UserStore to the reconciler's narrower interface.
type userRegistry struct {
	users *store.UserStore
}

func (r *userRegistry) FindByLogin(ctx context.Context, provider, providerKey string) (string, bool, error) {
	u, err := r.users.FindByLogin(ctx, provider, providerKey)
	if err != nil {
		return "", false, err
	}
	if u == nil {
		return "", false, nil
	}
	return u.ID, u.Locked, nil
}

func (r *userRegistry) Register(ctx context.Context, externalID, username, provider string, email *string) (string, error) {
	return r.users.Register(ctx, externalID, username, provider, email)
}

func (r *userRegistry) TouchLogin(ctx context.Context, userID string) error {
	return r.users.TouchLogin(ctx, userID)
}
