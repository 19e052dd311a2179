package forums

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/legit-games/portal-iam/claims"
)

type fakeProvider struct {
	members map[string]*Member
	err     error
}

func (f *fakeProvider) GetMember(_ context.Context, externalID string) (*Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.members[externalID]
	if !ok {
		return nil, errors.New("no such member")
	}
	return m, nil
}

func (f *fakeProvider) Identify(_ context.Context, _ *oauth2.Token) (*Member, error) {
	return nil, errors.New("not used")
}

type fakeSignIns struct {
	status    SignInStatus
	signedIn  []string
	signInErr error
}

func (f *fakeSignIns) ExternalSignIn(_ context.Context, _, _ string) SignInStatus {
	return f.status
}

func (f *fakeSignIns) SignIn(_ context.Context, userID string) error {
	if f.signInErr != nil {
		return f.signInErr
	}
	f.signedIn = append(f.signedIn, userID)
	return nil
}

type fakeUsers struct {
	byLogin    map[string]string // provider|key -> userID
	locked     map[string]bool
	registered []string
	touched    []string
	nextID     string
}

func (f *fakeUsers) FindByLogin(_ context.Context, provider, key string) (string, bool, error) {
	id := f.byLogin[provider+"|"+key]
	return id, f.locked[id], nil
}

func (f *fakeUsers) Register(_ context.Context, externalID, username, provider string, _ *string) (string, error) {
	f.registered = append(f.registered, externalID)
	if f.byLogin == nil {
		f.byLogin = make(map[string]string)
	}
	f.byLogin[provider+"|"+externalID] = f.nextID
	return f.nextID, nil
}

func (f *fakeUsers) TouchLogin(_ context.Context, userID string) error {
	f.touched = append(f.touched, userID)
	return nil
}

type fakeClaims struct {
	stored   map[string][]claims.Claim
	replaced []string
	added    []string
}

func newFakeClaims() *fakeClaims {
	return &fakeClaims{stored: make(map[string][]claims.Claim)}
}

func (f *fakeClaims) ReplaceClaims(_ context.Context, userID string, cs []claims.Claim) error {
	f.replaced = append(f.replaced, userID)
	f.stored[userID] = cs
	return nil
}

func (f *fakeClaims) AddClaims(_ context.Context, userID string, cs []claims.Claim) error {
	f.added = append(f.added, userID)
	f.stored[userID] = append(f.stored[userID], cs...)
	return nil
}

func member(id string, groups ...string) *Member {
	m := &Member{ID: id, DisplayName: "player-" + id, TimeZone: "Europe/London"}
	if len(groups) > 0 {
		m.PrimaryGroup = groups[0]
		m.SecondaryGroups = groups[1:]
	}
	return m
}

func TestProcessExternalLogin_RefreshReplacesClaims(t *testing.T) {
	provider := &fakeProvider{members: map[string]*Member{
		"101": member("101", "COD4 Admin"),
	}}
	signins := &fakeSignIns{status: SignInSucceeded}
	users := &fakeUsers{byLogin: map[string]string{"forums|101": "user-1"}}
	cw := newFakeClaims()
	// Stale grant from a membership the user no longer holds.
	cw.stored["user-1"] = []claims.Claim{{Type: claims.TypeSeniorAdmin, Value: claims.Sentinel()}}

	r := NewReconciler(provider, signins, users, cw)
	outcome, err := r.ProcessExternalLogin(context.Background(), &LoginInfo{Provider: "forums", ExternalID: "101"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, outcome)

	// Replace-all: the stale SeniorAdmin grant is gone, only the fresh set remains.
	assert.Equal(t, []string{"user-1"}, cw.replaced)
	assert.Empty(t, cw.added)
	stored := cw.stored["user-1"]
	for _, c := range stored {
		assert.NotEqual(t, claims.TypeSeniorAdmin, c.Type, "stale claim survived replacement")
	}
	assert.Equal(t, []string{"user-1"}, users.touched)
	assert.Equal(t, []string{"user-1"}, signins.signedIn)
}

func TestProcessExternalLogin_RefreshCarriesProfileClaims(t *testing.T) {
	provider := &fakeProvider{members: map[string]*Member{
		"101": member("101", "Rust Moderator"),
	}}
	signins := &fakeSignIns{status: SignInSucceeded}
	users := &fakeUsers{byLogin: map[string]string{"forums|101": "user-1"}}
	cw := newFakeClaims()

	r := NewReconciler(provider, signins, users, cw)
	_, err := r.ProcessExternalLogin(context.Background(), &LoginInfo{Provider: "forums", ExternalID: "101"})
	require.NoError(t, err)

	types := make(map[claims.ClaimType]bool)
	for _, c := range cw.stored["user-1"] {
		types[c.Type] = true
	}
	assert.True(t, types[claims.TypeModerator])
	assert.True(t, types[claims.TypeUserProfileID])
	assert.True(t, types[claims.TypeTimeZone])
}

func TestProcessExternalLogin_LockedMutatesNothing(t *testing.T) {
	provider := &fakeProvider{members: map[string]*Member{"101": member("101", "Senior Admin")}}
	signins := &fakeSignIns{status: SignInLockedOut}
	users := &fakeUsers{byLogin: map[string]string{"forums|101": "user-1"}}
	cw := newFakeClaims()
	existing := []claims.Claim{{Type: claims.TypeModerator, Value: claims.GameValue("Rust")}}
	cw.stored["user-1"] = existing

	r := NewReconciler(provider, signins, users, cw)
	outcome, err := r.ProcessExternalLogin(context.Background(), &LoginInfo{Provider: "forums", ExternalID: "101"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeLocked, outcome)

	assert.Empty(t, cw.replaced)
	assert.Empty(t, cw.added)
	assert.Equal(t, existing, cw.stored["user-1"])
	assert.Empty(t, signins.signedIn)
	assert.Empty(t, users.touched)
}

func TestProcessExternalLogin_LockedFlagOnLinkedUser(t *testing.T) {
	// The provider sign-in succeeds, but the local account is locked.
	provider := &fakeProvider{members: map[string]*Member{"101": member("101")}}
	signins := &fakeSignIns{status: SignInSucceeded}
	users := &fakeUsers{
		byLogin: map[string]string{"forums|101": "user-1"},
		locked:  map[string]bool{"user-1": true},
	}
	cw := newFakeClaims()

	r := NewReconciler(provider, signins, users, cw)
	outcome, err := r.ProcessExternalLogin(context.Background(), &LoginInfo{Provider: "forums", ExternalID: "101"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeLocked, outcome)
	assert.Empty(t, cw.replaced)
	assert.Empty(t, signins.signedIn)
}

func TestProcessExternalLogin_UnlinkedRegisters(t *testing.T) {
	provider := &fakeProvider{members: map[string]*Member{
		"202": member("202", "Battlefield Admin"),
	}}
	signins := &fakeSignIns{status: SignInFailed}
	users := &fakeUsers{nextID: "user-2"}
	cw := newFakeClaims()

	r := NewReconciler(provider, signins, users, cw)
	outcome, err := r.ProcessExternalLogin(context.Background(), &LoginInfo{Provider: "forums", ExternalID: "202", DisplayName: "fresh"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, outcome)

	assert.Equal(t, []string{"202"}, users.registered)
	assert.Equal(t, []string{"user-2"}, cw.added)
	assert.Empty(t, cw.replaced)
	assert.Equal(t, []string{"user-2"}, signins.signedIn)

	// The Battlefield series group fanned out per title.
	var admins int
	for _, c := range cw.stored["user-2"] {
		if c.Type == claims.TypeGameAdmin {
			admins++
		}
	}
	assert.Equal(t, 5, admins)
}

func TestProcessExternalLogin_SucceededButNoLinkFallsBackToRegister(t *testing.T) {
	// The sign-in manager reports success but the login row is gone; the
	// reconciler treats it as a fresh registration rather than failing.
	provider := &fakeProvider{members: map[string]*Member{"303": member("303")}}
	signins := &fakeSignIns{status: SignInSucceeded}
	users := &fakeUsers{nextID: "user-3"}
	cw := newFakeClaims()

	r := NewReconciler(provider, signins, users, cw)
	outcome, err := r.ProcessExternalLogin(context.Background(), &LoginInfo{Provider: "forums", ExternalID: "303"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, outcome)
	assert.Equal(t, []string{"303"}, users.registered)
}

func TestProcessExternalLogin_NilInfoIsAnonymous(t *testing.T) {
	r := NewReconciler(&fakeProvider{}, &fakeSignIns{}, &fakeUsers{}, newFakeClaims())
	outcome, err := r.ProcessExternalLogin(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAnonymous, outcome)
}

func TestProcessExternalLogin_MemberLookupFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("forum down")}
	signins := &fakeSignIns{status: SignInSucceeded}
	users := &fakeUsers{byLogin: map[string]string{"forums|101": "user-1"}}
	cw := newFakeClaims()
	cw.stored["user-1"] = []claims.Claim{{Type: claims.TypeModerator, Value: claims.GameValue("Rust")}}

	r := NewReconciler(provider, signins, users, cw)
	outcome, err := r.ProcessExternalLogin(context.Background(), &LoginInfo{Provider: "forums", ExternalID: "101"})
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, outcome)
	// Stored claims untouched on failure.
	assert.Len(t, cw.stored["user-1"], 1)
}

func TestProfileClaims_SkipsEmptyFields(t *testing.T) {
	m := &Member{ID: "7"}
	cs := ProfileClaims(m)
	require.Len(t, cs, 1)
	assert.Equal(t, claims.TypeUserProfileID, cs[0].Type)
	assert.Equal(t, "7", cs[0].Value.String())

	assert.Empty(t, ProfileClaims(&Member{}))
}
