package forums

import (
	"context"
	"fmt"
	"log"

	"github.com/legit-games/portal-iam/claims"
)

// SignInStatus is the terminal result of an external sign-in attempt.
type SignInStatus int

const (
	SignInFailed SignInStatus = iota
	SignInSucceeded
	SignInLockedOut
)

// Outcome is the result of processing an external login callback.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeSuccess
	OutcomeLocked
	// OutcomeAnonymous means the provider reported no session info; the
	// caller should return the user to the login screen without error.
	OutcomeAnonymous
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "Success"
	case OutcomeLocked:
		return "Locked"
	case OutcomeAnonymous:
		return "Anonymous"
	default:
		return "Failed"
	}
}

// LoginInfo is what the external login callback delivers.
type LoginInfo struct {
	Provider    string
	ExternalID  string
	DisplayName string
	Email       string
}

// SignInManager abstracts the host application's session sign-in.
type SignInManager interface {
	// ExternalSignIn attempts to sign in an already-linked external login.
	ExternalSignIn(ctx context.Context, provider, providerKey string) SignInStatus
	// SignIn establishes a session for a local user.
	SignIn(ctx context.Context, userID string) error
}

// UserRegistry is the slice of the user store the reconciler needs.
type UserRegistry interface {
	FindByLogin(ctx context.Context, provider, providerKey string) (userID string, locked bool, err error)
	Register(ctx context.Context, externalID, username, provider string, email *string) (string, error)
	TouchLogin(ctx context.Context, userID string) error
}

// ClaimWriter is the slice of the claim store the reconciler needs.
type ClaimWriter interface {
	// ReplaceClaims atomically removes the user's stored claims and adds
	// the fresh set.
	ReplaceClaims(ctx context.Context, userID string, cs []claims.Claim) error
	AddClaims(ctx context.Context, userID string, cs []claims.Claim) error
}

// Reconciler drives login-time claim reconciliation: it maps the callback to
// new-registration, existing-user-update, or locked-account, and keeps the
// stored claim set in sync with the forum's group memberships.
type Reconciler struct {
	provider Provider
	signins  SignInManager
	users    UserRegistry
	claims   ClaimWriter
}

func NewReconciler(p Provider, s SignInManager, u UserRegistry, c ClaimWriter) *Reconciler {
	return &Reconciler{provider: p, signins: s, users: u, claims: c}
}

// ProcessExternalLogin consumes an external login callback.
//
// A successful provider sign-in means the login is already linked: the user's
// stored claims are replaced wholesale with a set freshly synthesized from
// the member's current groups, so revoked memberships drop off at login. A
// locked account mutates nothing. Any other sign-in result means the login is
// not linked yet and starts registration.
func (r *Reconciler) ProcessExternalLogin(ctx context.Context, info *LoginInfo) (Outcome, error) {
	if info == nil {
		return OutcomeAnonymous, nil
	}

	switch r.signins.ExternalSignIn(ctx, info.Provider, info.ExternalID) {
	case SignInSucceeded:
		return r.refreshExisting(ctx, info)
	case SignInLockedOut:
		log.Printf("forums: login for locked account, external id %s", info.ExternalID)
		return OutcomeLocked, nil
	default:
		return r.register(ctx, info)
	}
}

func (r *Reconciler) refreshExisting(ctx context.Context, info *LoginInfo) (Outcome, error) {
	userID, locked, err := r.users.FindByLogin(ctx, info.Provider, info.ExternalID)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("find linked user: %w", err)
	}
	if userID == "" {
		return r.register(ctx, info)
	}
	if locked {
		return OutcomeLocked, nil
	}

	member, err := r.provider.GetMember(ctx, info.ExternalID)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("member lookup: %w", err)
	}

	fresh := append(claims.Synthesize(member.Groups()), ProfileClaims(member)...)
	if err := r.claims.ReplaceClaims(ctx, userID, fresh); err != nil {
		return OutcomeFailed, fmt.Errorf("replace claims: %w", err)
	}
	if err := r.users.TouchLogin(ctx, userID); err != nil {
		return OutcomeFailed, fmt.Errorf("touch login: %w", err)
	}
	if err := r.signins.SignIn(ctx, userID); err != nil {
		return OutcomeFailed, fmt.Errorf("sign in: %w", err)
	}
	return OutcomeSuccess, nil
}

// register handles the "account not yet linked" path: create the local
// identity, link the external login, add the synthesized claims, sign in.
func (r *Reconciler) register(ctx context.Context, info *LoginInfo) (Outcome, error) {
	member, err := r.provider.GetMember(ctx, info.ExternalID)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("member lookup: %w", err)
	}

	username := info.DisplayName
	if username == "" {
		username = member.DisplayName
	}
	var email *string
	if info.Email != "" {
		email = &info.Email
	} else if member.Email != "" {
		email = &member.Email
	}

	userID, err := r.users.Register(ctx, info.ExternalID, username, info.Provider, email)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("register user: %w", err)
	}

	cs := append(claims.Synthesize(member.Groups()), ProfileClaims(member)...)
	if err := r.claims.AddClaims(ctx, userID, cs); err != nil {
		return OutcomeFailed, fmt.Errorf("add claims: %w", err)
	}
	if err := r.signins.SignIn(ctx, userID); err != nil {
		return OutcomeFailed, fmt.Errorf("sign in: %w", err)
	}
	log.Printf("forums: registered new user %s for external id %s", userID, info.ExternalID)
	return OutcomeSuccess, nil
}

// ProfileClaims builds the portal profile claims carried alongside the
// permission claims. Empty member fields contribute nothing.
func ProfileClaims(m *Member) []claims.Claim {
	var out []claims.Claim
	if m.ID != "" {
		out = append(out, claims.Claim{Type: claims.TypeUserProfileID, Value: claims.TextValue(m.ID)})
	}
	if m.PhotoURL != "" {
		out = append(out, claims.Claim{Type: claims.TypePhotoURL, Value: claims.TextValue(m.PhotoURL)})
	}
	if m.TimeZone != "" {
		out = append(out, claims.Claim{Type: claims.TypeTimeZone, Value: claims.TextValue(m.TimeZone)})
	}
	return out
}
