// Package forums integrates the community forum as the external identity
// provider. The forum itself is a black box: it authenticates users, reports
// a stable member id, and exposes group memberships as opaque strings.
package forums

import (
	"context"

	"golang.org/x/oauth2"
)

// Member is the forum's record for one account: identity fields plus the
// primary and secondary group names the portal synthesizes claims from.
type Member struct {
	ID              string
	DisplayName     string
	Email           string
	PhotoURL        string
	TimeZone        string
	PrimaryGroup    string
	SecondaryGroups []string
}

// Groups returns the member's full group list, primary first.
func (m *Member) Groups() []string {
	out := make([]string, 0, 1+len(m.SecondaryGroups))
	if m.PrimaryGroup != "" {
		out = append(out, m.PrimaryGroup)
	}
	return append(out, m.SecondaryGroups...)
}

// Provider is the forum member-lookup API.
type Provider interface {
	// GetMember fetches the member record for a stable external id.
	GetMember(ctx context.Context, externalID string) (*Member, error)
	// Identify resolves the member a freshly exchanged access token
	// belongs to.
	Identify(ctx context.Context, token *oauth2.Token) (*Member, error)
}

// Authenticator builds the OAuth redirect properties for the forum login
// round trip and exchanges callback codes for tokens.
type Authenticator struct {
	cfg *oauth2.Config
}

// NewAuthenticator wires the forum's OAuth endpoints.
func NewAuthenticator(clientID, clientSecret, authURL, tokenURL, redirectURL string, scopes []string) *Authenticator {
	return &Authenticator{cfg: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
	}}
}

// ConfigureExternalAuthenticationProperties returns the forum authorization
// URL to redirect the browser to. state carries the anti-forgery token the
// callback handler verifies; the caller keeps the eventual returnUrl in its
// own session.
func (a *Authenticator) ConfigureExternalAuthenticationProperties(state string) string {
	return a.cfg.AuthCodeURL(state)
}

// Exchange trades the callback code for a token.
func (a *Authenticator) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return a.cfg.Exchange(ctx, code)
}
