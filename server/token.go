package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/legit-games/portal-iam/claims"
)

// SessionClaims is the JWT payload of a portal session credential. The
// principal's permission claims are embedded so policy checks need no store
// round trip; the cost is the documented staleness window bounded by the
// token TTL.
type SessionClaims struct {
	jwt.RegisteredClaims
	Username     string          `json:"username,omitempty"`
	ExternalID   string          `json:"external_id,omitempty"`
	PortalClaims []embeddedClaim `json:"portal_claims"`
}

type embeddedClaim struct {
	Type  string `json:"t"`
	Value string `json:"v"`
}

// ClaimSet converts the embedded claims back to their typed form.
func (sc *SessionClaims) ClaimSet() []claims.Claim {
	out := make([]claims.Claim, len(sc.PortalClaims))
	for i, e := range sc.PortalClaims {
		out[i] = claims.Claim{Type: claims.ClaimType(e.Type), Value: claims.ParseValue(e.Value)}
	}
	return out
}

// TokenService issues and parses session credentials.
type TokenService struct {
	SignedKey    []byte
	SignedMethod jwt.SigningMethod
	TTL          time.Duration
}

// NewTokenService creates a token service. ttl<=0 falls back to 15 minutes,
// the accepted claim-propagation bound.
func NewTokenService(key []byte, method jwt.SigningMethod, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &TokenService{SignedKey: key, SignedMethod: method, TTL: ttl}
}

// Issue signs a session credential for a user with their current claim set.
func (t *TokenService) Issue(userID, username, externalID string, cs []claims.Claim) (string, error) {
	embedded := make([]embeddedClaim, len(cs))
	for i, c := range cs {
		embedded[i] = embeddedClaim{Type: string(c.Type), Value: c.Value.String()}
	}
	now := time.Now()
	sc := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
		},
		Username:     username,
		ExternalID:   externalID,
		PortalClaims: embedded,
	}
	return jwt.NewWithClaims(t.SignedMethod, sc).SignedString(t.SignedKey)
}

// Parse validates a session credential and returns its payload.
func (t *TokenService) Parse(tokenString string) (*SessionClaims, error) {
	var sc SessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &sc, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != t.SignedMethod.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return t.SignedKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return &sc, nil
}
