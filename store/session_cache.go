package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/legit-games/portal-iam/claims"
)

// DefaultSessionTTL is the accepted propagation bound for claim changes: an
// administratively granted or revoked claim may take up to this long to reach
// an already-logged-in user, because the claim set rides in the session
// credential until the cache entry expires. Operators should treat delays
// inside this window as expected, not as a fault.
const DefaultSessionTTL = 15 * time.Minute

// SessionCache caches a principal's claim set for the lifetime of a session
// credential. Entries expire on their own; Invalidate forces a refresh early.
type SessionCache interface {
	PutClaims(ctx context.Context, userID string, cs []claims.Claim, ttl time.Duration) error
	// GetClaims returns ok=false on a miss or expired entry.
	GetClaims(ctx context.Context, userID string) ([]claims.Claim, bool, error)
	Invalidate(ctx context.Context, userID string) error
}

// cachedClaim is the serialized form of one claim in a cache entry.
type cachedClaim struct {
	Type  string `json:"t"`
	Value string `json:"v"`
}

func encodeClaims(cs []claims.Claim) ([]byte, error) {
	rows := make([]cachedClaim, len(cs))
	for i, c := range cs {
		rows[i] = cachedClaim{Type: string(c.Type), Value: c.Value.String()}
	}
	return json.Marshal(rows)
}

func decodeClaims(data []byte) ([]claims.Claim, error) {
	var rows []cachedClaim
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	out := make([]claims.Claim, len(rows))
	for i, r := range rows {
		out[i] = claims.Claim{Type: claims.ClaimType(r.Type), Value: claims.ParseValue(r.Value)}
	}
	return out, nil
}
