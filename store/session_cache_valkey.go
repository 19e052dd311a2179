package store

import (
	"context"
	"time"

	valkey "github.com/valkey-io/valkey-go"

	"github.com/legit-games/portal-iam/claims"
)

// ValkeySessionCache stores session claim sets in Valkey (Redis-compatible),
// for deployments running more than one portal instance.
type ValkeySessionCache struct {
	client valkey.Client
	prefix string
}

// NewValkeySessionCache creates a Valkey-backed session cache.
// addr example: "127.0.0.1:6379"; prefix helps namespace keys.
func NewValkeySessionCache(addr string, prefix string) (*ValkeySessionCache, error) {
	cli, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = "portal:"
	}
	return &ValkeySessionCache{client: cli, prefix: prefix}, nil
}

func (c *ValkeySessionCache) key(userID string) string { return c.prefix + "claims:" + userID }

// PutClaims stores the claim set under the user's key with the given TTL.
func (c *ValkeySessionCache) PutClaims(ctx context.Context, userID string, cs []claims.Claim, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	jv, err := encodeClaims(cs)
	if err != nil {
		return err
	}
	return c.client.Do(ctx, c.client.B().Set().Key(c.key(userID)).Value(string(jv)).Ex(ttl).Build()).Error()
}

// GetClaims fetches the cached claim set; a missing key is a miss, not an error.
func (c *ValkeySessionCache) GetClaims(ctx context.Context, userID string) ([]claims.Claim, bool, error) {
	resp := c.client.Do(ctx, c.client.B().Get().Key(c.key(userID)).Build())
	if err := resp.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	data, err := resp.AsBytes()
	if err != nil {
		return nil, false, err
	}
	cs, err := decodeClaims(data)
	if err != nil {
		return nil, false, err
	}
	return cs, true, nil
}

// Invalidate drops the cached entry so the next request rebuilds it.
func (c *ValkeySessionCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Do(ctx, c.client.B().Del().Key(c.key(userID)).Build()).Error()
}

// Close releases the client.
func (c *ValkeySessionCache) Close() { c.client.Close() }
