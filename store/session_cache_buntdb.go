package store

import (
	"context"
	"time"

	"github.com/tidwall/buntdb"

	"github.com/legit-games/portal-iam/claims"
)

// BuntSessionCache is the embedded single-node session cache, used for
// development and single-instance deployments where a Valkey server would be
// overkill. Pass ":memory:" for a purely in-memory cache.
type BuntSessionCache struct {
	db *buntdb.DB
}

// NewBuntSessionCache opens (or creates) the cache at path.
func NewBuntSessionCache(path string) (*BuntSessionCache, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, err
	}
	return &BuntSessionCache{db: db}, nil
}

func buntKey(userID string) string { return "claims:" + userID }

// PutClaims stores the claim set with the given TTL.
func (c *BuntSessionCache) PutClaims(_ context.Context, userID string, cs []claims.Claim, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	jv, err := encodeClaims(cs)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(buntKey(userID), string(jv), &buntdb.SetOptions{Expires: true, TTL: ttl})
		return err
	})
}

// GetClaims fetches the cached claim set; a missing key is a miss, not an error.
func (c *BuntSessionCache) GetClaims(_ context.Context, userID string) ([]claims.Claim, bool, error) {
	var raw string
	err := c.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(buntKey(userID))
		if err != nil {
			return err
		}
		raw = v
		return nil
	})
	if err == buntdb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	cs, err := decodeClaims([]byte(raw))
	if err != nil {
		return nil, false, err
	}
	return cs, true, nil
}

// Invalidate drops the cached entry.
func (c *BuntSessionCache) Invalidate(_ context.Context, userID string) error {
	return c.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(buntKey(userID))
		if err == buntdb.ErrNotFound {
			return nil
		}
		return err
	})
}

// Close closes the underlying database.
func (c *BuntSessionCache) Close() error { return c.db.Close() }
