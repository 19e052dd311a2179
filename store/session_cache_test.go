package store

import (
	"context"
	"testing"
	"time"

	"github.com/legit-games/portal-iam/claims"
	"github.com/legit-games/portal-iam/games"
)

func newTestCache(t *testing.T) *BuntSessionCache {
	c, err := NewBuntSessionCache(":memory:")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestBuntSessionCache_PutGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	cs := []claims.Claim{
		{Type: claims.TypeSeniorAdmin, Value: claims.Sentinel()},
		{Type: claims.TypeGameAdmin, Value: claims.GameValue(games.CallOfDuty4)},
		{Type: claims.TypeTimeZone, Value: claims.TextValue("Europe/London")},
	}
	if err := c.PutClaims(ctx, "user-1", cs, time.Minute); err != nil {
		t.Fatalf("PutClaims failed: %v", err)
	}

	got, ok, err := c.GetClaims(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetClaims failed: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != len(cs) {
		t.Fatalf("got %d claims, want %d", len(got), len(cs))
	}
	for i := range cs {
		if got[i] != cs[i] {
			t.Errorf("claim %d = %+v, want %+v", i, got[i], cs[i])
		}
	}
}

func TestBuntSessionCache_MissIsNotAnError(t *testing.T) {
	c := newTestCache(t)

	got, ok, err := c.GetClaims(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetClaims on miss returned error: %v", err)
	}
	if ok || got != nil {
		t.Errorf("expected clean miss, got ok=%v claims=%v", ok, got)
	}
}

func TestBuntSessionCache_Invalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	cs := []claims.Claim{{Type: claims.TypeModerator, Value: claims.GameValue(games.Rust)}}
	if err := c.PutClaims(ctx, "user-1", cs, time.Minute); err != nil {
		t.Fatalf("PutClaims failed: %v", err)
	}
	if err := c.Invalidate(ctx, "user-1"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, ok, _ := c.GetClaims(ctx, "user-1"); ok {
		t.Errorf("expected miss after invalidation")
	}

	// Invalidating an absent key is a no-op.
	if err := c.Invalidate(ctx, "nobody"); err != nil {
		t.Errorf("Invalidate on absent key: %v", err)
	}
}

func TestBuntSessionCache_Expiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	cs := []claims.Claim{{Type: claims.TypeModerator, Value: claims.GameValue(games.Rust)}}
	if err := c.PutClaims(ctx, "user-1", cs, 50*time.Millisecond); err != nil {
		t.Fatalf("PutClaims failed: %v", err)
	}

	time.Sleep(120 * time.Millisecond)
	if _, ok, _ := c.GetClaims(ctx, "user-1"); ok {
		t.Errorf("expected entry to expire")
	}
}

func TestDefaultSessionTTL(t *testing.T) {
	if DefaultSessionTTL != 15*time.Minute {
		t.Errorf("DefaultSessionTTL = %v, want 15m", DefaultSessionTTL)
	}
}
