package store

import (
	"context"
	"fmt"
	"testing"
	"time"
)

var userTestCounter int64 = time.Now().UnixNano()

func uniqueExternalID(prefix string) string {
	userTestCounter++
	return fmt.Sprintf("%s-%d", prefix, userTestCounter)
}

func TestUserStore_RegisterAndFindByLogin(t *testing.T) {
	db, err := getTestGormDB()
	if err != nil {
		t.Skip("No database connection available")
	}
	store := NewUserStore(db)
	ctx := context.Background()

	externalID := uniqueExternalID("ext")
	email := "player@example.com"

	userID, err := store.Register(ctx, externalID, "player-"+externalID, "forums", &email)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	defer db.Exec(`DELETE FROM user_logins WHERE user_id = ?`, userID)
	defer db.Exec(`DELETE FROM portal_users WHERE id = ?`, userID)

	u, err := store.FindByLogin(ctx, "forums", externalID)
	if err != nil {
		t.Fatalf("FindByLogin failed: %v", err)
	}
	if u == nil {
		t.Fatal("expected linked user, got nil")
	}
	if u.ID != userID {
		t.Errorf("FindByLogin returned user %s, want %s", u.ID, userID)
	}
	if u.ExternalID != externalID {
		t.Errorf("external id = %s, want %s", u.ExternalID, externalID)
	}
	if u.Locked {
		t.Errorf("freshly registered user should not be locked")
	}
}

func TestUserStore_FindByLogin_Unlinked(t *testing.T) {
	db, err := getTestGormDB()
	if err != nil {
		t.Skip("No database connection available")
	}
	store := NewUserStore(db)

	u, err := store.FindByLogin(context.Background(), "forums", "no-such-key")
	if err != nil {
		t.Fatalf("FindByLogin failed: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for unlinked login, got %+v", u)
	}
}

func TestUserStore_Register_RejectsBlankIdentity(t *testing.T) {
	db, err := getTestGormDB()
	if err != nil {
		t.Skip("No database connection available")
	}
	store := NewUserStore(db)
	ctx := context.Background()

	if _, err := store.Register(ctx, "", "name", "forums", nil); err == nil {
		t.Errorf("expected error for blank external id")
	}
	if _, err := store.Register(ctx, "ext-1", "  ", "forums", nil); err == nil {
		t.Errorf("expected error for blank username")
	}
}

func TestUserStore_TouchLogin(t *testing.T) {
	db, err := getTestGormDB()
	if err != nil {
		t.Skip("No database connection available")
	}
	store := NewUserStore(db)
	ctx := context.Background()

	externalID := uniqueExternalID("touch")
	userID, err := store.Register(ctx, externalID, "player-"+externalID, "forums", nil)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	defer db.Exec(`DELETE FROM user_logins WHERE user_id = ?`, userID)
	defer db.Exec(`DELETE FROM portal_users WHERE id = ?`, userID)

	if err := store.TouchLogin(ctx, userID); err != nil {
		t.Fatalf("TouchLogin failed: %v", err)
	}

	u, err := store.GetUser(ctx, userID)
	if err != nil || u == nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if u.LastLoginAt == nil {
		t.Errorf("last_login_at not set after TouchLogin")
	}
}

func TestUserStore_SetLocked(t *testing.T) {
	db, err := getTestGormDB()
	if err != nil {
		t.Skip("No database connection available")
	}
	store := NewUserStore(db)
	ctx := context.Background()

	externalID := uniqueExternalID("lock")
	userID, err := store.Register(ctx, externalID, "player-"+externalID, "forums", nil)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	defer db.Exec(`DELETE FROM user_logins WHERE user_id = ?`, userID)
	defer db.Exec(`DELETE FROM portal_users WHERE id = ?`, userID)

	if err := store.SetLocked(ctx, userID, true); err != nil {
		t.Fatalf("SetLocked failed: %v", err)
	}
	u, _ := store.GetUser(ctx, userID)
	if u == nil || !u.Locked {
		t.Errorf("user should be locked")
	}

	if err := store.SetLocked(ctx, "no-such-user", true); err == nil {
		t.Errorf("expected error locking unknown user")
	}
}
