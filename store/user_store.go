package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/legit-games/portal-iam/models"
)

// UserStore provides operations for portal users and their external logins.
type UserStore struct {
	DB *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore { return &UserStore{DB: db} }

// FindByLogin returns the user linked to (provider, providerKey), or nil if
// no such link exists.
func (s *UserStore) FindByLogin(ctx context.Context, provider, providerKey string) (*models.PortalUser, error) {
	var u models.PortalUser
	err := s.DB.WithContext(ctx).Raw(`
		SELECT pu.id, pu.username, pu.email, pu.external_id, pu.locked, pu.last_login_at, pu.created_at, pu.updated_at
		FROM portal_users pu
		JOIN user_logins ul ON ul.user_id = pu.id
		WHERE ul.provider = ? AND ul.provider_key = ?
	`, provider, providerKey).Scan(&u).Error
	if err != nil {
		return nil, err
	}
	if u.ID == "" {
		return nil, nil
	}
	return &u, nil
}

// GetUser returns a user by id, or nil when absent.
func (s *UserStore) GetUser(ctx context.Context, userID string) (*models.PortalUser, error) {
	var u models.PortalUser
	err := s.DB.WithContext(ctx).Where("id = ?", userID).Limit(1).Find(&u).Error
	if err != nil {
		return nil, err
	}
	if u.ID == "" {
		return nil, nil
	}
	return &u, nil
}

// Register creates a local user bound to an external id and links the
// provider login, in one transaction. Returns the created user id.
func (s *UserStore) Register(ctx context.Context, externalID, username, provider string, email *string) (string, error) {
	if strings.TrimSpace(externalID) == "" || strings.TrimSpace(username) == "" {
		return "", gorm.ErrInvalidData
	}
	userID := models.PortalID()
	now := time.Now().UTC()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`INSERT INTO portal_users(id, username, email, external_id, locked, created_at, updated_at)
			VALUES(?,?,?,?,FALSE,?,?)`, userID, username, email, externalID, now, now).Error; err != nil {
			return err
		}
		return tx.Exec(`INSERT INTO user_logins(id, user_id, provider, provider_key, created_at)
			VALUES(?,?,?,?,?)`, models.PortalID(), userID, provider, externalID, now).Error
	})
	if err != nil {
		return "", err
	}
	return userID, nil
}

// TouchLogin records a successful login time.
func (s *UserStore) TouchLogin(ctx context.Context, userID string) error {
	return s.DB.WithContext(ctx).Exec(
		`UPDATE portal_users SET last_login_at = ?, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), time.Now().UTC(), userID,
	).Error
}

// SetLocked flips the account lock flag.
func (s *UserStore) SetLocked(ctx context.Context, userID string, locked bool) error {
	res := s.DB.WithContext(ctx).Exec(
		`UPDATE portal_users SET locked = ?, updated_at = ? WHERE id = ?`,
		locked, time.Now().UTC(), userID,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("user not found")
	}
	return nil
}
