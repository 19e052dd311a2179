package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/legit-games/portal-iam/claims"
	"github.com/legit-games/portal-iam/models"
)

// ClaimStore persists claims per local user. Claims are immutable value
// pairs: they are added, removed, or replaced wholesale, never updated.
type ClaimStore struct {
	DB *gorm.DB
}

func NewClaimStore(db *gorm.DB) *ClaimStore { return &ClaimStore{DB: db} }

// GetClaims returns all claims owned by userID.
func (s *ClaimStore) GetClaims(ctx context.Context, userID string) ([]claims.Claim, error) {
	var rows []models.UserClaim
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("claim_type ASC, claim_value ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return models.ClaimsOf(rows), nil
}

// AddClaims inserts claims for userID, skipping (type, value) pairs the user
// already holds.
func (s *ClaimStore) AddClaims(ctx context.Context, userID string, cs []claims.Claim) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return addClaimsTx(tx, userID, cs)
	})
}

// RemoveClaims deletes the given claims for userID. Claims the user does not
// hold are ignored.
func (s *ClaimStore) RemoveClaims(ctx context.Context, userID string, cs []claims.Claim) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range cs {
			if err := tx.Exec(`DELETE FROM user_claims WHERE user_id=? AND claim_type=? AND claim_value=?`,
				userID, string(c.Type), c.Value.String()).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceClaims swaps the user's entire claim set for a fresh one in a single
// transaction. This is the login-time reconciliation write: stale claims from
// revoked group memberships disappear as a side effect. The remove and add
// either both apply or neither does; a half-applied claim set is never
// visible.
func (s *ClaimStore) ReplaceClaims(ctx context.Context, userID string, cs []claims.Claim) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM user_claims WHERE user_id=?`, userID).Error; err != nil {
			return err
		}
		return addClaimsTx(tx, userID, cs)
	})
}

func addClaimsTx(tx *gorm.DB, userID string, cs []claims.Claim) error {
	for _, c := range cs {
		row := models.NewUserClaim(userID, c)
		if err := tx.Exec(`INSERT INTO user_claims(id, user_id, claim_type, claim_value, created_at)
			VALUES(?,?,?,?,?)
			ON CONFLICT (user_id, claim_type, claim_value) DO NOTHING`,
			row.ID, row.UserID, row.ClaimType, row.ClaimValue, row.CreatedAt).Error; err != nil {
			return err
		}
	}
	return nil
}
