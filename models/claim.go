package models

import (
	"time"

	"github.com/legit-games/portal-iam/claims"
)

// UserClaim is the persisted form of a claim. The (user_id, claim_type,
// claim_value) triple is unique; claims are only ever added or removed,
// never updated in place.
type UserClaim struct {
	ID         string    `gorm:"column:id;primaryKey"`
	UserID     string    `gorm:"column:user_id;index"`
	ClaimType  string    `gorm:"column:claim_type"`
	ClaimValue string    `gorm:"column:claim_value"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (UserClaim) TableName() string { return "user_claims" }

// Claim converts the row back to its typed form.
func (uc UserClaim) Claim() claims.Claim {
	return claims.Claim{
		Type:  claims.ClaimType(uc.ClaimType),
		Value: claims.ParseValue(uc.ClaimValue),
	}
}

// NewUserClaim builds a row for a claim owned by userID.
func NewUserClaim(userID string, c claims.Claim) UserClaim {
	return UserClaim{
		ID:         PortalID(),
		UserID:     userID,
		ClaimType:  string(c.Type),
		ClaimValue: c.Value.String(),
		CreatedAt:  time.Now().UTC(),
	}
}

// ClaimsOf converts a slice of rows to typed claims.
func ClaimsOf(rows []UserClaim) []claims.Claim {
	out := make([]claims.Claim, len(rows))
	for i, r := range rows {
		out[i] = r.Claim()
	}
	return out
}
