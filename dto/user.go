package dto

import (
	"time"

	"github.com/legit-games/portal-iam/claims"
	"github.com/legit-games/portal-iam/models"
)

// UserResponse represents a portal user in API responses.
type UserResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       *string    `json:"email,omitempty"`
	ExternalID  string     `json:"external_id"`
	Locked      bool       `json:"locked"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FromUser converts a models.PortalUser to UserResponse.
func FromUser(u *models.PortalUser) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		ExternalID:  u.ExternalID,
		Locked:      u.Locked,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ClaimResponse represents one claim in API responses.
type ClaimResponse struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// FromClaims converts typed claims to response rows.
func FromClaims(cs []claims.Claim) []ClaimResponse {
	out := make([]ClaimResponse, len(cs))
	for i, c := range cs {
		out[i] = ClaimResponse{Type: string(c.Type), Value: c.Value.String()}
	}
	return out
}
