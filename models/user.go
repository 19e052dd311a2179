package models

import (
	"time"

	"github.com/google/uuid"
)

// PortalUser is a local identity, created on first external login and bound
// to the forum account by a UserLogin row.
type PortalUser struct {
	ID          string     `gorm:"column:id;primaryKey" json:"id"`
	Username    string     `gorm:"column:username" json:"username"`
	Email       *string    `gorm:"column:email" json:"email,omitempty"`
	ExternalID  string     `gorm:"column:external_id;index" json:"external_id"`
	Locked      bool       `gorm:"column:locked" json:"locked"`
	LastLoginAt *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (PortalUser) TableName() string { return "portal_users" }

// UserLogin links a local user to an external provider login.
type UserLogin struct {
	ID          string    `gorm:"column:id;primaryKey"`
	UserID      string    `gorm:"column:user_id;index"`
	Provider    string    `gorm:"column:provider"`
	ProviderKey string    `gorm:"column:provider_key;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (UserLogin) TableName() string { return "user_logins" }

// PortalID generates a new hyphenless identifier for portal rows.
func PortalID() string {
	id := uuid.Must(uuid.NewRandom())
	out := make([]byte, 0, 32)
	for _, b := range id.String() {
		if b != '-' {
			out = append(out, byte(b))
		}
	}
	return string(out)
}
