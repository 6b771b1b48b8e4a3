package models

import (
	"time"

	"github.com/JakubKrejcir/alza-cost-control/utils"
	"gorm.io/gorm"
)

// UserSession represents an authenticated session for an internal user.
// The session store keeps the hot copy; this row is the durable record so
// sessions survive a process restart in multi-process deployments.
type UserSession struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index:idx_user_sessions_user_id" json:"user_id"`
	SessionToken string     `gorm:"size:512;not null;uniqueIndex:uk_user_sessions_token" json:"-"`
	IPAddress    *string    `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent    *string    `gorm:"type:text" json:"user_agent,omitempty"`
	ExpiresAt    time.Time  `gorm:"not null;index:idx_user_sessions_expires_at" json:"expires_at"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty"`
	CreatedAt    time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

// TableName returns the table name for the model
func (UserSession) TableName() string {
	return "user_sessions"
}

// BeforeCreate is called before creating a new record
func (s *UserSession) BeforeCreate(tx *gorm.DB) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = utils.UTCNow()
	}
	return nil
}

// IsValid reports whether the session is neither revoked nor expired.
func (s *UserSession) IsValid() bool {
	return s.RevokedAt == nil && !utils.IsExpired(s.ExpiresAt)
}

// UserSessionFilter represents filter criteria for user sessions
type UserSessionFilter struct {
	ID            *uint      `json:"id,omitempty"`
	UserID        *uint      `json:"user_id,omitempty"`
	SessionToken  *string    `json:"-"`
	ExpiresAfter  *time.Time `json:"expires_after,omitempty"`
	ExpiresBefore *time.Time `json:"expires_before,omitempty"`
}
