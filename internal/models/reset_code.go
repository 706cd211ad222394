package models

import "time"

// PasswordResetCode stores the SHA-256 of a mailed reset code, never the code.
type PasswordResetCode struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"not null;index"`
	Email     string     `gorm:"not null;index"`
	CodeHash  string     `gorm:"size:64;not null;index"`
	ExpiresAt time.Time  `gorm:"not null"`
	UsedAt    *time.Time `gorm:"index"`
	CreatedAt time.Time
}

func (c *PasswordResetCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
