package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP stores one-time codes for email verification and password resets
type OTP struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Code      string    `json:"-" gorm:"not null"`
	Purpose   string    `json:"purpose" gorm:"default:'VERIFY_EMAIL'"` // VERIFY_EMAIL, RESET_PASSWORD
	ExpiresAt time.Time `json:"expires_at"`
	IsUsed    bool      `json:"is_used" gorm:"default:false"`
}
