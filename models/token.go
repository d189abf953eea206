package models

import "time"

// OTP purposes.
const (
	OTPPurposeVerifyEmail   = "verify_email"
	OTPPurposeResetPassword = "reset_password"
)

// VerificationToken holds a short-lived one-time code sent by email.
type VerificationToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"index;not null" json:"email"`
	Code      string    `gorm:"not null" json:"-"`
	Purpose   string    `gorm:"type:VARCHAR(20);not null" json:"purpose"`
	ExpiresAt time.Time `json:"expires_at"`
	Consumed  bool      `gorm:"default:false" json:"consumed"`
	CreatedAt time.Time `json:"created_at"`
}

// WebhookEvent records a processed payment-processor event id so that
// redelivered events are applied at most once.
type WebhookEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EventID    string    `gorm:"uniqueIndex;not null" json:"event_id"`
	Type       string    `json:"type"`
	ReceivedAt time.Time `json:"received_at"`
}
