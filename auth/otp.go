package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/models"
)

const otpTTL = 15 * time.Minute

var ErrOTPInvalid = errors.New("invalid or expired code")

// generateOTP returns a 6-digit numeric one-time code.
func generateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand failing means the process is in serious trouble
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// issueOTP invalidates previous codes for the same email+purpose and
// stores a fresh one.
func issueOTP(db *gorm.DB, email, purpose string) (string, error) {
	code := generateOTP()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.VerificationToken{}).
			Where("email = ? AND purpose = ? AND consumed = ?", email, purpose, false).
			Update("consumed", true).Error; err != nil {
			return err
		}
		return tx.Create(&models.VerificationToken{
			Email:     email,
			Code:      code,
			Purpose:   purpose,
			ExpiresAt: time.Now().Add(otpTTL),
		}).Error
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// consumeOTP validates and burns a one-time code.
func consumeOTP(db *gorm.DB, email, code, purpose string) error {
	var token models.VerificationToken
	err := db.Where(
		"email = ? AND code = ? AND purpose = ? AND consumed = ?",
		email, code, purpose, false,
	).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOTPInvalid
		}
		return err
	}
	if time.Now().After(token.ExpiresAt) {
		return ErrOTPInvalid
	}
	return db.Model(&token).Update("consumed", true).Error
}
