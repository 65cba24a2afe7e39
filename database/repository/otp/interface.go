package otp

import "bloodlink/models"

// OTPRepository is the persistence boundary of the OTP challenge store.
// Challenges are keyed by (phone number, email).
type OTPRepository interface {
	// GetByKey retrieves the challenge for a key. Returns nil without
	// error when no challenge exists.
	GetByKey(phoneNumber, email string) (*models.OTPChallenge, error)
	// Replace upserts the challenge for its key, overwriting any
	// previous state.
	Replace(c *models.OTPChallenge) error
	// IncrementAttempts atomically bumps the attempt counter and returns
	// the updated challenge.
	IncrementAttempts(phoneNumber, email string) (*models.OTPChallenge, error)
	// MarkVerified sets verified=true on the challenge.
	MarkVerified(phoneNumber, email string) error
	// Delete removes the challenge for a key.
	Delete(phoneNumber, email string) error
}
