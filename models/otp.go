package models

import "time"

// OTPChallenge is the persisted state of a one-time-passcode challenge,
// keyed by (phone number, email). At most one active challenge exists
// per key; terminal challenges are replaced on the next send.
type OTPChallenge struct {
	PhoneNumber string    `bson:"phone_number" json:"phoneNumber"`
	Email       string    `bson:"email" json:"email"`
	OTPCode     string    `bson:"otp_code" json:"-"`
	Verified    bool      `bson:"verified" json:"verified"`
	Attempts    int       `bson:"attempts" json:"attempts"`
	MaxAttempts int       `bson:"max_attempts" json:"maxAttempts"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	ExpiresAt   time.Time `bson:"expires_at" json:"expiresAt"`
}

// ExpiredAt reports whether the challenge window has passed at the given instant.
func (c *OTPChallenge) ExpiredAt(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Locked reports whether the attempt budget has been exhausted.
func (c *OTPChallenge) Locked() bool {
	return c.Attempts >= c.MaxAttempts
}

// Active reports whether the challenge can still accept verify attempts.
func (c *OTPChallenge) Active(now time.Time) bool {
	return !c.Verified && !c.Locked() && !c.ExpiredAt(now)
}
