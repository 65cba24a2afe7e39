package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	otpRepo "bloodlink/database/repository/otp"
	"bloodlink/models"
	"bloodlink/utils"

	"go.uber.org/zap"
)

// ChallengeEngine generates, dispatches and verifies OTP challenges.
// Expiry is a passive timestamp comparison; nothing here schedules
// timers.
type ChallengeEngine interface {
	// Send creates a challenge for the key, or re-dispatches the pending
	// one. An active (unexpired, unverified, unlocked) challenge is
	// reused as-is: its code, attempt counter and expiry are untouched,
	// so send spam cannot reset the retry budget. Terminal challenges
	// are replaced.
	Send(phoneNumber, email string) error
	// Verify runs one attempt of the challenge state machine. Expired,
	// locked and wrong-code outcomes are success-shaped responses, not
	// errors, and the stored code is never echoed.
	Verify(phoneNumber, email, code string) (*models.OTPVerificationResponse, error)
	// Consume spends a verified challenge. Single-use: the row is
	// deleted so a second consume (or verify replay) cannot succeed.
	Consume(phoneNumber, email string) (bool, error)
}

// Dispatcher carries the generated code to the external delivery
// channel. Actual SMS/email transport is outside this system.
type Dispatcher interface {
	Dispatch(phoneNumber, email, code string, expiresIn time.Duration) error
}

// DefaultChallengeEngine is the production implementation.
type DefaultChallengeEngine struct {
	Repo        otpRepo.OTPRepository
	Dispatcher  Dispatcher
	Expiry      time.Duration
	MaxAttempts int
	Logger      *zap.Logger

	// Now is the clock; defaults to time.Now when nil.
	Now func() time.Time
}

func (e *DefaultChallengeEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// generateOTPCode returns a random 6-digit numeric code.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Send creates or re-dispatches the challenge for a (phone, email) key.
func (e *DefaultChallengeEngine) Send(phoneNumber, email string) error {
	now := e.now()

	existing, err := e.Repo.GetByKey(phoneNumber, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.Active(now) {
		e.Logger.Debug("resending pending otp challenge",
			zap.String("phone", phoneNumber), zap.Int("attempts", existing.Attempts))
		return e.Dispatcher.Dispatch(phoneNumber, email, existing.OTPCode, existing.ExpiresAt.Sub(now))
	}

	code, err := generateOTPCode()
	if err != nil {
		return err
	}
	challenge := &models.OTPChallenge{
		PhoneNumber: phoneNumber,
		Email:       email,
		OTPCode:     code,
		Verified:    false,
		Attempts:    0,
		MaxAttempts: e.MaxAttempts,
		CreatedAt:   now,
		ExpiresAt:   now.Add(e.Expiry),
	}
	if err := e.Repo.Replace(challenge); err != nil {
		return err
	}
	return e.Dispatcher.Dispatch(phoneNumber, email, code, e.Expiry)
}

// Verify runs one attempt of the state machine:
//
//	PENDING --now>expiry--> EXPIRED (terminal, no attempt counted)
//	PENDING --attempts==max--> LOCKED (terminal, no attempt counted)
//	PENDING --wrong code--> PENDING (attempts+1)
//	PENDING --match--> VERIFIED (terminal, single-use)
func (e *DefaultChallengeEngine) Verify(phoneNumber, email, code string) (*models.OTPVerificationResponse, error) {
	challenge, err := e.Repo.GetByKey(phoneNumber, email)
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, utils.NotFoundError{Resource: "otp challenge"}
	}

	if challenge.ExpiredAt(e.now()) {
		return &models.OTPVerificationResponse{
			Success:     false,
			Message:     "OTP has expired, request a new code",
			Attempts:    challenge.Attempts,
			MaxAttempts: challenge.MaxAttempts,
			OTPExpired:  true,
		}, nil
	}

	if challenge.Verified {
		// Terminal: a verified challenge only yields once.
		return &models.OTPVerificationResponse{
			Success:     false,
			Message:     "OTP already used, request a new code",
			Attempts:    challenge.Attempts,
			MaxAttempts: challenge.MaxAttempts,
		}, nil
	}

	if challenge.Locked() {
		return &models.OTPVerificationResponse{
			Success:            false,
			Message:            "Maximum attempts reached, request a new code",
			Attempts:           challenge.Attempts,
			MaxAttempts:        challenge.MaxAttempts,
			MaxAttemptsReached: true,
		}, nil
	}

	updated, err := e.Repo.IncrementAttempts(phoneNumber, email)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, utils.NotFoundError{Resource: "otp challenge"}
	}

	if updated.OTPCode == code {
		if err := e.Repo.MarkVerified(phoneNumber, email); err != nil {
			return nil, err
		}
		return &models.OTPVerificationResponse{
			Success:     true,
			Message:     "OTP verified",
			Attempts:    updated.Attempts,
			MaxAttempts: updated.MaxAttempts,
		}, nil
	}

	return &models.OTPVerificationResponse{
		Success:            false,
		Message:            "Incorrect OTP code",
		Attempts:           updated.Attempts,
		MaxAttempts:        updated.MaxAttempts,
		MaxAttemptsReached: updated.Attempts >= updated.MaxAttempts,
	}, nil
}

// Consume spends a verified challenge and deletes its row.
func (e *DefaultChallengeEngine) Consume(phoneNumber, email string) (bool, error) {
	challenge, err := e.Repo.GetByKey(phoneNumber, email)
	if err != nil {
		return false, err
	}
	if challenge == nil || !challenge.Verified {
		return false, nil
	}
	if err := e.Repo.Delete(phoneNumber, email); err != nil {
		return false, err
	}
	return true, nil
}
