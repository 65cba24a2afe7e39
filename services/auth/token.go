package auth

import (
	"fmt"

	tokenRepo "bloodlink/database/repository/token"
	"bloodlink/models"

	"go.uber.org/zap"
)

// TokenService is the issuance bookkeeping layer above the token ledger.
type TokenService interface {
	// Save upserts a ledger row for an issued token.
	Save(t *models.StoredToken) error
	// FindByToken looks up a ledger row; nil without error on a miss.
	FindByToken(tokenString string) (*models.StoredToken, error)
	// FindAllValid enumerates the owner's active sessions.
	FindAllValid(ownerID string) ([]models.StoredToken, error)
	// Revoke flags one token revoked, e.g. on logout or rotation.
	Revoke(tokenString string) error
	// RevokeAll flags every token for the owner revoked (force logout all).
	RevokeAll(ownerID string) error
	// MarkExpired records an Expired verification outcome against the
	// ledger. A lookup miss is not an error; the annotation is
	// best-effort and idempotent.
	MarkExpired(tokenString string) error
	// CleanupLegacyRows removes rows predating the correlation ID field.
	// Failures are logged and swallowed; startup must never fail here.
	CleanupLegacyRows()
}

// DefaultTokenService is the production implementation.
type DefaultTokenService struct {
	Repo   tokenRepo.TokenRepository
	Logger *zap.Logger
}

// Save upserts a ledger row for an issued token.
func (s *DefaultTokenService) Save(t *models.StoredToken) error {
	if t.TokenString == "" {
		return fmt.Errorf("token string must not be empty")
	}
	return s.Repo.Save(t)
}

// FindByToken looks up a ledger row by token string.
func (s *DefaultTokenService) FindByToken(tokenString string) (*models.StoredToken, error) {
	return s.Repo.GetByToken(tokenString)
}

// FindAllValid enumerates the owner's unrevoked, unexpired sessions.
func (s *DefaultTokenService) FindAllValid(ownerID string) ([]models.StoredToken, error) {
	return s.Repo.GetAllValid(ownerID)
}

// Revoke flags one token revoked without deleting its row.
func (s *DefaultTokenService) Revoke(tokenString string) error {
	return s.Repo.Revoke(tokenString)
}

// RevokeAll flags every token for the owner revoked.
func (s *DefaultTokenService) RevokeAll(ownerID string) error {
	return s.Repo.RevokeAllByOwner(ownerID)
}

// MarkExpired flips expired=true the first time an Expired outcome is
// recorded for a token. Already-expired rows and missing rows are left
// untouched so repeated validation stays idempotent.
func (s *DefaultTokenService) MarkExpired(tokenString string) error {
	stored, err := s.Repo.GetByToken(tokenString)
	if err != nil {
		return err
	}
	if stored == nil || stored.Expired {
		return nil
	}
	return s.Repo.MarkExpired(tokenString)
}

// CleanupLegacyRows deletes ledger rows lacking a correlation ID. Best
// effort: any failure is logged and swallowed so boot proceeds.
func (s *DefaultTokenService) CleanupLegacyRows() {
	deleted, err := s.Repo.DeleteLegacy()
	if err != nil {
		s.Logger.Warn("token ledger legacy cleanup failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		s.Logger.Info("token ledger legacy cleanup done", zap.Int64("deleted", deleted))
	}
}
