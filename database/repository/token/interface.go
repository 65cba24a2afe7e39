package token

import "bloodlink/models"

// TokenRepository is the persistence boundary of the token ledger.
type TokenRepository interface {
	// Save upserts a ledger row keyed by the token string.
	Save(t *models.StoredToken) error
	// GetByToken retrieves a row by token string. Returns nil without
	// error when no row exists.
	GetByToken(tokenString string) (*models.StoredToken, error)
	// GetAllValid returns the owner's rows where revoked=false and
	// expired=false.
	GetAllValid(ownerID string) ([]models.StoredToken, error)
	// Revoke sets revoked=true on the row for the given token string.
	Revoke(tokenString string) error
	// RevokeAllByOwner sets revoked=true on every row for the owner.
	RevokeAllByOwner(ownerID string) error
	// MarkExpired sets expired=true on the row for the given token
	// string. A missing row is not an error.
	MarkExpired(tokenString string) error
	// DeleteLegacy removes rows predating the correlation ID field,
	// identified by a missing or empty correlation_id. Idempotent.
	DeleteLegacy() (int64, error)
}
