package models

import "time"

// StoredToken is the ledger row for an issued token. Revoked and expired
// are independent flags: a token may time out without ever being revoked,
// or be revoked while still inside its validity window.
type StoredToken struct {
	TokenString   string    `bson:"token_string" json:"tokenString"`
	OwnerID       string    `bson:"owner_id" json:"ownerId"`
	Revoked       bool      `bson:"revoked" json:"revoked"`
	Expired       bool      `bson:"expired" json:"expired"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	CorrelationID string    `bson:"correlation_id,omitempty" json:"correlationId,omitempty"`
}
