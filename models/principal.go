package models

import "time"

// Role identifies which credential collection a principal was resolved from.
type Role string

const (
	RoleDonor     Role = "DONOR"
	RoleAdmin     Role = "ADMIN"
	RoleHospital  Role = "HOSPITAL"
	RoleBloodBank Role = "BLOODBANK"
)

// Principal is the unified, read-only projection of a matched credential
// record. The role is derived solely from the collection that matched
// during resolution; it is never stored alongside the source record.
type Principal struct {
	ID              string    `json:"id"`
	DisplayName     string    `json:"displayName"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	PasswordHash    string    `json:"-"`
	Role            Role      `json:"role"`
	PhoneNumber     string    `json:"phoneNumber,omitempty"`
	ProfilePhotoURL string    `json:"profilePhotoUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
