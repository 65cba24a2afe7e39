package models

import "time"

// Admin represents a platform administrator.
type Admin struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Email           string    `bson:"email" json:"email"`
	Username        string    `bson:"username" json:"username"`
	PasswordHash    string    `bson:"password_hash" json:"-"`
	PhoneNumber     string    `bson:"phone_number,omitempty" json:"phoneNumber,omitempty"`
	ProfilePhotoURL string    `bson:"profile_photo_url,omitempty" json:"profilePhotoUrl,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}
