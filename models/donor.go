package models

import "time"

// Donor represents a registered blood donor.
type Donor struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Email           string    `bson:"email" json:"email"`
	Username        string    `bson:"username" json:"username"`
	PasswordHash    string    `bson:"password_hash" json:"-"`
	PhoneNumber     string    `bson:"phone_number" json:"phoneNumber"`
	BloodType       string    `bson:"blood_type" json:"bloodType"`
	Address         string    `bson:"address" json:"address"`
	Age             int       `bson:"age" json:"age"`
	Sex             string    `bson:"sex" json:"sex"`
	BirthDate       string    `bson:"birth_date" json:"birthDate"`
	ProfilePhotoURL string    `bson:"profile_photo_url,omitempty" json:"profilePhotoUrl,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}
