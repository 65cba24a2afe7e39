package models

import "time"

// Hospital represents a partner hospital account.
type Hospital struct {
	ID                 string    `bson:"id" json:"id"`
	HospitalName       string    `bson:"hospital_name" json:"hospitalName"`
	Email              string    `bson:"email" json:"email"`
	Username           string    `bson:"username" json:"username"`
	PasswordHash       string    `bson:"password_hash" json:"-"`
	ContactInformation string    `bson:"contact_information" json:"contactInformation"`
	Address            string    `bson:"address" json:"address"`
	LicenseNumber      string    `bson:"license_number" json:"licenseNumber"`
	ProfilePhotoURL    string    `bson:"profile_photo_url,omitempty" json:"profilePhotoUrl,omitempty"`
	CreatedAt          time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updatedAt"`
}
