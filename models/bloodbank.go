package models

import "time"

// BloodBank represents a partner blood bank account.
type BloodBank struct {
	ID                 string    `bson:"id" json:"id"`
	BloodBankName      string    `bson:"blood_bank_name" json:"bloodBankName"`
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
