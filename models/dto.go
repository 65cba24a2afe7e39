package models

// LoginRequest carries the credentials for any of the four principal types.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest presents a refresh token for rotation.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// SignupRequest carries registration details. The OTP challenge for the
// given email and phone number must be verified before signup succeeds.
type SignupRequest struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Username           string `json:"username" binding:"required"`
	Password           string `json:"password" binding:"required,min=6,max=40"`
	Role               string `json:"role" binding:"required"`
	PhoneNumber        string `json:"phoneNumber" binding:"required"`
	ContactInformation string `json:"contactInformation,omitempty"`
	BloodType          string `json:"bloodType,omitempty"`
	Address            string `json:"address,omitempty"`
	Age                int    `json:"age,omitempty"`
	Sex                string `json:"sex,omitempty"`
	BirthDate          string `json:"birthDate,omitempty"`
	LicenseNumber      string `json:"licenseNumber,omitempty"`
}

// SendOTPRequest starts an OTP challenge for a (phone, email) pair.
type SendOTPRequest struct {
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required,len=10,numeric"`
}

// VerifyOTPRequest presents a code for an existing challenge. The phone
// number may carry a two-digit country prefix.
type VerifyOTPRequest struct {
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required,numeric,min=10,max=12"`
	OTPCode     string `json:"otpCode" binding:"required,len=6,numeric"`
}

// OTPVerificationResponse is the success-shaped outcome of a verify
// attempt. Expired, locked and wrong-code outcomes are expected branches
// of normal flow, not errors, and the stored code is never echoed.
type OTPVerificationResponse struct {
	Success            bool   `json:"success"`
	Message            string `json:"message"`
	Attempts           int    `json:"attempts"`
	MaxAttempts        int    `json:"maxAttempts"`
	MaxAttemptsReached bool   `json:"maxAttemptsReached"`
	OTPExpired         bool   `json:"otpExpired"`
}

// JwtResponse is returned on successful login, signup or refresh.
type JwtResponse struct {
	AccessToken     string   `json:"accessToken"`
	RefreshToken    string   `json:"refreshToken"`
	TokenType       string   `json:"tokenType"`
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	ProfilePhotoURL string   `json:"profilePhotoUrl,omitempty"`
	Roles           []string `json:"roles"`
}
