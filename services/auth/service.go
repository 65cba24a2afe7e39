package auth

import (
	"errors"
	"fmt"
	"time"

	credRepo "bloodlink/database/repository/credential"
	"bloodlink/models"
	"bloodlink/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService orchestrates login, refresh rotation, signup and logout.
type AuthService interface {
	// Login resolves the principal, checks credentials and issues a
	// persisted access+refresh pair.
	Login(email, password string) (*models.JwtResponse, error)
	// Refresh rotates a refresh token: the presented token is revoked
	// and a new pair is issued under the same correlation ID.
	Refresh(refreshToken string) (*models.JwtResponse, error)
	// Signup registers a new principal. The OTP challenge for the
	// request's (phone, email) must be verified; signup consumes it.
	Signup(req models.SignupRequest) (*models.JwtResponse, error)
	// Logout revokes the presented access token.
	Logout(tokenString string) error
	// LogoutAll revokes every token for the owner.
	LogoutAll(ownerID string) error
	// Sessions enumerates the owner's active ledger rows.
	Sessions(ownerID string) ([]models.StoredToken, error)
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Resolver PrincipalResolver
	Codec    *Codec
	Tokens   TokenService
	OTP      ChallengeEngine

	Admins     credRepo.AdminRepository
	Donors     credRepo.DonorRepository
	Hospitals  credRepo.HospitalRepository
	BloodBanks credRepo.BloodBankRepository

	Logger *zap.Logger
}

// Login authenticates a principal by email and password.
func (s *DefaultAuthService) Login(email, password string) (*models.JwtResponse, error) {
	principal, err := s.Resolver.Resolve(email)
	if err != nil {
		// A missing principal and a wrong password look identical to the
		// caller; anything else is an infrastructure failure.
		var nf utils.NotFoundError
		if errors.As(err, &nf) {
			return nil, utils.ErrAuthentication
		}
		s.Logger.Error("Login: failed to resolve principal", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password)); err != nil {
		return nil, utils.ErrAuthentication
	}

	return s.issuePair(principal, uuid.New().String())
}

// Refresh validates a refresh token, revokes it and issues a new pair.
func (s *DefaultAuthService) Refresh(refreshToken string) (*models.JwtResponse, error) {
	result := s.Codec.Verify(refreshToken)
	switch result.Status {
	case StatusExpired:
		// Record the outcome; the codec itself never writes.
		if err := s.Tokens.MarkExpired(refreshToken); err != nil {
			s.Logger.Warn("Refresh: failed to mark token expired", zap.Error(err))
		}
		return nil, utils.ErrAuthentication
	case StatusValid:
	default:
		return nil, utils.ErrAuthentication
	}

	stored, err := s.Tokens.FindByToken(refreshToken)
	if err != nil {
		s.Logger.Error("Refresh: ledger lookup failed", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if stored == nil || stored.Revoked || stored.Expired {
		return nil, utils.ErrAuthentication
	}

	principal, err := s.Resolver.ResolveByID(result.Subject)
	if err != nil {
		return nil, utils.ErrAuthentication
	}

	// Rotation: the presented token is dead from here on.
	if err := s.Tokens.Revoke(refreshToken); err != nil {
		s.Logger.Error("Refresh: failed to revoke rotated token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return s.issuePair(principal, stored.CorrelationID)
}

// Signup registers a principal after OTP identity proof.
func (s *DefaultAuthService) Signup(req models.SignupRequest) (*models.JwtResponse, error) {
	role := models.Role(req.Role)
	switch role {
	case models.RoleDonor, models.RoleHospital, models.RoleBloodBank:
	case models.RoleAdmin:
		return nil, utils.ValidationError{Detail: "admin accounts cannot self-register"}
	default:
		return nil, utils.ValidationError{Detail: "unknown role"}
	}

	consumed, err := s.OTP.Consume(req.PhoneNumber, req.Email)
	if err != nil {
		s.Logger.Error("Signup: failed to consume otp challenge", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if !consumed {
		return nil, utils.ValidationError{Detail: "contact verification required before signup"}
	}

	if existing, err := s.Resolver.Resolve(req.Email); err == nil && existing != nil {
		return nil, utils.ValidationError{Detail: "an account with this email already exists"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.Logger.Error("Signup: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	id := uuid.New().String()
	now := time.Now()

	switch role {
	case models.RoleDonor:
		err = s.Donors.Create(&models.Donor{
			ID:           id,
			Name:         req.Name,
			Email:        req.Email,
			Username:     req.Username,
			PasswordHash: string(hashed),
			PhoneNumber:  req.PhoneNumber,
			BloodType:    req.BloodType,
			Address:      req.Address,
			Age:          req.Age,
			Sex:          req.Sex,
			BirthDate:    req.BirthDate,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	case models.RoleHospital:
		err = s.Hospitals.Create(&models.Hospital{
			ID:                 id,
			HospitalName:       req.Name,
			Email:              req.Email,
			Username:           req.Username,
			PasswordHash:       string(hashed),
			ContactInformation: req.ContactInformation,
			Address:            req.Address,
			LicenseNumber:      req.LicenseNumber,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
	case models.RoleBloodBank:
		err = s.BloodBanks.Create(&models.BloodBank{
			ID:                 id,
			BloodBankName:      req.Name,
			Email:              req.Email,
			Username:           req.Username,
			PasswordHash:       string(hashed),
			ContactInformation: req.ContactInformation,
			Address:            req.Address,
			LicenseNumber:      req.LicenseNumber,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
	}
	if err != nil {
		s.Logger.Error("Signup: failed to create principal record", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	principal, err := s.Resolver.ResolveByID(id)
	if err != nil {
		s.Logger.Error("Signup: failed to resolve created principal", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return s.issuePair(principal, uuid.New().String())
}

// Logout revokes the presented access token.
func (s *DefaultAuthService) Logout(tokenString string) error {
	return s.Tokens.Revoke(tokenString)
}

// LogoutAll revokes every token for the owner.
func (s *DefaultAuthService) LogoutAll(ownerID string) error {
	return s.Tokens.RevokeAll(ownerID)
}

// Sessions enumerates the owner's active ledger rows.
func (s *DefaultAuthService) Sessions(ownerID string) ([]models.StoredToken, error) {
	return s.Tokens.FindAllValid(ownerID)
}

// issuePair signs an access+refresh pair and persists both ledger rows
// under one correlation ID.
func (s *DefaultAuthService) issuePair(principal *models.Principal, correlationID string) (*models.JwtResponse, error) {
	access, err := s.Codec.IssueAccess(principal.ID)
	if err != nil {
		s.Logger.Error("failed to issue access token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	refresh, err := s.Codec.IssueRefresh(principal.ID)
	if err != nil {
		s.Logger.Error("failed to issue refresh token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	now := time.Now()
	for _, tok := range []string{access, refresh} {
		row := &models.StoredToken{
			TokenString:   tok,
			OwnerID:       principal.ID,
			CreatedAt:     now,
			CorrelationID: correlationID,
		}
		if err := s.Tokens.Save(row); err != nil {
			s.Logger.Error("failed to persist token", zap.Error(err))
			return nil, fmt.Errorf("authentication failed, please try again")
		}
	}

	return &models.JwtResponse{
		AccessToken:     access,
		RefreshToken:    refresh,
		TokenType:       "Bearer",
		ID:              principal.ID,
		Name:            principal.DisplayName,
		Email:           principal.Email,
		ProfilePhotoURL: principal.ProfilePhotoURL,
		Roles:           []string{string(principal.Role)},
	}, nil
}
