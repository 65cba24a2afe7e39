package auth

import (
	"testing"
	"time"

	"bloodlink/models"
	"bloodlink/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type serviceFixture struct {
	svc       *DefaultAuthService
	tokenRepo *fakeTokenRepo
	otpRepo   *fakeOTPRepo
	resolver  *DefaultPrincipalResolver
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	tokenRepo := newFakeTokenRepo()
	otpRepo := newFakeOTPRepo()
	resolver := emptyResolver()
	logger := zap.NewNop()

	svc := &DefaultAuthService{
		Resolver: resolver,
		Codec:    NewCodec("test-secret", time.Hour, 7*24*time.Hour),
		Tokens:   &DefaultTokenService{Repo: tokenRepo, Logger: logger},
		OTP: &DefaultChallengeEngine{
			Repo:        otpRepo,
			Dispatcher:  &recordingDispatcher{},
			Expiry:      5 * time.Minute,
			MaxAttempts: 5,
			Logger:      logger,
		},
		Admins:     resolver.Admins,
		Donors:     resolver.Donors,
		Hospitals:  resolver.Hospitals,
		BloodBanks: resolver.BloodBanks,
		Logger:     logger,
	}
	return &serviceFixture{svc: svc, tokenRepo: tokenRepo, otpRepo: otpRepo, resolver: resolver}
}

func (f *serviceFixture) seedDonor(t *testing.T, email, password string) *models.Donor {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	donor := &models.Donor{
		ID:           "donor-1",
		Name:         "Dan Donor",
		Email:        email,
		Username:     "dan",
		PasswordHash: string(hashed),
		BloodType:    "O-",
	}
	f.resolver.Donors.(*fakeDonorRepo).byEmail[email] = donor
	return donor
}

func TestLoginIssuesPersistedPair(t *testing.T) {
	f := newServiceFixture(t)
	f.seedDonor(t, "d@x.com", "hunter22")

	resp, err := f.svc.Login("d@x.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "donor-1", resp.ID)
	assert.Equal(t, []string{"DONOR"}, resp.Roles)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)

	// Both tokens land in the ledger under one correlation ID.
	access, err := f.svc.Tokens.FindByToken(resp.AccessToken)
	require.NoError(t, err)
	require.NotNil(t, access)
	refresh, err := f.svc.Tokens.FindByToken(resp.RefreshToken)
	require.NoError(t, err)
	require.NotNil(t, refresh)
	assert.Equal(t, access.CorrelationID, refresh.CorrelationID)
	assert.NotEmpty(t, access.CorrelationID)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newServiceFixture(t)
	f.seedDonor(t, "d@x.com", "hunter22")

	_, err := f.svc.Login("d@x.com", "wrong")
	assert.ErrorIs(t, err, utils.ErrAuthentication)
}

func TestLoginUnknownEmailLooksLikeWrongPassword(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.Login("nobody@x.com", "whatever")
	assert.ErrorIs(t, err, utils.ErrAuthentication,
		"a missing account and a bad password must be indistinguishable")
}

func TestRefreshRotatesTokens(t *testing.T) {
	f := newServiceFixture(t)
	f.seedDonor(t, "d@x.com", "hunter22")

	login, err := f.svc.Login("d@x.com", "hunter22")
	require.NoError(t, err)

	rotated, err := f.svc.Refresh(login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	// The presented refresh token is revoked by rotation.
	old, err := f.svc.Tokens.FindByToken(login.RefreshToken)
	require.NoError(t, err)
	assert.True(t, old.Revoked)

	// The new pair shares the original correlation ID.
	newRow, err := f.svc.Tokens.FindByToken(rotated.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, old.CorrelationID, newRow.CorrelationID)

	// The revoked token cannot be replayed.
	_, err = f.svc.Refresh(login.RefreshToken)
	assert.ErrorIs(t, err, utils.ErrAuthentication)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	f := newServiceFixture(t)
	f.seedDonor(t, "d@x.com", "hunter22")

	// Signed by the right key but never persisted in the ledger.
	foreign, err := f.svc.Codec.IssueRefresh("donor-1")
	require.NoError(t, err)

	_, err = f.svc.Refresh(foreign)
	assert.ErrorIs(t, err, utils.ErrAuthentication)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.Refresh("not-a-token")
	assert.ErrorIs(t, err, utils.ErrAuthentication)
}

func TestSignupRequiresVerifiedChallenge(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.Signup(models.SignupRequest{
		Name:        "Dan Donor",
		Email:       "d@x.com",
		Username:    "dan",
		Password:    "hunter22",
		Role:        "DONOR",
		PhoneNumber: "09171234567",
		BloodType:   "O-",
	})
	var ve utils.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestSignupConsumesChallengeAndCreatesDonor(t *testing.T) {
	f := newServiceFixture(t)
	require.NoError(t, f.otpRepo.Replace(&models.OTPChallenge{
		PhoneNumber: "09171234567",
		Email:       "d@x.com",
		OTPCode:     "123456",
		Verified:    true,
		MaxAttempts: 5,
		ExpiresAt:   time.Now().Add(5 * time.Minute),
	}))

	resp, err := f.svc.Signup(models.SignupRequest{
		Name:        "Dan Donor",
		Email:       "d@x.com",
		Username:    "dan",
		Password:    "hunter22",
		Role:        "DONOR",
		PhoneNumber: "09171234567",
		BloodType:   "O-",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"DONOR"}, resp.Roles)
	assert.Equal(t, "Dan Donor", resp.Name)

	// The challenge is spent.
	ch, err := f.otpRepo.GetByKey("09171234567", "d@x.com")
	require.NoError(t, err)
	assert.Nil(t, ch)

	// The account can log in.
	login, err := f.svc.Login("d@x.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, resp.ID, login.ID)
}

func TestSignupRejectsAdminRole(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.Signup(models.SignupRequest{
		Name: "Mallory", Email: "m@x.com", Username: "mal",
		Password: "hunter22", Role: "ADMIN", PhoneNumber: "09171234567",
	})
	var ve utils.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newServiceFixture(t)
	f.seedDonor(t, "d@x.com", "hunter22")

	login, err := f.svc.Login("d@x.com", "hunter22")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(login.AccessToken))
	row, err := f.svc.Tokens.FindByToken(login.AccessToken)
	require.NoError(t, err)
	assert.True(t, row.Revoked)
}

func TestLogoutAllAndSessions(t *testing.T) {
	f := newServiceFixture(t)
	f.seedDonor(t, "d@x.com", "hunter22")

	_, err := f.svc.Login("d@x.com", "hunter22")
	require.NoError(t, err)
	_, err = f.svc.Login("d@x.com", "hunter22")
	require.NoError(t, err)

	sessions, err := f.svc.Sessions("donor-1")
	require.NoError(t, err)
	assert.Len(t, sessions, 4, "two logins, each an access+refresh pair")

	require.NoError(t, f.svc.LogoutAll("donor-1"))
	sessions, err = f.svc.Sessions("donor-1")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
