package auth

import (
	"testing"
	"time"

	"bloodlink/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTokenService(repo *fakeTokenRepo) *DefaultTokenService {
	return &DefaultTokenService{Repo: repo, Logger: zap.NewNop()}
}

func TestTokenServiceSaveAndFind(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTokenService(repo)

	row := &models.StoredToken{
		TokenString:   "tok-1",
		OwnerID:       "owner-1",
		CreatedAt:     time.Now(),
		CorrelationID: "corr-1",
	}
	require.NoError(t, svc.Save(row))

	found, err := svc.FindByToken("tok-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "owner-1", found.OwnerID)
	assert.False(t, found.Revoked)
	assert.False(t, found.Expired)
}

func TestTokenServiceSaveRejectsEmptyToken(t *testing.T) {
	svc := newTokenService(newFakeTokenRepo())
	err := svc.Save(&models.StoredToken{OwnerID: "owner-1"})
	assert.Error(t, err)
}

func TestTokenServiceFindMissReturnsNil(t *testing.T) {
	svc := newTokenService(newFakeTokenRepo())

	found, err := svc.FindByToken("absent")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestTokenServiceMarkExpiredIdempotent(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTokenService(repo)

	require.NoError(t, svc.Save(&models.StoredToken{
		TokenString:   "tok-1",
		OwnerID:       "owner-1",
		CorrelationID: "corr-1",
	}))

	// First detection writes exactly once.
	require.NoError(t, svc.MarkExpired("tok-1"))
	assert.Equal(t, 1, repo.markExpiredHits)

	// Repeating is a no-op, not an error and not a second write.
	require.NoError(t, svc.MarkExpired("tok-1"))
	require.NoError(t, svc.MarkExpired("tok-1"))
	assert.Equal(t, 1, repo.markExpiredHits)

	found, err := svc.FindByToken("tok-1")
	require.NoError(t, err)
	assert.True(t, found.Expired)
	assert.False(t, found.Revoked, "expired and revoked are independent flags")
}

func TestTokenServiceMarkExpiredMissIsNotAnError(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTokenService(repo)

	require.NoError(t, svc.MarkExpired("never-issued"))
	assert.Equal(t, 0, repo.markExpiredHits)
}

func TestTokenServiceRevokeKeepsRow(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTokenService(repo)

	require.NoError(t, svc.Save(&models.StoredToken{
		TokenString:   "tok-1",
		OwnerID:       "owner-1",
		CorrelationID: "corr-1",
	}))
	require.NoError(t, svc.Revoke("tok-1"))

	found, err := svc.FindByToken("tok-1")
	require.NoError(t, err)
	require.NotNil(t, found, "revocation flags the row, it never deletes it")
	assert.True(t, found.Revoked)
	assert.False(t, found.Expired)
}

func TestTokenServiceFindAllValid(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTokenService(repo)

	for _, row := range []*models.StoredToken{
		{TokenString: "active-1", OwnerID: "owner-1", CorrelationID: "c1"},
		{TokenString: "active-2", OwnerID: "owner-1", CorrelationID: "c2"},
		{TokenString: "other-owner", OwnerID: "owner-2", CorrelationID: "c3"},
	} {
		require.NoError(t, svc.Save(row))
	}
	require.NoError(t, svc.Save(&models.StoredToken{TokenString: "revoked", OwnerID: "owner-1", CorrelationID: "c4"}))
	require.NoError(t, svc.Revoke("revoked"))
	require.NoError(t, svc.Save(&models.StoredToken{TokenString: "expired", OwnerID: "owner-1", CorrelationID: "c5"}))
	require.NoError(t, svc.MarkExpired("expired"))

	valid, err := svc.FindAllValid("owner-1")
	require.NoError(t, err)
	assert.Len(t, valid, 2)
	for _, row := range valid {
		assert.False(t, row.Revoked)
		assert.False(t, row.Expired)
	}
}

func TestTokenServiceRevokeAll(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTokenService(repo)

	require.NoError(t, svc.Save(&models.StoredToken{TokenString: "a", OwnerID: "owner-1", CorrelationID: "c1"}))
	require.NoError(t, svc.Save(&models.StoredToken{TokenString: "b", OwnerID: "owner-1", CorrelationID: "c2"}))
	require.NoError(t, svc.RevokeAll("owner-1"))

	valid, err := svc.FindAllValid("owner-1")
	require.NoError(t, err)
	assert.Empty(t, valid)
}

func TestCleanupLegacyRows(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTokenService(repo)

	require.NoError(t, svc.Save(&models.StoredToken{TokenString: "legacy", OwnerID: "owner-1"}))
	require.NoError(t, svc.Save(&models.StoredToken{TokenString: "modern", OwnerID: "owner-1", CorrelationID: "c1"}))

	svc.CleanupLegacyRows()

	legacy, err := svc.FindByToken("legacy")
	require.NoError(t, err)
	assert.Nil(t, legacy)

	modern, err := svc.FindByToken("modern")
	require.NoError(t, err)
	assert.NotNil(t, modern)

	// Idempotent second run.
	svc.CleanupLegacyRows()
	modern, err = svc.FindByToken("modern")
	require.NoError(t, err)
	assert.NotNil(t, modern)
}

func TestCleanupLegacyRowsSwallowsFailure(t *testing.T) {
	repo := newFakeTokenRepo()
	repo.failDelete = true
	svc := newTokenService(repo)

	// Must not panic or surface the error; boot continues regardless.
	svc.CleanupLegacyRows()
}
