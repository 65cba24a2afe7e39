package auth

import (
	"errors"
	"sync"
	"time"

	"bloodlink/models"
)

// fakeTokenRepo is an in-memory TokenRepository that counts writes so
// tests can assert idempotence.
type fakeTokenRepo struct {
	mu              sync.Mutex
	rows            map[string]*models.StoredToken
	markExpiredHits int
	failDelete      bool
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{rows: make(map[string]*models.StoredToken)}
}

func (f *fakeTokenRepo) Save(t *models.StoredToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.rows[t.TokenString] = &cp
	return nil
}

func (f *fakeTokenRepo) GetByToken(tokenString string) (*models.StoredToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[tokenString]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeTokenRepo) GetAllValid(ownerID string) ([]models.StoredToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.StoredToken
	for _, row := range f.rows {
		if row.OwnerID == ownerID && !row.Revoked && !row.Expired {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeTokenRepo) Revoke(tokenString string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[tokenString]; ok {
		row.Revoked = true
	}
	return nil
}

func (f *fakeTokenRepo) RevokeAllByOwner(ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.OwnerID == ownerID {
			row.Revoked = true
		}
	}
	return nil
}

func (f *fakeTokenRepo) MarkExpired(tokenString string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markExpiredHits++
	if row, ok := f.rows[tokenString]; ok {
		row.Expired = true
	}
	return nil
}

func (f *fakeTokenRepo) DeleteLegacy() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return 0, errors.New("delete failed")
	}
	var deleted int64
	for key, row := range f.rows {
		if row.CorrelationID == "" {
			delete(f.rows, key)
			deleted++
		}
	}
	return deleted, nil
}

// fakeOTPRepo is an in-memory OTPRepository keyed by phone+email.
type fakeOTPRepo struct {
	mu   sync.Mutex
	rows map[string]*models.OTPChallenge
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{rows: make(map[string]*models.OTPChallenge)}
}

func otpKey(phone, email string) string { return phone + "|" + email }

func (f *fakeOTPRepo) GetByKey(phone, email string) (*models.OTPChallenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[otpKey(phone, email)]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeOTPRepo) Replace(c *models.OTPChallenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.rows[otpKey(c.PhoneNumber, c.Email)] = &cp
	return nil
}

func (f *fakeOTPRepo) IncrementAttempts(phone, email string) (*models.OTPChallenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[otpKey(phone, email)]
	if !ok {
		return nil, nil
	}
	row.Attempts++
	cp := *row
	return &cp, nil
}

func (f *fakeOTPRepo) MarkVerified(phone, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[otpKey(phone, email)]; ok {
		row.Verified = true
	}
	return nil
}

func (f *fakeOTPRepo) Delete(phone, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, otpKey(phone, email))
	return nil
}

// recordingDispatcher captures dispatched codes for assertions.
type recordingDispatcher struct {
	mu    sync.Mutex
	codes []string
}

func (d *recordingDispatcher) Dispatch(phone, email, code string, expiresIn time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.codes = append(d.codes, code)
	return nil
}

// In-memory credential repositories for resolver and service tests.

type fakeAdminRepo struct{ byEmail map[string]*models.Admin }

func (f *fakeAdminRepo) GetByEmail(email string) (*models.Admin, error) {
	return f.byEmail[email], nil
}

func (f *fakeAdminRepo) GetByID(id string) (*models.Admin, error) {
	for _, a := range f.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminRepo) Create(a *models.Admin) error {
	f.byEmail[a.Email] = a
	return nil
}

type fakeDonorRepo struct{ byEmail map[string]*models.Donor }

func (f *fakeDonorRepo) GetByEmail(email string) (*models.Donor, error) {
	return f.byEmail[email], nil
}

func (f *fakeDonorRepo) GetByID(id string) (*models.Donor, error) {
	for _, d := range f.byEmail {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeDonorRepo) Create(d *models.Donor) error {
	f.byEmail[d.Email] = d
	return nil
}

func (f *fakeDonorRepo) GetAll() ([]models.Donor, error) {
	var out []models.Donor
	for _, d := range f.byEmail {
		out = append(out, *d)
	}
	return out, nil
}

type fakeHospitalRepo struct{ byEmail map[string]*models.Hospital }

func (f *fakeHospitalRepo) GetByEmail(email string) (*models.Hospital, error) {
	return f.byEmail[email], nil
}

func (f *fakeHospitalRepo) GetByID(id string) (*models.Hospital, error) {
	for _, h := range f.byEmail {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, nil
}

func (f *fakeHospitalRepo) Create(h *models.Hospital) error {
	f.byEmail[h.Email] = h
	return nil
}

type fakeBloodBankRepo struct{ byEmail map[string]*models.BloodBank }

func (f *fakeBloodBankRepo) GetByEmail(email string) (*models.BloodBank, error) {
	return f.byEmail[email], nil
}

func (f *fakeBloodBankRepo) GetByID(id string) (*models.BloodBank, error) {
	for _, b := range f.byEmail {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBloodBankRepo) Create(b *models.BloodBank) error {
	f.byEmail[b.Email] = b
	return nil
}

func emptyResolver() *DefaultPrincipalResolver {
	return &DefaultPrincipalResolver{
		Admins:     &fakeAdminRepo{byEmail: map[string]*models.Admin{}},
		Donors:     &fakeDonorRepo{byEmail: map[string]*models.Donor{}},
		Hospitals:  &fakeHospitalRepo{byEmail: map[string]*models.Hospital{}},
		BloodBanks: &fakeBloodBankRepo{byEmail: map[string]*models.BloodBank{}},
	}
}
