package auth

import (
	credRepo "bloodlink/database/repository/credential"
	"bloodlink/models"
	"bloodlink/utils"
)

// PrincipalResolver unifies the four credential collections into one
// authorization model.
type PrincipalResolver interface {
	// Resolve probes the collections by email in priority order
	// ADMIN > DONOR > HOSPITAL > BLOODBANK; first match wins. Email
	// uniqueness holds within each collection but not across them, so
	// a duplicated email always resolves to the higher-priority role.
	Resolve(email string) (*models.Principal, error)
	// ResolveByID probes the collections by principal ID, same order.
	ResolveByID(id string) (*models.Principal, error)
}

// DefaultPrincipalResolver is the production implementation.
type DefaultPrincipalResolver struct {
	Admins     credRepo.AdminRepository
	Donors     credRepo.DonorRepository
	Hospitals  credRepo.HospitalRepository
	BloodBanks credRepo.BloodBankRepository
}

// Resolve finds a principal by email. Pure read, no side effects.
func (r *DefaultPrincipalResolver) Resolve(email string) (*models.Principal, error) {
	admin, err := r.Admins.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if admin != nil {
		return principalFromAdmin(admin), nil
	}

	donor, err := r.Donors.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if donor != nil {
		return principalFromDonor(donor), nil
	}

	hospital, err := r.Hospitals.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if hospital != nil {
		return principalFromHospital(hospital), nil
	}

	bank, err := r.BloodBanks.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if bank != nil {
		return principalFromBloodBank(bank), nil
	}

	return nil, utils.NotFoundError{Resource: "principal"}
}

// ResolveByID finds a principal by its unique ID.
func (r *DefaultPrincipalResolver) ResolveByID(id string) (*models.Principal, error) {
	admin, err := r.Admins.GetByID(id)
	if err != nil {
		return nil, err
	}
	if admin != nil {
		return principalFromAdmin(admin), nil
	}

	donor, err := r.Donors.GetByID(id)
	if err != nil {
		return nil, err
	}
	if donor != nil {
		return principalFromDonor(donor), nil
	}

	hospital, err := r.Hospitals.GetByID(id)
	if err != nil {
		return nil, err
	}
	if hospital != nil {
		return principalFromHospital(hospital), nil
	}

	bank, err := r.BloodBanks.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bank != nil {
		return principalFromBloodBank(bank), nil
	}

	return nil, utils.NotFoundError{Resource: "principal"}
}

// One adapter per source collection keeps the field mapping in a single
// place instead of scattering copies across call sites.

func principalFromAdmin(a *models.Admin) *models.Principal {
	return &models.Principal{
		ID:              a.ID,
		DisplayName:     a.Name,
		Email:           a.Email,
		Username:        a.Username,
		PasswordHash:    a.PasswordHash,
		Role:            models.RoleAdmin,
		PhoneNumber:     a.PhoneNumber,
		ProfilePhotoURL: a.ProfilePhotoURL,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func principalFromDonor(d *models.Donor) *models.Principal {
	return &models.Principal{
		ID:              d.ID,
		DisplayName:     d.Name,
		Email:           d.Email,
		Username:        d.Username,
		PasswordHash:    d.PasswordHash,
		Role:            models.RoleDonor,
		PhoneNumber:     d.PhoneNumber,
		ProfilePhotoURL: d.ProfilePhotoURL,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func principalFromHospital(h *models.Hospital) *models.Principal {
	return &models.Principal{
		ID:              h.ID,
		DisplayName:     h.HospitalName,
		Email:           h.Email,
		Username:        h.Username,
		PasswordHash:    h.PasswordHash,
		Role:            models.RoleHospital,
		PhoneNumber:     h.ContactInformation,
		ProfilePhotoURL: h.ProfilePhotoURL,
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}

func principalFromBloodBank(b *models.BloodBank) *models.Principal {
	return &models.Principal{
		ID:              b.ID,
		DisplayName:     b.BloodBankName,
		Email:           b.Email,
		Username:        b.Username,
		PasswordHash:    b.PasswordHash,
		Role:            models.RoleBloodBank,
		PhoneNumber:     b.ContactInformation,
		ProfilePhotoURL: b.ProfilePhotoURL,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
