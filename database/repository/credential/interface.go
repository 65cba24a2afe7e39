package credential

import "bloodlink/models"

// AdminRepository provides read/write access to the admin collection.
type AdminRepository interface {
	GetByEmail(email string) (*models.Admin, error)
	GetByID(id string) (*models.Admin, error)
	Create(a *models.Admin) error
}

// DonorRepository provides read/write access to the donor collection.
type DonorRepository interface {
	GetByEmail(email string) (*models.Donor, error)
	GetByID(id string) (*models.Donor, error)
	Create(d *models.Donor) error
	GetAll() ([]models.Donor, error)
}

// HospitalRepository provides read/write access to the hospital collection.
type HospitalRepository interface {
	GetByEmail(email string) (*models.Hospital, error)
	GetByID(id string) (*models.Hospital, error)
	Create(h *models.Hospital) error
}

// BloodBankRepository provides read/write access to the blood bank collection.
type BloodBankRepository interface {
	GetByEmail(email string) (*models.BloodBank, error)
	GetByID(id string) (*models.BloodBank, error)
	Create(b *models.BloodBank) error
}
