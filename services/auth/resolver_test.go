package auth

import (
	"testing"

	"bloodlink/models"
	"bloodlink/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePriorityAdminBeatsDonor(t *testing.T) {
	resolver := emptyResolver()
	resolver.Admins.(*fakeAdminRepo).byEmail["shared@x.com"] = &models.Admin{
		ID: "admin-1", Name: "Root", Email: "shared@x.com", Username: "root",
	}
	resolver.Donors.(*fakeDonorRepo).byEmail["shared@x.com"] = &models.Donor{
		ID: "donor-1", Name: "Dan Donor", Email: "shared@x.com", Username: "dan",
	}

	p, err := resolver.Resolve("shared@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, p.Role)
	assert.Equal(t, "admin-1", p.ID)
}

func TestResolvePriorityDonorBeatsHospital(t *testing.T) {
	resolver := emptyResolver()
	resolver.Donors.(*fakeDonorRepo).byEmail["shared@x.com"] = &models.Donor{
		ID: "donor-1", Email: "shared@x.com",
	}
	resolver.Hospitals.(*fakeHospitalRepo).byEmail["shared@x.com"] = &models.Hospital{
		ID: "hosp-1", Email: "shared@x.com",
	}

	p, err := resolver.Resolve("shared@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleDonor, p.Role)
}

func TestResolveEachCollection(t *testing.T) {
	resolver := emptyResolver()
	resolver.Admins.(*fakeAdminRepo).byEmail["a@x.com"] = &models.Admin{ID: "a1", Name: "Admin", Email: "a@x.com"}
	resolver.Donors.(*fakeDonorRepo).byEmail["d@x.com"] = &models.Donor{ID: "d1", Name: "Donor", Email: "d@x.com", BloodType: "O-"}
	resolver.Hospitals.(*fakeHospitalRepo).byEmail["h@x.com"] = &models.Hospital{ID: "h1", HospitalName: "General", Email: "h@x.com"}
	resolver.BloodBanks.(*fakeBloodBankRepo).byEmail["b@x.com"] = &models.BloodBank{ID: "b1", BloodBankName: "Central", Email: "b@x.com"}

	cases := []struct {
		email string
		role  models.Role
		name  string
	}{
		{"a@x.com", models.RoleAdmin, "Admin"},
		{"d@x.com", models.RoleDonor, "Donor"},
		{"h@x.com", models.RoleHospital, "General"},
		{"b@x.com", models.RoleBloodBank, "Central"},
	}
	for _, tc := range cases {
		p, err := resolver.Resolve(tc.email)
		require.NoError(t, err, tc.email)
		assert.Equal(t, tc.role, p.Role)
		assert.Equal(t, tc.name, p.DisplayName)
	}
}

func TestResolveNotFound(t *testing.T) {
	resolver := emptyResolver()

	p, err := resolver.Resolve("nobody@x.com")
	assert.Nil(t, p)
	var nf utils.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestResolveByID(t *testing.T) {
	resolver := emptyResolver()
	resolver.Hospitals.(*fakeHospitalRepo).byEmail["h@x.com"] = &models.Hospital{
		ID: "hosp-1", HospitalName: "General", Email: "h@x.com",
	}

	p, err := resolver.ResolveByID("hosp-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleHospital, p.Role)
	assert.Equal(t, "General", p.DisplayName)

	_, err = resolver.ResolveByID("missing")
	var nf utils.NotFoundError
	require.ErrorAs(t, err, &nf)
}
