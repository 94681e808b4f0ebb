package services

import (
	"testing"

	"piwork_backend/internal/models"
	"piwork_backend/internal/repositories"
	"piwork_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListInvestigators_FiltersDirectory(t *testing.T) {
	profiles := newFakeProfileRepo()
	svc := NewProfileService(profiles)

	require.NoError(t, profiles.CreateInvestigatorProfile(&models.InvestigatorProfile{
		UserID: "pi-1", Location: "Chicago", IsAvailable: true,
	}))
	require.NoError(t, profiles.CreateInvestigatorProfile(&models.InvestigatorProfile{
		UserID: "pi-2", Location: "Chicago", IsAvailable: false,
	}))
	require.NoError(t, profiles.CreateInvestigatorProfile(&models.InvestigatorProfile{
		UserID: "pi-3", Location: "Denver", IsAvailable: true,
	}))

	all, err := svc.ListInvestigators(repositories.InvestigatorFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)

	available, err := svc.ListInvestigators(repositories.InvestigatorFilter{AvailableOnly: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, available.Total)

	chicago, err := svc.ListInvestigators(repositories.InvestigatorFilter{Location: "chicago", AvailableOnly: true})
	require.NoError(t, err)
	require.EqualValues(t, 1, chicago.Total)
	assert.Equal(t, "pi-1", chicago.Investigators[0].UserID)
}

func TestUpdateInvestigatorProfile_PatchesFields(t *testing.T) {
	profiles := newFakeProfileRepo()
	svc := NewProfileService(profiles)

	bio := "Former fraud examiner."
	unavailable := false
	profile, err := svc.UpdateInvestigatorProfile("pi-1", &dto.UpdateInvestigatorProfileRequest{
		Specializations: []string{"fraud", "due diligence"},
		Bio:             &bio,
		IsAvailable:     &unavailable,
	})
	require.NoError(t, err)

	assert.Equal(t, bio, profile.Bio)
	assert.False(t, profile.IsAvailable)
	assert.JSONEq(t, `["fraud","due diligence"]`, string(profile.Specializations))

	// Untouched fields keep their values on a second patch.
	location := "Chicago"
	patched, err := svc.UpdateInvestigatorProfile("pi-1", &dto.UpdateInvestigatorProfileRequest{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, bio, patched.Bio)
	assert.Equal(t, "Chicago", patched.Location)
}
