package businessflow

import (
	"context"
	"testing"

	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/models"
	"github.com/amirphl/social-admin/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessProfile(t *testing.T) {
	ctx := context.Background()
	l := newLifecycle(t)
	business := l.seed(models.AccountTypeBusiness, "hello@acme.ng", models.AccountStatusApproved)
	other := l.seed(models.AccountTypeBusiness, "other@acme.ng", models.AccountStatusApproved)
	personal := l.seed(models.AccountTypePersonal, "ada@example.com", models.AccountStatusApproved)
	l.accounts.update(other.ID, func(a *models.Account) { a.CACNumber = utils.ToPtr("RC999") })

	t.Run("Get", func(t *testing.T) {
		profile, err := l.profile.GetProfile(ctx, business.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", profile.BusinessName)
		assert.Equal(t, "hello@acme.ng", profile.BusinessEmail)

		_, err = l.profile.GetProfile(ctx, personal.ID)
		assert.True(t, IsNotFound(err))
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		resp, err := l.profile.UpdateProfile(ctx, business.ID, &dto.UpdateBusinessProfileRequest{
			BusinessLocation: utils.ToPtr(" Abuja "),
			CACNumber:        utils.ToPtr("RC123"),
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, msgBusinessDetailsUpdated, resp.Message)
		assert.Equal(t, "Abuja", utils.Deref(resp.Profile.BusinessLocation))
		assert.Equal(t, "RC123", utils.Deref(resp.Profile.CACNumber))
		assert.Equal(t, "Acme", resp.Profile.BusinessName)
	})

	t.Run("KeepingOwnCACIsAllowed", func(t *testing.T) {
		_, err := l.profile.UpdateProfile(ctx, business.ID, &dto.UpdateBusinessProfileRequest{CACNumber: utils.ToPtr("RC123")}, nil)
		require.NoError(t, err)
	})

	t.Run("CACOfAnotherAccountIsConflict", func(t *testing.T) {
		_, err := l.profile.UpdateProfile(ctx, business.ID, &dto.UpdateBusinessProfileRequest{CACNumber: utils.ToPtr("RC999")}, nil)
		require.Error(t, err)
		assert.True(t, IsConflict(err))
		assert.Equal(t, "RC123", utils.Deref(l.accounts.get(business.ID).CACNumber))
	})

	t.Run("EmptyUpdateIsValidation", func(t *testing.T) {
		_, err := l.profile.UpdateProfile(ctx, business.ID, &dto.UpdateBusinessProfileRequest{BusinessName: utils.ToPtr("  ")}, nil)
		assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	})

	t.Run("PersonalAccountIsNotFound", func(t *testing.T) {
		_, err := l.profile.UpdateProfile(ctx, personal.ID, &dto.UpdateBusinessProfileRequest{BusinessName: utils.ToPtr("Shop")}, nil)
		assert.ErrorIs(t, err, ErrBusinessAccountNotFound)
	})
}
