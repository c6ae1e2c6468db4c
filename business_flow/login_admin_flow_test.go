package businessflow

import (
	"context"
	"testing"

	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminAuth(t *testing.T) (AdminAuthFlow, *fakeAdminRepo, *fakeCaptcha) {
	t.Helper()
	admins := newFakeAdminRepo()
	captcha := &fakeCaptcha{}
	flow := NewAdminAuthFlow(admins, fakeHasher{}, newTestTokenService(t), captcha, newFakeClock())
	require.NoError(t, flow.EnsureBootstrapAdmin(context.Background(), "root", "RootSecret1!"))
	return flow, admins, captcha
}

func TestEnsureBootstrapAdminIsIdempotent(t *testing.T) {
	flow, admins, _ := newAdminAuth(t)

	require.NoError(t, flow.EnsureBootstrapAdmin(context.Background(), "root", "another-password"))
	assert.Equal(t, 1, admins.count())

	admin, err := admins.ByUsername(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, "hashed:RootSecret1!", admin.PasswordHash)
	assert.True(t, utils.IsTrue(admin.IsActive))
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()
	flow, admins, captcha := newAdminAuth(t)

	challenge, err := flow.InitCaptcha(ctx)
	require.NoError(t, err)
	assert.Equal(t, "challenge-1", challenge.ChallengeID)

	t.Run("Success", func(t *testing.T) {
		resp, err := flow.Login(ctx, &dto.AdminLoginRequest{
			ChallengeID: challenge.ChallengeID, Username: "root", Password: "RootSecret1!", UserAngle: 90,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "root", resp.Admin.Username)
		assert.Equal(t, "Bearer", resp.Session.TokenType)
		assert.NotEmpty(t, resp.Session.AccessToken)
		assert.Greater(t, resp.Session.ExpiresIn, 0)
		assert.Contains(t, admins.logins, resp.Admin.ID)
	})

	t.Run("CaptchaCheckedFirst", func(t *testing.T) {
		_, err := flow.Login(ctx, &dto.AdminLoginRequest{
			ChallengeID: challenge.ChallengeID, Username: "root", Password: "wrong-password", UserAngle: 45,
		}, nil)
		require.Error(t, err)
		assert.True(t, IsInvalidCaptcha(err))
		assert.True(t, IsUnauthorized(err))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := flow.Login(ctx, &dto.AdminLoginRequest{
			ChallengeID: challenge.ChallengeID, Username: "root", Password: "wrong-password", UserAngle: 90,
		}, nil)
		assert.ErrorIs(t, err, ErrIncorrectPassword)
	})

	t.Run("UnknownAdminLooksLikeWrongPassword", func(t *testing.T) {
		_, err := flow.Login(ctx, &dto.AdminLoginRequest{
			ChallengeID: challenge.ChallengeID, Username: "ghost", Password: "RootSecret1!", UserAngle: 90,
		}, nil)
		require.Error(t, err)
		var unknown, wrong *BusinessError
		require.ErrorAs(t, err, &unknown)
		_, err = flow.Login(ctx, &dto.AdminLoginRequest{
			ChallengeID: challenge.ChallengeID, Username: "root", Password: "nope-nope", UserAngle: 90,
		}, nil)
		require.ErrorAs(t, err, &wrong)
		assert.Equal(t, wrong.Message, unknown.Message)
		assert.Equal(t, wrong.Code, unknown.Code)
	})

	t.Run("InactiveAdmin", func(t *testing.T) {
		admin, err := admins.ByUsername(ctx, "root")
		require.NoError(t, err)
		admin.IsActive = utils.ToPtr(false)
		require.NoError(t, admins.Save(ctx, admin))

		_, err = flow.Login(ctx, &dto.AdminLoginRequest{
			ChallengeID: challenge.ChallengeID, Username: "root", Password: "wrong-password", UserAngle: 90,
		}, nil)
		assert.ErrorIs(t, err, ErrIncorrectPassword, "inactive state is hidden behind the password check")
		var be *BusinessError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, "Invalid username or password", be.Message)

		_, err = flow.Login(ctx, &dto.AdminLoginRequest{
			ChallengeID: challenge.ChallengeID, Username: "root", Password: "RootSecret1!", UserAngle: 90,
		}, nil)
		assert.ErrorIs(t, err, ErrAdminInactive)
	})

	assert.NotEmpty(t, captcha.verified)
}
