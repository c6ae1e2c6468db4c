package businessflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/models"
	"github.com/amirphl/social-admin/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// approve runs the admin approval for id and returns the issued activation code
func (l *lifecycle) approve(t *testing.T, id uint) string {
	t.Helper()
	_, err := l.admin.Approve(context.Background(), 1, &dto.ApproveAccountRequest{UserID: id}, nil)
	require.NoError(t, err)
	return l.activationCode(t, id)
}

func loginReq(email, password, code string) *dto.LoginRequest {
	return &dto.LoginRequest{Email: email, Password: password, ActivationCode: code}
}

func TestLoginStatusGates(t *testing.T) {
	ctx := context.Background()
	l := newLifecycle(t)

	pending := l.seed(models.AccountTypePersonal, "pending@example.com", models.AccountStatusPending)
	rejected := l.seed(models.AccountTypePersonal, "rejected@example.com", models.AccountStatusRejected)

	_, err := l.login.Login(ctx, models.AccountTypePersonal, loginReq(pending.Email, "Secret123!", "123456"), nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.True(t, IsAccountPending(err))
	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "pending", be.Status)

	_, err = l.login.Login(ctx, models.AccountTypePersonal, loginReq(rejected.Email, "Secret123!", "123456"), nil)
	require.Error(t, err)
	assert.True(t, IsAccountRejected(err))
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "rejected", be.Status)
}

func TestLoginCheckOrder(t *testing.T) {
	ctx := context.Background()
	l := newLifecycle(t)
	account := l.seed(models.AccountTypePersonal, "ada@example.com", models.AccountStatusPending)
	code := l.approve(t, account.ID)

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := l.login.Login(ctx, models.AccountTypePersonal, loginReq("nobody@example.com", "Secret123!", code), nil)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("WrongAccountType", func(t *testing.T) {
		_, err := l.login.Login(ctx, models.AccountTypeBusiness, loginReq(account.Email, "Secret123!", code), nil)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("MissingCode", func(t *testing.T) {
		_, err := l.login.Login(ctx, models.AccountTypePersonal, loginReq(account.Email, "Secret123!", ""), nil)
		assert.ErrorIs(t, err, ErrInvalidActivationCode)
	})

	t.Run("WrongCodeBeatsWrongPassword", func(t *testing.T) {
		_, err := l.login.Login(ctx, models.AccountTypePersonal, loginReq(account.Email, "wrong-password", wrongCode(code)), nil)
		assert.ErrorIs(t, err, ErrInvalidActivationCode)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := l.login.Login(ctx, models.AccountTypePersonal, loginReq(account.Email, "wrong-password", code), nil)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.False(t, l.accounts.get(account.ID).IsVerified)
	})

	t.Run("InvalidAccountType", func(t *testing.T) {
		_, err := l.login.Login(ctx, models.AccountType("agency"), loginReq(account.Email, "Secret123!", code), nil)
		assert.True(t, IsValidation(err))
	})
}

func TestLoginActivationRoundTrip(t *testing.T) {
	ctx := context.Background()
	l := newLifecycle(t)
	account := l.seed(models.AccountTypeBusiness, "hello@acme.ng", models.AccountStatusPending)
	code := l.approve(t, account.ID)

	resp, err := l.login.Login(ctx, models.AccountTypeBusiness, loginReq(" Hello@Acme.ng", "Secret123!", code), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.True(t, resp.User.IsVerified)
	assert.Equal(t, "business", resp.User.AccountType)
	assert.Equal(t, "Acme", resp.User.DisplayName)

	claims, err := l.tokens.ValidateSessionToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.AccountID)
	assert.True(t, claims.IsVerified)

	stored := l.accounts.get(account.ID)
	assert.True(t, stored.IsVerified)
	require.NotNil(t, stored.VerifiedAt)
	assert.Equal(t, l.clock.Now(), *stored.VerifiedAt)
	assert.Nil(t, stored.ActivationCode)

	// The code is consumed by the first successful login
	_, err = l.login.Login(ctx, models.AccountTypeBusiness, loginReq(account.Email, "Secret123!", code), nil)
	assert.ErrorIs(t, err, ErrInvalidActivationCode)
}

// gatedHasher holds every Verify call until parties callers have arrived
type gatedHasher struct {
	fakeHasher
	arrived sync.WaitGroup
}

func newGatedHasher(parties int) *gatedHasher {
	h := &gatedHasher{}
	h.arrived.Add(parties)
	return h
}

func (h *gatedHasher) Verify(plain, hash string) bool {
	h.arrived.Done()
	h.arrived.Wait()
	return h.fakeHasher.Verify(plain, hash)
}

func TestLoginActivationCodeIsSingleUseUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	l := newLifecycle(t)
	account := l.seed(models.AccountTypePersonal, "ada@example.com", models.AccountStatusPending)
	code := l.approve(t, account.ID)

	const attempts = 2
	login := NewLoginFlow(l.accounts, newGatedHasher(attempts), l.tokens, l.clock)

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = login.Login(ctx, models.AccountTypePersonal, loginReq(account.Email, "Secret123!", code), nil)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrInvalidActivationCode)
	}
	assert.Equal(t, 1, succeeded)

	stored := l.accounts.get(account.ID)
	assert.True(t, stored.IsVerified)
	assert.Nil(t, stored.ActivationCode)
}

func TestLoginActivationExpiryBoundary(t *testing.T) {
	ctx := context.Background()
	l := newLifecycle(t)

	early := l.seed(models.AccountTypePersonal, "early@example.com", models.AccountStatusPending)
	late := l.seed(models.AccountTypePersonal, "late@example.com", models.AccountStatusPending)
	earlyCode := l.approve(t, early.ID)
	lateCode := l.approve(t, late.ID)

	l.clock.Advance(utils.ActivationCodeTTL - time.Second)
	_, err := l.login.Login(ctx, models.AccountTypePersonal, loginReq(early.Email, "Secret123!", earlyCode), nil)
	require.NoError(t, err)

	l.clock.Advance(2 * time.Second)
	_, err = l.login.Login(ctx, models.AccountTypePersonal, loginReq(late.Email, "Secret123!", lateCode), nil)
	require.Error(t, err)
	assert.True(t, IsActivationCodeExpired(err))
	assert.True(t, IsUnauthorized(err))

	// Expired codes are checked before the password
	_, err = l.login.Login(ctx, models.AccountTypePersonal, loginReq(late.Email, "wrong-password", lateCode), nil)
	assert.ErrorIs(t, err, ErrActivationCodeExpired)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	l := newLifecycle(t)
	account := l.seed(models.AccountTypePersonal, "ada@example.com", models.AccountStatusPending)
	code := l.approve(t, account.ID)

	resp, err := l.login.Login(ctx, models.AccountTypePersonal, loginReq(account.Email, "Secret123!", code), nil)
	require.NoError(t, err)

	claims, err := l.tokens.ValidateSessionToken(ctx, resp.Token)
	require.NoError(t, err)

	require.NoError(t, l.login.Logout(ctx, claims.TokenID, claims.ExpiresAt, nil))

	_, err = l.tokens.ValidateSessionToken(ctx, resp.Token)
	assert.Error(t, err)
}
