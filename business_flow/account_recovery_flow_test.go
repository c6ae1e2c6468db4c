package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/models"
	"github.com/amirphl/social-admin/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForgotPasswordDoesNotRevealAccounts(t *testing.T) {
	ctx := context.Background()
	l := newLifecycle(t)

	approved := l.seed(models.AccountTypePersonal, "approved@example.com", models.AccountStatusApproved)
	pending := l.seed(models.AccountTypePersonal, "pending@example.com", models.AccountStatusPending)

	emails := []string{approved.Email, pending.Email, "nobody@example.com"}
	var messages []string
	for _, email := range emails {
		resp, err := l.recovery.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Email: email}, nil)
		require.NoError(t, err, email)
		messages = append(messages, resp.Message)
	}
	for _, m := range messages {
		assert.Equal(t, msgResetCodeSent, m)
	}

	sent := l.notifier.emails()
	require.Len(t, sent, 1)
	assert.Equal(t, approved.Email, sent[0].To)
	assert.Equal(t, subjectPasswordResetCode, sent[0].Subject)
	assert.Contains(t, sent[0].Body, l.resetCode(t, approved.ID))
	assert.Nil(t, l.accounts.get(pending.ID).ResetCode)
}

func TestResetPasswordFlow(t *testing.T) {
	ctx := context.Background()
	l := newLifecycle(t)
	account := l.seed(models.AccountTypePersonal, "ada@example.com", models.AccountStatusApproved)

	_, err := l.recovery.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Email: account.Email}, nil)
	require.NoError(t, err)
	code := l.resetCode(t, account.ID)

	t.Run("ConfirmDoesNotConsume", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			resp, err := l.recovery.ConfirmResetCode(ctx, &dto.ConfirmResetRequest{Email: account.Email, ResetKey: code}, nil)
			require.NoError(t, err)
			assert.Equal(t, msgResetCodeVerified, resp.Message)
		}
	})

	t.Run("WrongCode", func(t *testing.T) {
		_, err := l.recovery.ConfirmResetCode(ctx, &dto.ConfirmResetRequest{Email: account.Email, ResetKey: wrongCode(code)}, nil)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.True(t, IsInvalidOrExpiredResetCode(err))
	})

	t.Run("MismatchedPasswords", func(t *testing.T) {
		_, err := l.recovery.ResetPassword(ctx, &dto.ResetPasswordRequest{
			Email: account.Email, ResetKey: code, Password: "NewSecret1!", Confirm: "NewSecret2!",
		}, nil)
		assert.ErrorIs(t, err, ErrPasswordsDoNotMatch)
		assert.Equal(t, "hashed:Secret123!", l.accounts.get(account.ID).PasswordHash)
	})

	t.Run("ResetIsSingleUse", func(t *testing.T) {
		req := &dto.ResetPasswordRequest{Email: account.Email, ResetKey: code, Password: "NewSecret1!", Confirm: "NewSecret1!"}

		resp, err := l.recovery.ResetPassword(ctx, req, nil)
		require.NoError(t, err)
		assert.Equal(t, msgPasswordReset, resp.Message)

		stored := l.accounts.get(account.ID)
		assert.Equal(t, "hashed:NewSecret1!", stored.PasswordHash)
		assert.Nil(t, stored.ResetCode)
		assert.Nil(t, stored.ResetExpires)

		_, err = l.recovery.ResetPassword(ctx, req, nil)
		assert.ErrorIs(t, err, ErrInvalidOrExpiredResetCode)
		_, err = l.recovery.ConfirmResetCode(ctx, &dto.ConfirmResetRequest{Email: account.Email, ResetKey: code}, nil)
		assert.ErrorIs(t, err, ErrInvalidOrExpiredResetCode)
	})
}

func TestResetCodeExpiryBoundary(t *testing.T) {
	ctx := context.Background()
	l := newLifecycle(t)
	account := l.seed(models.AccountTypeBusiness, "hello@acme.ng", models.AccountStatusApproved)

	_, err := l.recovery.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Email: account.Email}, nil)
	require.NoError(t, err)
	code := l.resetCode(t, account.ID)

	l.clock.Advance(utils.ResetCodeTTL - time.Second)
	_, err = l.recovery.ConfirmResetCode(ctx, &dto.ConfirmResetRequest{Email: account.Email, ResetKey: code}, nil)
	require.NoError(t, err)

	// reset_expires itself is already outside the window
	l.clock.Advance(time.Second)
	_, err = l.recovery.ConfirmResetCode(ctx, &dto.ConfirmResetRequest{Email: account.Email, ResetKey: code}, nil)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredResetCode)

	_, err = l.recovery.ResetPassword(ctx, &dto.ResetPasswordRequest{
		Email: account.Email, ResetKey: code, Password: "NewSecret1!", Confirm: "NewSecret1!",
	}, nil)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredResetCode)
	assert.Equal(t, "hashed:Secret123!", l.accounts.get(account.ID).PasswordHash)
}

func TestForgotPasswordReplacesEarlierCode(t *testing.T) {
	ctx := context.Background()
	l := newLifecycle(t)
	account := l.seed(models.AccountTypePersonal, "ada@example.com", models.AccountStatusApproved)

	var first string
	for {
		_, err := l.recovery.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Email: account.Email}, nil)
		require.NoError(t, err)
		if first == "" {
			first = l.resetCode(t, account.ID)
			continue
		}
		if l.resetCode(t, account.ID) != first {
			break
		}
	}

	_, err := l.recovery.ConfirmResetCode(ctx, &dto.ConfirmResetRequest{Email: account.Email, ResetKey: first}, nil)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredResetCode)
}

func TestResendActivation(t *testing.T) {
	ctx := context.Background()
	l := newLifecycle(t)

	t.Run("OnlyApprovedAccounts", func(t *testing.T) {
		pending := l.seed(models.AccountTypePersonal, "pending@example.com", models.AccountStatusPending)
		for _, email := range []string{pending.Email, "nobody@example.com"} {
			_, err := l.recovery.ResendActivation(ctx, &dto.ResendActivationRequest{Email: email}, nil)
			require.Error(t, err)
			assert.True(t, IsNotFound(err))
			assert.ErrorIs(t, err, ErrEmailNotFoundOrNotApproved)
		}
	})

	t.Run("NewCodeRestoresLoginAfterVerification", func(t *testing.T) {
		account := l.seed(models.AccountTypePersonal, "ada@example.com", models.AccountStatusPending)
		code := l.approve(t, account.ID)

		_, err := l.login.Login(ctx, models.AccountTypePersonal, loginReq(account.Email, "Secret123!", code), nil)
		require.NoError(t, err)

		resp, err := l.recovery.ResendActivation(ctx, &dto.ResendActivationRequest{Email: account.Email}, nil)
		require.NoError(t, err)
		assert.Equal(t, msgNewActivationCodeSent, resp.Message)

		fresh := l.activationCode(t, account.ID)
		email := l.notifier.last(t)
		assert.Equal(t, subjectNewActivationCode, email.Subject)
		assert.Contains(t, email.Body, fresh)

		stored := l.accounts.get(account.ID)
		require.NotNil(t, stored.ActivationExpires)
		assert.Equal(t, l.clock.Now().Add(utils.ActivationCodeTTL), *stored.ActivationExpires)

		login, err := l.login.Login(ctx, models.AccountTypePersonal, loginReq(account.Email, "Secret123!", fresh), nil)
		require.NoError(t, err)
		assert.True(t, login.User.IsVerified)
	})
}
