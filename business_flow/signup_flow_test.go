package businessflow

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/models"
	"github.com/amirphl/social-admin/utils"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func personalSignup(email, nin string) *dto.PersonalSignupRequest {
	return &dto.PersonalSignupRequest{
		FirstName: "Ada",
		LastName:  "Obi",
		Gender:    "female",
		Phone:     "+2348012345678",
		NIN:       nin,
		Email:     email,
		Password:  "Secret123!",
		Address:   "12 Marina Road, Lagos",
	}
}

func businessSignup(email string, cac *string) *dto.BusinessSignupRequest {
	return &dto.BusinessSignupRequest{
		BusinessPhone:    "+2348012345678",
		BusinessEmail:    email,
		BusinessPassword: "Secret123!",
		BusinessName:     "Acme Foods",
		BusinessType:     "restaurant",
		CACNumber:        cac,
		BusinessLocation: "Lagos",
	}
}

func TestSignupPersonal(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesPendingAccountAndNotifies", func(t *testing.T) {
		l := newLifecycle(t)
		before := testutil.ToFloat64(accountSignupsTotal.WithLabelValues("personal"))

		resp, err := l.signup.SignupPersonal(ctx, personalSignup("Ada@Example.com ", "12345678901"), nil)
		require.NoError(t, err)

		assert.Equal(t, "under_review", resp.Status)
		assert.Equal(t, "personal", resp.AccountType)
		assert.True(t, resp.EmailSent)
		assert.Equal(t, msgPersonalSignupSubmitted, resp.Message)
		assert.NotEmpty(t, resp.UUID)
		assert.Nil(t, resp.BusinessName)

		stored := l.accounts.get(resp.UserID)
		assert.Equal(t, models.AccountStatusPending, stored.AccountStatus)
		assert.Equal(t, "ada@example.com", stored.Email)
		assert.Equal(t, "hashed:Secret123!", stored.PasswordHash)
		assert.False(t, stored.IsVerified)
		assert.Nil(t, stored.ActivationCode)
		assert.Nil(t, stored.ResetCode)

		email := l.notifier.last(t)
		assert.Equal(t, "ada@example.com", email.To)
		assert.Equal(t, subjectUnderReview, email.Subject)
		assert.Contains(t, email.Body, "Ada Obi")

		assert.Equal(t, before+1, testutil.ToFloat64(accountSignupsTotal.WithLabelValues("personal")))
	})

	t.Run("MissingFieldIsValidation", func(t *testing.T) {
		l := newLifecycle(t)
		req := personalSignup("ada@example.com", "12345678901")
		req.Address = "   "

		_, err := l.signup.SignupPersonal(ctx, req, nil)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.ErrorIs(t, err, ErrAllFieldsRequired)
		assert.Empty(t, l.notifier.emails())
	})

	t.Run("DuplicateEmailAcrossTypesIsConflict", func(t *testing.T) {
		l := newLifecycle(t)
		l.seed(models.AccountTypeBusiness, "ada@example.com", models.AccountStatusApproved)

		_, err := l.signup.SignupPersonal(ctx, personalSignup("ADA@example.com", "12345678901"), nil)
		require.Error(t, err)
		assert.True(t, IsConflict(err))
		assert.True(t, IsEmailAlreadyRegistered(err))
	})

	t.Run("DuplicateNINIsConflict", func(t *testing.T) {
		l := newLifecycle(t)
		_, err := l.signup.SignupPersonal(ctx, personalSignup("first@example.com", "12345678901"), nil)
		require.NoError(t, err)

		_, err = l.signup.SignupPersonal(ctx, personalSignup("second@example.com", "12345678901"), nil)
		require.Error(t, err)
		assert.True(t, IsConflict(err))
		assert.ErrorIs(t, err, ErrNINAlreadyRegistered)
	})

	t.Run("EmailFailureDoesNotUndoSignup", func(t *testing.T) {
		l := newLifecycle(t)
		l.notifier.err = fmt.Errorf("smtp down")

		resp, err := l.signup.SignupPersonal(ctx, personalSignup("ada@example.com", "12345678901"), nil)
		require.NoError(t, err)
		assert.False(t, resp.EmailSent)
		assert.Equal(t, models.AccountStatusPending, l.accounts.get(resp.UserID).AccountStatus)
	})

	t.Run("StoreFailureIsInternal", func(t *testing.T) {
		l := newLifecycle(t)
		l.accounts.failWith = errStoreDown

		_, err := l.signup.SignupPersonal(ctx, personalSignup("ada@example.com", "12345678901"), nil)
		require.Error(t, err)
		assert.True(t, IsInternal(err))
		assert.ErrorIs(t, err, errStoreDown)
	})
}

func TestSignupBusiness(t *testing.T) {
	ctx := context.Background()

	t.Run("WithoutCACNumber", func(t *testing.T) {
		l := newLifecycle(t)

		resp, err := l.signup.SignupBusiness(ctx, businessSignup("hello@acme.ng", nil), nil)
		require.NoError(t, err)
		assert.Equal(t, "business", resp.AccountType)
		require.NotNil(t, resp.BusinessName)
		assert.Equal(t, "Acme Foods", *resp.BusinessName)
		assert.Equal(t, msgBusinessSignupSubmitted, resp.Message)
		assert.Nil(t, l.accounts.get(resp.UserID).CACNumber)

		// A second business without a CAC number is fine
		_, err = l.signup.SignupBusiness(ctx, businessSignup("other@acme.ng", utils.ToPtr("  ")), nil)
		require.NoError(t, err)
	})

	t.Run("DuplicateCACNumberIsConflict", func(t *testing.T) {
		l := newLifecycle(t)
		_, err := l.signup.SignupBusiness(ctx, businessSignup("hello@acme.ng", utils.ToPtr("RC123456")), nil)
		require.NoError(t, err)

		_, err = l.signup.SignupBusiness(ctx, businessSignup("other@acme.ng", utils.ToPtr("RC123456")), nil)
		require.Error(t, err)
		assert.True(t, IsConflict(err))
		assert.ErrorIs(t, err, ErrCACAlreadyRegistered)
	})

	t.Run("MissingFieldIsValidation", func(t *testing.T) {
		l := newLifecycle(t)
		req := businessSignup("hello@acme.ng", nil)
		req.BusinessType = ""

		_, err := l.signup.SignupBusiness(ctx, req, nil)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})
}

func TestSignupConcurrentDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	l := newLifecycle(t)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := l.signup.SignupPersonal(ctx, personalSignup("race@example.com", fmt.Sprintf("9000000000%d", i)), nil)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if IsEmailAlreadyRegistered(err) {
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
	count, err := l.accounts.Count(ctx, models.AccountFilter{Email: utils.ToPtr("race@example.com")})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
