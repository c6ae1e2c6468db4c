package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/amirphl/social-admin/models"
	"github.com/amirphl/social-admin/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plain password of every fixture account and admin
const TestPassword = "TestPass123!"

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

func hashTestPassword() (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func randomDigits(n int) string {
	digits := make([]byte, n)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return string(digits)
}

// CreatePendingAccount inserts an account of the given type awaiting review
func (tf *TestFixtures) CreatePendingAccount(accountType models.AccountType) (*models.Account, error) {
	hash, err := hashTestPassword()
	if err != nil {
		return nil, err
	}

	suffix := randomDigits(9)
	now := utils.UTCNow()
	account := &models.Account{
		UUID:          uuid.New(),
		AccountType:   accountType,
		AccountStatus: models.AccountStatusPending,
		Email:         fmt.Sprintf("%s.%s@example.com", accountType, suffix),
		PasswordHash:  hash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	switch accountType {
	case models.AccountTypePersonal:
		account.FirstName = utils.ToPtr("Ada")
		account.LastName = utils.ToPtr("Obi")
		account.Gender = utils.ToPtr("female")
		account.Phone = utils.ToPtr("+234" + randomDigits(10))
		account.Address = utils.ToPtr("12 Marina Road, Lagos")
		account.NIN = utils.ToPtr(randomDigits(11))
	case models.AccountTypeBusiness:
		account.BusinessName = utils.ToPtr("Acme Ventures " + suffix)
		account.BusinessType = utils.ToPtr("retail")
		account.BusinessLocation = utils.ToPtr("Abuja")
		account.BusinessPhone = utils.ToPtr("+234" + randomDigits(10))
		account.CACNumber = utils.ToPtr("RC" + randomDigits(7))
	}

	if err := tf.DB.DB.Create(account).Error; err != nil {
		return nil, fmt.Errorf("failed to create test account: %w", err)
	}
	return account, nil
}

// CreateApprovedAccount inserts an approved account holding the given activation code
func (tf *TestFixtures) CreateApprovedAccount(accountType models.AccountType, code string, expiresIn time.Duration) (*models.Account, error) {
	account, err := tf.CreatePendingAccount(accountType)
	if err != nil {
		return nil, err
	}

	expires := utils.UTCNow().Add(expiresIn)
	err = tf.DB.DB.Model(&models.Account{}).Where("id = ?", account.ID).Updates(map[string]any{
		"account_status":     models.AccountStatusApproved,
		"activation_code":    code,
		"activation_expires": expires,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to approve test account: %w", err)
	}

	account.AccountStatus = models.AccountStatusApproved
	account.ActivationCode = &code
	account.ActivationExpires = &expires
	return account, nil
}

// CreateAdmin inserts an active admin with TestPassword
func (tf *TestFixtures) CreateAdmin(username string) (*models.Admin, error) {
	hash, err := hashTestPassword()
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		UUID:         uuid.New(),
		Username:     username,
		PasswordHash: hash,
		IsActive:     utils.ToPtr(true),
	}
	if err := tf.DB.DB.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create test admin: %w", err)
	}
	return admin, nil
}
