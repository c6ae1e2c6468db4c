package businessflow

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/amirphl/social-admin/app/services"
	"github.com/amirphl/social-admin/models"
	"github.com/amirphl/social-admin/repository"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store unavailable")

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeHasher stores passwords with a visible prefix so tests stay fast
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (fakeHasher) Verify(plain, hash string) bool {
	return hash == "hashed:"+plain
}

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (n *recordingNotifier) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentEmail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (n *recordingNotifier) emails() []sentEmail {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentEmail(nil), n.sent...)
}

func (n *recordingNotifier) last(t *testing.T) sentEmail {
	t.Helper()
	emails := n.emails()
	require.NotEmpty(t, emails, "expected an email to be sent")
	return emails[len(emails)-1]
}

// serialTransactor runs units of work one at a time
type serialTransactor struct {
	mu sync.Mutex
}

func (t *serialTransactor) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	nextID   uint
	accounts map[uint]models.Account
	failWith error
}

var _ repository.AccountRepository = (*fakeAccountRepo)(nil)

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uint]models.Account)}
}

func (r *fakeAccountRepo) get(id uint) models.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounts[id]
}

func (r *fakeAccountRepo) put(a models.Account) *models.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	r.accounts[a.ID] = a
	return &a
}

func (r *fakeAccountRepo) update(id uint, fn func(a *models.Account)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.accounts[id]
	fn(&a)
	r.accounts[id] = a
}

func (r *fakeAccountRepo) matches(a models.Account, f models.AccountFilter) bool {
	if f.ID != nil && a.ID != *f.ID {
		return false
	}
	if f.UUID != nil && a.UUID != *f.UUID {
		return false
	}
	if f.Email != nil && a.Email != *f.Email {
		return false
	}
	if f.AccountType != nil && a.AccountType != *f.AccountType {
		return false
	}
	if f.AccountStatus != nil && a.AccountStatus != *f.AccountStatus {
		return false
	}
	if f.NIN != nil && (a.NIN == nil || *a.NIN != *f.NIN) {
		return false
	}
	if f.CACNumber != nil && (a.CACNumber == nil || *a.CACNumber != *f.CACNumber) {
		return false
	}
	if f.IsVerified != nil && a.IsVerified != *f.IsVerified {
		return false
	}
	return true
}

func (r *fakeAccountRepo) first(f models.AccountFilter) (*models.Account, error) {
	found, err := r.ByFilter(context.Background(), f, "", 1, 0)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}

func (r *fakeAccountRepo) ByID(ctx context.Context, id uint) (*models.Account, error) {
	return r.first(models.AccountFilter{ID: &id})
}

func (r *fakeAccountRepo) ByFilter(ctx context.Context, f models.AccountFilter, orderBy string, limit, offset int) ([]*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}

	var out []*models.Account
	for _, a := range r.accounts {
		if r.matches(a, f) {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAccountRepo) Save(ctx context.Context, a *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	for _, existing := range r.accounts {
		if existing.ID == a.ID {
			continue
		}
		if existing.Email == a.Email ||
			(a.NIN != nil && existing.NIN != nil && *a.NIN == *existing.NIN) ||
			(a.CACNumber != nil && existing.CACNumber != nil && *a.CACNumber == *existing.CACNumber) {
			return repository.ErrDuplicateKey
		}
	}
	if a.ID == 0 {
		r.nextID++
		a.ID = r.nextID
	}
	r.accounts[a.ID] = *a
	return nil
}

func (r *fakeAccountRepo) SaveBatch(ctx context.Context, accounts []*models.Account) error {
	for _, a := range accounts {
		if err := r.Save(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeAccountRepo) Count(ctx context.Context, f models.AccountFilter) (int64, error) {
	found, err := r.ByFilter(ctx, f, "", 0, 0)
	return int64(len(found)), err
}

func (r *fakeAccountRepo) Exists(ctx context.Context, f models.AccountFilter) (bool, error) {
	n, err := r.Count(ctx, f)
	return n > 0, err
}

func (r *fakeAccountRepo) ByUUID(ctx context.Context, id string) (*models.Account, error) {
	for _, a := range r.snapshot() {
		if a.UUID.String() == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) snapshot() []*models.Account {
	all, _ := r.ByFilter(context.Background(), models.AccountFilter{}, "", 0, 0)
	return all
}

func (r *fakeAccountRepo) ByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.first(models.AccountFilter{Email: &email})
}

func (r *fakeAccountRepo) ByEmailAndType(ctx context.Context, email string, t models.AccountType) (*models.Account, error) {
	return r.first(models.AccountFilter{Email: &email, AccountType: &t})
}

func (r *fakeAccountRepo) ByEmailAndStatus(ctx context.Context, email string, s models.AccountStatus) (*models.Account, error) {
	return r.first(models.AccountFilter{Email: &email, AccountStatus: &s})
}

func (r *fakeAccountRepo) ByNIN(ctx context.Context, nin string) (*models.Account, error) {
	return r.first(models.AccountFilter{NIN: &nin})
}

func (r *fakeAccountRepo) ByCACNumber(ctx context.Context, cac string) (*models.Account, error) {
	return r.first(models.AccountFilter{CACNumber: &cac})
}

func (r *fakeAccountRepo) ListPending(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	status := models.AccountStatusPending
	return r.ByFilter(ctx, models.AccountFilter{AccountStatus: &status}, "", limit, offset)
}

// conditional applies fn when the account exists and cond holds, reporting whether it did
func (r *fakeAccountRepo) conditional(id uint, cond func(a models.Account) bool, fn func(a *models.Account)) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return false, r.failWith
	}
	a, ok := r.accounts[id]
	if !ok || !cond(a) {
		return false, nil
	}
	fn(&a)
	r.accounts[id] = a
	return true, nil
}

func (r *fakeAccountRepo) Approve(ctx context.Context, id uint, code string, expires time.Time) (bool, error) {
	return r.conditional(id, func(a models.Account) bool {
		return a.AccountStatus == models.AccountStatusPending
	}, func(a *models.Account) {
		a.AccountStatus = models.AccountStatusApproved
		a.ActivationCode = &code
		a.ActivationExpires = &expires
	})
}

func (r *fakeAccountRepo) Reject(ctx context.Context, id uint) (bool, error) {
	return r.conditional(id, func(a models.Account) bool {
		return a.AccountStatus == models.AccountStatusPending
	}, func(a *models.Account) {
		a.AccountStatus = models.AccountStatusRejected
	})
}

func (r *fakeAccountRepo) MarkVerified(ctx context.Context, id uint, code string, at time.Time) (bool, error) {
	return r.conditional(id, func(a models.Account) bool {
		return !a.IsVerified && a.ActivationCode != nil && *a.ActivationCode == code
	}, func(a *models.Account) {
		a.IsVerified = true
		a.VerifiedAt = &at
		a.ActivationCode = nil
	})
}

func (r *fakeAccountRepo) SetActivationCode(ctx context.Context, id uint, code string, expires time.Time) error {
	_, err := r.conditional(id, func(a models.Account) bool {
		return a.AccountStatus == models.AccountStatusApproved
	}, func(a *models.Account) {
		a.ActivationCode = &code
		a.ActivationExpires = &expires
	})
	return err
}

func (r *fakeAccountRepo) SetResetCode(ctx context.Context, id uint, code string, expires time.Time) error {
	_, err := r.conditional(id, func(models.Account) bool { return true }, func(a *models.Account) {
		a.ResetCode = &code
		a.ResetExpires = &expires
	})
	return err
}

func (r *fakeAccountRepo) ResetPassword(ctx context.Context, id uint, code string, now time.Time, hash string) (bool, error) {
	return r.conditional(id, func(a models.Account) bool {
		return a.ResetCode != nil && *a.ResetCode == code && a.ResetExpires != nil && a.ResetExpires.After(now)
	}, func(a *models.Account) {
		a.PasswordHash = hash
		a.ResetCode = nil
		a.ResetExpires = nil
	})
}

func (r *fakeAccountRepo) UpdateBusinessProfile(ctx context.Context, id uint, u models.BusinessProfileUpdate) (bool, error) {
	r.mu.Lock()
	if u.CACNumber != nil {
		for _, other := range r.accounts {
			if other.ID != id && other.CACNumber != nil && *other.CACNumber == *u.CACNumber {
				r.mu.Unlock()
				return false, repository.ErrDuplicateKey
			}
		}
	}
	r.mu.Unlock()

	return r.conditional(id, func(a models.Account) bool {
		return a.AccountType == models.AccountTypeBusiness
	}, func(a *models.Account) {
		if u.BusinessName != nil {
			a.BusinessName = u.BusinessName
		}
		if u.BusinessType != nil {
			a.BusinessType = u.BusinessType
		}
		if u.CACNumber != nil {
			a.CACNumber = u.CACNumber
		}
		if u.BusinessLocation != nil {
			a.BusinessLocation = u.BusinessLocation
		}
		if u.BusinessPhone != nil {
			a.BusinessPhone = u.BusinessPhone
		}
	})
}

type fakeAdminLogRepo struct {
	mu      sync.Mutex
	entries []models.AdminLog
}

var _ repository.AdminLogRepository = (*fakeAdminLogRepo)(nil)

func (r *fakeAdminLogRepo) all() []models.AdminLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.AdminLog(nil), r.entries...)
}

func (r *fakeAdminLogRepo) ByID(ctx context.Context, id uint) (*models.AdminLog, error) {
	for _, e := range r.all() {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *fakeAdminLogRepo) ByFilter(ctx context.Context, f models.AdminLogFilter, orderBy string, limit, offset int) ([]*models.AdminLog, error) {
	var out []*models.AdminLog
	for _, e := range r.all() {
		if f.AdminID != nil && e.AdminID != *f.AdminID {
			continue
		}
		if f.ActionType != nil && e.ActionType != *f.ActionType {
			continue
		}
		if f.TargetAccountID != nil && (e.TargetAccountID == nil || *e.TargetAccountID != *f.TargetAccountID) {
			continue
		}
		e := e
		out = append(out, &e)
	}
	return out, nil
}

func (r *fakeAdminLogRepo) Save(ctx context.Context, e *models.AdminLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeAdminLogRepo) SaveBatch(ctx context.Context, entries []*models.AdminLog) error {
	for _, e := range entries {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeAdminLogRepo) Count(ctx context.Context, f models.AdminLogFilter) (int64, error) {
	out, err := r.ByFilter(ctx, f, "", 0, 0)
	return int64(len(out)), err
}

func (r *fakeAdminLogRepo) Exists(ctx context.Context, f models.AdminLogFilter) (bool, error) {
	n, err := r.Count(ctx, f)
	return n > 0, err
}

func (r *fakeAdminLogRepo) ListByAdmin(ctx context.Context, adminID uint, limit, offset int) ([]*models.AdminLog, error) {
	return r.ByFilter(ctx, models.AdminLogFilter{AdminID: &adminID}, "", limit, offset)
}

func (r *fakeAdminLogRepo) ListByTargetAccount(ctx context.Context, accountID uint, limit, offset int) ([]*models.AdminLog, error) {
	return r.ByFilter(ctx, models.AdminLogFilter{TargetAccountID: &accountID}, "", limit, offset)
}

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[uint]models.Admin
	logins map[uint]time.Time
}

var _ repository.AdminRepository = (*fakeAdminRepo)(nil)

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[uint]models.Admin), logins: make(map[uint]time.Time)}
}

func (r *fakeAdminRepo) ByID(ctx context.Context, id uint) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *fakeAdminRepo) Save(ctx context.Context, a *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.admins {
		if existing.Username == a.Username && existing.ID != a.ID {
			return repository.ErrDuplicateKey
		}
	}
	if a.ID == 0 {
		a.ID = uint(len(r.admins) + 1)
	}
	r.admins[a.ID] = *a
	return nil
}

func (r *fakeAdminRepo) ByUsername(ctx context.Context, username string) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Username == username {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (r *fakeAdminRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.admins)
}

func (r *fakeAdminRepo) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logins[id] = at
	return nil
}

// fakeCaptcha accepts one fixed challenge and angle
type fakeCaptcha struct {
	mu       sync.Mutex
	verified []string
}

func (c *fakeCaptcha) GenerateRotate(ctx context.Context) (*services.RotateChallenge, error) {
	return &services.RotateChallenge{ID: "challenge-1", MasterImageBase64: "master", ThumbImageBase64: "thumb"}, nil
}

func (c *fakeCaptcha) VerifyRotate(ctx context.Context, challengeID string, userAngle float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verified = append(c.verified, challengeID)
	return challengeID == "challenge-1" && userAngle == 90
}

func newTestTokenService(t *testing.T) services.TokenService {
	t.Helper()
	svc, err := services.NewTokenService(time.Hour, time.Hour, "test-issuer", "test-audience",
		false, "", "", "test-secret-key-for-jwt-signing-32-chars", services.NewMemoryTokenBlacklist())
	require.NoError(t, err)
	return svc
}

// lifecycle bundles every account flow over shared fakes
type lifecycle struct {
	clock    *fakeClock
	accounts *fakeAccountRepo
	logs     *fakeAdminLogRepo
	notifier *recordingNotifier
	tokens   services.TokenService

	signup   SignupFlow
	login    LoginFlow
	recovery AccountRecoveryFlow
	admin    AdminAccountFlow
	profile  BusinessProfileFlow
}

func newLifecycle(t *testing.T) *lifecycle {
	t.Helper()
	l := &lifecycle{
		clock:    newFakeClock(),
		accounts: newFakeAccountRepo(),
		logs:     &fakeAdminLogRepo{},
		notifier: &recordingNotifier{},
		tokens:   newTestTokenService(t),
	}
	tx := &serialTransactor{}
	ttls := DefaultCodeTTLs()

	l.signup = NewSignupFlow(l.accounts, tx, fakeHasher{}, l.notifier, l.clock)
	l.login = NewLoginFlow(l.accounts, fakeHasher{}, l.tokens, l.clock)
	l.recovery = NewAccountRecoveryFlow(l.accounts, fakeHasher{}, l.notifier, ttls, l.clock)
	l.admin = NewAdminAccountFlow(l.accounts, l.logs, tx, l.notifier, ttls, l.clock)
	l.profile = NewBusinessProfileFlow(l.accounts, tx)
	return l
}

// seed inserts an account directly, bypassing signup
func (l *lifecycle) seed(accountType models.AccountType, email string, status models.AccountStatus) *models.Account {
	a := models.Account{
		AccountType:   accountType,
		AccountStatus: status,
		Email:         strings.ToLower(email),
		PasswordHash:  "hashed:Secret123!",
		CreatedAt:     l.clock.Now(),
		UpdatedAt:     l.clock.Now(),
	}
	if accountType == models.AccountTypeBusiness {
		name := "Acme"
		a.BusinessName = &name
	} else {
		first, last := "Ada", "Obi"
		a.FirstName, a.LastName = &first, &last
	}
	return l.accounts.put(a)
}

func (l *lifecycle) activationCode(t *testing.T, id uint) string {
	t.Helper()
	a := l.accounts.get(id)
	require.NotNil(t, a.ActivationCode, "account %d has no activation code", id)
	return *a.ActivationCode
}

func (l *lifecycle) resetCode(t *testing.T, id uint) string {
	t.Helper()
	a := l.accounts.get(id)
	require.NotNil(t, a.ResetCode, "account %d has no reset code", id)
	return *a.ResetCode
}

// wrongCode returns a six digit code different from code
func wrongCode(code string) string {
	if code == "123456" {
		return "654321"
	}
	return "123456"
}
