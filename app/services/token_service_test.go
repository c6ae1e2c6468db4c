// Package services provides external service integrations and technical concerns like notifications and tokens
package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-32-chars"

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}

// createTestTokenService creates a token service for testing with symmetric key
func createTestTokenService(t *testing.T) (*TokenServiceImpl, *MemoryTokenBlacklist) {
	t.Helper()
	blacklist := NewMemoryTokenBlacklist()
	svc, err := NewTokenService(
		time.Hour,
		30*time.Minute,
		"test-issuer",
		"test-audience",
		false, // useRSAKeys
		"",    // privateKeyPEM
		"",    // publicKeyPEM
		testSecret,
		blacklist,
	)
	require.NoError(t, err)
	return svc.(*TokenServiceImpl), blacklist
}

func rsaKeyPair(t *testing.T) (string, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	priv := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pub := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	return string(priv), string(pub)
}

func TestNewTokenService(t *testing.T) {
	priv, pub := rsaKeyPair(t)

	tests := []struct {
		name        string
		useRSAKeys  bool
		privateKey  string
		publicKey   string
		secretKey   string
		expectError bool
	}{
		{name: "valid symmetric key configuration", secretKey: testSecret},
		{name: "missing secret key", expectError: true},
		{name: "valid RSA configuration", useRSAKeys: true, privateKey: priv, publicKey: pub},
		{name: "RSA without public key", useRSAKeys: true, privateKey: priv, expectError: true},
		{name: "garbage RSA keys", useRSAKeys: true, privateKey: "nope", publicKey: "nope", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := NewTokenService(time.Hour, time.Hour, "iss", "aud", tt.useRSAKeys, tt.privateKey, tt.publicKey, tt.secretKey, nil)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, service)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, service)
			}
		})
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	service, _ := createTestTokenService(t)

	issued, err := service.GenerateSessionToken(ctx, SessionSubject{
		AccountID:   42,
		Email:       "ada@example.com",
		IsVerified:  true,
		AccountType: "personal",
	})
	require.NoError(t, err)
	assert.Contains(t, issued.Token, "eyJ")
	assert.NotEmpty(t, issued.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 2*time.Second)

	claims, err := service.ValidateSessionToken(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AccountID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.True(t, claims.IsVerified)
	assert.Equal(t, "personal", claims.AccountType)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, issued.TokenID, claims.TokenID)
	assert.Equal(t, issued.ExpiresAt, claims.ExpiresAt)
}

func TestAdminTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	priv, pub := rsaKeyPair(t)
	svc, err := NewTokenService(time.Hour, 30*time.Minute, "iss", "aud", true, priv, pub, "", nil)
	require.NoError(t, err)

	issued, err := svc.GenerateAdminToken(ctx, 7)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), issued.ExpiresAt, 2*time.Second)

	claims, err := svc.ValidateAdminToken(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.AdminID)
	assert.Equal(t, TokenTypeAdmin, claims.TokenType)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	ctx := context.Background()
	service, _ := createTestTokenService(t)

	session, err := service.GenerateSessionToken(ctx, SessionSubject{AccountID: 1, Email: "a@b.co", AccountType: "business"})
	require.NoError(t, err)
	admin, err := service.GenerateAdminToken(ctx, 1)
	require.NoError(t, err)

	_, err = service.ValidateAdminToken(ctx, session.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = service.ValidateSessionToken(ctx, admin.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenValidationEdgeCases(t *testing.T) {
	ctx := context.Background()
	service, _ := createTestTokenService(t)

	other, err := NewTokenService(time.Hour, time.Hour, "iss", "aud", false, "", "", "another-secret-key-for-signing-tokens", nil)
	require.NoError(t, err)
	foreign, err := other.GenerateSessionToken(ctx, SessionSubject{AccountID: 1, Email: "a@b.co", AccountType: "personal"})
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":             "",
		"not a jwt":         "invalid.token.format",
		"bad signature":     "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature",
		"foreign signature": foreign.Token,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := service.ValidateSessionToken(ctx, token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestTokenExpiration(t *testing.T) {
	ctx := context.Background()
	service, _ := createTestTokenService(t)
	clock := &stepClock{now: time.Now().UTC()}
	service.clock = clock

	issued, err := service.GenerateSessionToken(ctx, SessionSubject{AccountID: 1, Email: "a@b.co", AccountType: "personal"})
	require.NoError(t, err)

	clock.now = clock.now.Add(59 * time.Minute)
	_, err = service.ValidateSessionToken(ctx, issued.Token)
	require.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Minute)
	_, err = service.ValidateSessionToken(ctx, issued.Token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRevokeToken(t *testing.T) {
	ctx := context.Background()
	service, blacklist := createTestTokenService(t)

	issued, err := service.GenerateSessionToken(ctx, SessionSubject{AccountID: 1, Email: "a@b.co", AccountType: "personal"})
	require.NoError(t, err)
	untouched, err := service.GenerateSessionToken(ctx, SessionSubject{AccountID: 1, Email: "a@b.co", AccountType: "personal"})
	require.NoError(t, err)

	require.NoError(t, service.RevokeToken(ctx, issued.TokenID, issued.ExpiresAt))

	revoked, err := blacklist.IsRevoked(ctx, issued.TokenID)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = service.ValidateSessionToken(ctx, issued.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	_, err = service.ValidateSessionToken(ctx, untouched.Token)
	assert.NoError(t, err)

	assert.ErrorIs(t, service.RevokeToken(ctx, "", issued.ExpiresAt), ErrTokenInvalid)
}

func TestMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	clock := &stepClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	blacklist := NewMemoryTokenBlacklist()
	blacklist.clock = clock

	require.NoError(t, blacklist.Add(ctx, "past", clock.now.Add(-time.Second)))
	require.NoError(t, blacklist.Add(ctx, "live", clock.now.Add(time.Minute)))

	revoked, err := blacklist.IsRevoked(ctx, "past")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = blacklist.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	clock.now = clock.now.Add(time.Minute)
	revoked, err = blacklist.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestConcurrentTokenGeneration(t *testing.T) {
	ctx := context.Background()
	service, _ := createTestTokenService(t)

	const workers = 20
	ids := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			issued, err := service.GenerateSessionToken(ctx, SessionSubject{AccountID: id, Email: "a@b.co", AccountType: "personal"})
			if assert.NoError(t, err) {
				ids <- issued.TokenID
			}
		}(uint(i + 1))
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate token id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}
