// Package services provides external service integrations and technical concerns like notifications and tokens
package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/amirphl/social-admin/utils"
	"github.com/golang-jwt/jwt/v5"
)

// Token service error constants
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token has been revoked")
)

const (
	TokenTypeAccess = "access"
	TokenTypeAdmin  = "admin"
)

// TokenService handles JWT token generation and validation
type TokenService interface {
	GenerateSessionToken(ctx context.Context, subject SessionSubject) (*IssuedToken, error)
	ValidateSessionToken(ctx context.Context, token string) (*SessionClaims, error)
	GenerateAdminToken(ctx context.Context, adminID uint) (*IssuedToken, error)
	ValidateAdminToken(ctx context.Context, token string) (*AdminTokenClaims, error)
	RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// SessionSubject is the account data embedded into a session token
type SessionSubject struct {
	AccountID   uint
	Email       string
	IsVerified  bool
	AccountType string
}

// IssuedToken is a signed token together with its identity and lifetime
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// SessionClaims represents the claims in an account session token
type SessionClaims struct {
	AccountID   uint      `json:"user_id"`
	Email       string    `json:"email"`
	IsVerified  bool      `json:"is_verified"`
	AccountType string    `json:"account_type"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
	TokenID     string    `json:"jti"`
}

// AdminTokenClaims represents claims for admin JWTs
type AdminTokenClaims struct {
	AdminID   uint      `json:"admin_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	TokenType string    `json:"token_type"`
	TokenID   string    `json:"jti"`
}

// TokenServiceImpl implements TokenService
type TokenServiceImpl struct {
	sessionTokenTTL time.Duration
	adminTokenTTL   time.Duration
	signingMethod   jwt.SigningMethod
	privateKey      *rsa.PrivateKey
	publicKey       *rsa.PublicKey
	secretKey       []byte
	useRSAKeys      bool
	issuer          string
	audience        string
	blacklist       TokenBlacklist
	clock           utils.Clock
}

// NewTokenService creates a new token service. blacklist may be nil, in which case revocation is a no-op.
func NewTokenService(sessionTokenTTL, adminTokenTTL time.Duration, issuer, audience string, useRSAKeys bool, privateKeyPEM, publicKeyPEM, secretKey string, blacklist TokenBlacklist) (TokenService, error) {
	if sessionTokenTTL <= 0 {
		sessionTokenTTL = utils.SessionTokenTTL
	}
	if adminTokenTTL <= 0 {
		adminTokenTTL = utils.AdminTokenTTL
	}

	var privateKey *rsa.PrivateKey
	var publicKey *rsa.PublicKey
	var secretKeyBytes []byte
	var signingMethod jwt.SigningMethod

	if useRSAKeys {
		var err error
		privateKey, publicKey, err = parseRSAKeys(privateKeyPEM, publicKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA keys: %w", err)
		}
		signingMethod = jwt.SigningMethodRS256
	} else {
		if secretKey == "" {
			return nil, fmt.Errorf("secret key is required when not using RSA keys")
		}
		secretKeyBytes = []byte(secretKey)
		signingMethod = jwt.SigningMethodHS256
	}

	return &TokenServiceImpl{
		sessionTokenTTL: sessionTokenTTL,
		adminTokenTTL:   adminTokenTTL,
		signingMethod:   signingMethod,
		privateKey:      privateKey,
		publicKey:       publicKey,
		secretKey:       secretKeyBytes,
		useRSAKeys:      useRSAKeys,
		issuer:          issuer,
		audience:        audience,
		blacklist:       blacklist,
		clock:           utils.SystemClock{},
	}, nil
}

// parseRSAKeys parses RSA private and public keys from PEM format
func parseRSAKeys(privateKeyPEM, publicKeyPEM string) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	if privateKeyPEM == "" || publicKeyPEM == "" {
		return nil, nil, fmt.Errorf("both private and public keys are required")
	}

	privateKeyBlock, _ := pem.Decode([]byte(privateKeyPEM))
	if privateKeyBlock == nil {
		return nil, nil, fmt.Errorf("failed to decode private key")
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(privateKeyBlock.Bytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	publicKeyBlock, _ := pem.Decode([]byte(publicKeyPEM))
	if publicKeyBlock == nil {
		return nil, nil, fmt.Errorf("failed to decode public key")
	}

	publicKey, err := x509.ParsePKIXPublicKey(publicKeyBlock.Bytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	rsaPublicKey, ok := publicKey.(*rsa.PublicKey)
	if !ok {
		return nil, nil, fmt.Errorf("public key is not RSA")
	}

	return privateKey, rsaPublicKey, nil
}

// GenerateSessionToken issues the account session token returned by login
func (s *TokenServiceImpl) GenerateSessionToken(ctx context.Context, subject SessionSubject) (*IssuedToken, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.sessionTokenTTL)

	tokenID, err := generateTokenID()
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{
		"user_id":      subject.AccountID,
		"email":        subject.Email,
		"is_verified":  subject.IsVerified,
		"account_type": subject.AccountType,
		"token_type":   TokenTypeAccess,
		"jti":          tokenID,
		"iat":          now.Unix(),
		"exp":          expiresAt.Unix(),
		"iss":          s.issuer,
		"aud":          s.audience,
	}

	token, err := s.generateToken(claims)
	if err != nil {
		return nil, err
	}

	return &IssuedToken{Token: token, TokenID: tokenID, ExpiresAt: time.Unix(expiresAt.Unix(), 0).UTC()}, nil
}

// GenerateAdminToken issues an admin session token
func (s *TokenServiceImpl) GenerateAdminToken(ctx context.Context, adminID uint) (*IssuedToken, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.adminTokenTTL)

	tokenID, err := generateTokenID()
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{
		"admin_id":   adminID,
		"token_type": TokenTypeAdmin,
		"jti":        tokenID,
		"iat":        now.Unix(),
		"exp":        expiresAt.Unix(),
		"iss":        s.issuer,
		"aud":        s.audience,
	}

	token, err := s.generateToken(claims)
	if err != nil {
		return nil, err
	}

	return &IssuedToken{Token: token, TokenID: tokenID, ExpiresAt: time.Unix(expiresAt.Unix(), 0).UTC()}, nil
}

// ValidateSessionToken validates an account session token and returns its claims
func (s *TokenServiceImpl) ValidateSessionToken(ctx context.Context, token string) (*SessionClaims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	tokenType, _ := claims["token_type"].(string)
	if tokenType != TokenTypeAccess {
		return nil, ErrTokenInvalid
	}

	accountID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, ErrTokenInvalid
	}
	isVerified, _ := claims["is_verified"].(bool)
	accountType, ok := claims["account_type"].(string)
	if !ok {
		return nil, ErrTokenInvalid
	}

	common, err := s.commonClaims(ctx, claims)
	if err != nil {
		return nil, err
	}

	return &SessionClaims{
		AccountID:   uint(accountID),
		Email:       email,
		IsVerified:  isVerified,
		AccountType: accountType,
		TokenType:   tokenType,
		TokenID:     common.TokenID,
		IssuedAt:    common.IssuedAt,
		ExpiresAt:   common.ExpiresAt,
	}, nil
}

// ValidateAdminToken validates an admin JWT and returns admin-specific claims
func (s *TokenServiceImpl) ValidateAdminToken(ctx context.Context, token string) (*AdminTokenClaims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	tokenType, _ := claims["token_type"].(string)
	if tokenType != TokenTypeAdmin {
		return nil, ErrTokenInvalid
	}

	adminID, ok := claims["admin_id"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}

	common, err := s.commonClaims(ctx, claims)
	if err != nil {
		return nil, err
	}

	return &AdminTokenClaims{
		AdminID:   uint(adminID),
		TokenType: tokenType,
		TokenID:   common.TokenID,
		IssuedAt:  common.IssuedAt,
		ExpiresAt: common.ExpiresAt,
	}, nil
}

// RevokeToken blacklists a token id until the token would have expired anyway
func (s *TokenServiceImpl) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s.blacklist == nil {
		return nil
	}
	if tokenID == "" {
		return ErrTokenInvalid
	}
	return s.blacklist.Add(ctx, tokenID, expiresAt)
}

type registeredClaims struct {
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (s *TokenServiceImpl) commonClaims(ctx context.Context, claims jwt.MapClaims) (*registeredClaims, error) {
	tokenID, ok := claims["jti"].(string)
	if !ok || tokenID == "" {
		return nil, ErrTokenInvalid
	}
	issuedAt, ok := claims["iat"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}
	expiresAt, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}

	exp := time.Unix(int64(expiresAt), 0).UTC()
	if s.clock.Now().After(exp) {
		return nil, ErrTokenExpired
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsRevoked(ctx, tokenID)
		if err != nil {
			// Blacklist outages do not reject otherwise valid tokens.
			log.Printf("token blacklist lookup failed for %s: %v", tokenID, err)
		} else if revoked {
			return nil, ErrTokenRevoked
		}
	}

	return &registeredClaims{
		TokenID:   tokenID,
		IssuedAt:  time.Unix(int64(issuedAt), 0).UTC(),
		ExpiresAt: exp,
	}, nil
}

func (s *TokenServiceImpl) parse(token string) (jwt.MapClaims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if s.useRSAKeys {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.publicKey, nil
		}
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsedToken.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// generateToken creates a signed JWT token
func (s *TokenServiceImpl) generateToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(s.signingMethod, claims)

	var key any = s.secretKey
	if s.useRSAKeys {
		key = s.privateKey
	}

	signedString, err := token.SignedString(key)
	if err != nil {
		return "", err
	}

	return signedString, nil
}

// generateTokenID generates a unique token ID
func generateTokenID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", bytes), nil
}
