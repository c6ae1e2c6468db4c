package utils

import (
	"time"
)

// Account lifecycle time constants
const (
	// ActivationCodeTTL is how long an activation code stays valid after issuance (48 hours)
	ActivationCodeTTL = 48 * time.Hour

	// ResetCodeTTL is how long a password reset code stays valid (1 hour)
	ResetCodeTTL = 1 * time.Hour

	// SessionTokenTTL is the lifetime of a user session token (30 days)
	SessionTokenTTL = 30 * 24 * time.Hour

	// AdminTokenTTL is the lifetime of an admin session token (24 hours)
	AdminTokenTTL = 24 * time.Hour

	// CodeLength is the number of digits in activation and reset codes
	CodeLength = 6
)

// Security constants
const (
	// BcryptCost is the default bcrypt work factor for account passwords
	BcryptCost = 12

	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400

	// RequestTimeout bounds a single handler's work
	RequestTimeout = 30 * time.Second
)
