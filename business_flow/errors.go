package businessflow

import (
	"errors"
	"fmt"
)

// ErrorKind classifies business errors so the transport layer can map them deterministically
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Business flow error constants
var (
	// Registration
	ErrAllFieldsRequired      = errors.New("required fields missing")
	ErrInvalidAccountType     = errors.New("invalid account type")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrNINAlreadyRegistered   = errors.New("nin already registered")
	ErrCACAlreadyRegistered   = errors.New("cac number already registered")

	// Login
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountPending        = errors.New("account pending review")
	ErrAccountRejected       = errors.New("account rejected")
	ErrInvalidActivationCode = errors.New("invalid activation code")
	ErrActivationCodeExpired = errors.New("activation code expired")

	// Admin review
	ErrAccountNotFoundOrProcessed = errors.New("account not found or already processed")

	// Password reset and activation resend
	ErrPasswordsDoNotMatch        = errors.New("passwords do not match")
	ErrInvalidOrExpiredResetCode  = errors.New("invalid or expired reset code")
	ErrEmailNotFoundOrNotApproved = errors.New("email not found or account not approved")

	// Business profile
	ErrBusinessProfileNotFound = errors.New("business profile not found")
	ErrBusinessAccountNotFound = errors.New("business account not found")
	ErrNoFieldsToUpdate        = errors.New("no fields to update")

	// Admin authentication
	ErrAdminNotFound       = errors.New("admin not found")
	ErrAdminInactive       = errors.New("admin is inactive")
	ErrIncorrectPassword   = errors.New("incorrect password")
	ErrInvalidCaptcha      = errors.New("invalid captcha")
	ErrCaptchaNotAvailable = errors.New("captcha not available")
)

type errorSpec struct {
	kind    ErrorKind
	message string
}

// errorSpecs holds the kind and client-facing message of each sentinel
var errorSpecs = map[error]errorSpec{
	ErrAllFieldsRequired:          {KindValidation, "All fields are required"},
	ErrInvalidAccountType:         {KindValidation, "Invalid account type"},
	ErrPasswordsDoNotMatch:        {KindValidation, "Passwords do not match"},
	ErrInvalidOrExpiredResetCode:  {KindValidation, "Invalid or expired reset code"},
	ErrNoFieldsToUpdate:           {KindValidation, "At least one field must be provided for update"},
	ErrEmailAlreadyRegistered:     {KindConflict, "Email already registered"},
	ErrNINAlreadyRegistered:       {KindConflict, "NIN number already registered"},
	ErrCACAlreadyRegistered:       {KindConflict, "Business registration number already registered"},
	ErrInvalidCredentials:         {KindUnauthorized, "Invalid email or password"},
	ErrAccountPending:             {KindUnauthorized, "Account is still under review. Please wait for approval."},
	ErrAccountRejected:            {KindUnauthorized, "Account registration was rejected. Please contact support."},
	ErrInvalidActivationCode:      {KindUnauthorized, "Invalid activation code"},
	ErrActivationCodeExpired:      {KindUnauthorized, "Activation code has expired. Please request a new activation code."},
	ErrAdminNotFound:              {KindUnauthorized, "Invalid username or password"},
	ErrAdminInactive:              {KindUnauthorized, "Admin account is inactive"},
	ErrIncorrectPassword:          {KindUnauthorized, "Invalid username or password"},
	ErrInvalidCaptcha:             {KindUnauthorized, "Captcha validation failed"},
	ErrAccountNotFoundOrProcessed: {KindNotFound, "User not found or already processed"},
	ErrEmailNotFoundOrNotApproved: {KindNotFound, "Email not found or account not approved"},
	ErrBusinessProfileNotFound:    {KindNotFound, "Business profile not found"},
	ErrBusinessAccountNotFound:    {KindNotFound, "Business account not found"},
}

// kindOf returns the kind of the first known sentinel wrapped by err
func kindOf(err error) ErrorKind {
	for sentinel, spec := range errorSpecs {
		if errors.Is(err, sentinel) {
			return spec.kind
		}
	}
	return KindInternal
}

type BusinessError struct {
	Kind    ErrorKind
	Code    string
	Message string
	// Status is the lifecycle discriminator exposed for pending and rejected logins only
	Status string
	Err    error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError builds a business error whose kind follows the wrapped sentinel.
// Errors that wrap no known sentinel are internal.
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Kind:    kindOf(err),
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// newKnownError builds a business error carrying the sentinel's client message
func newKnownError(code string, sentinel error) *BusinessError {
	message := "Internal server error"
	if spec, ok := errorSpecs[sentinel]; ok {
		message = spec.message
	}
	return NewBusinessError(code, message, sentinel)
}

func withStatus(be *BusinessError, status string) *BusinessError {
	be.Status = status
	return be
}

// KindOf reports the kind of a business error, or KindInternal for anything else
func KindOf(err error) ErrorKind {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}

func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}

func IsUnauthorized(err error) bool {
	return KindOf(err) == KindUnauthorized
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsInternal(err error) bool {
	return KindOf(err) == KindInternal
}

func IsEmailAlreadyRegistered(err error) bool {
	return errors.Is(err, ErrEmailAlreadyRegistered)
}

func IsAccountPending(err error) bool {
	return errors.Is(err, ErrAccountPending)
}

func IsAccountRejected(err error) bool {
	return errors.Is(err, ErrAccountRejected)
}

func IsInvalidActivationCode(err error) bool {
	return errors.Is(err, ErrInvalidActivationCode)
}

func IsActivationCodeExpired(err error) bool {
	return errors.Is(err, ErrActivationCodeExpired)
}

func IsAccountNotFoundOrProcessed(err error) bool {
	return errors.Is(err, ErrAccountNotFoundOrProcessed)
}

func IsInvalidOrExpiredResetCode(err error) bool {
	return errors.Is(err, ErrInvalidOrExpiredResetCode)
}

func IsInvalidCaptcha(err error) bool {
	return errors.Is(err, ErrInvalidCaptcha)
}
