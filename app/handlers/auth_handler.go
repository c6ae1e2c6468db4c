package handlers

import (
	"time"

	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/app/middleware"
	businessflow "github.com/amirphl/social-admin/business_flow"
	"github.com/amirphl/social-admin/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// AuthHandlerInterface defines the contract for authentication handlers
type AuthHandlerInterface interface {
	SignupPersonal(c fiber.Ctx) error
	SignupBusiness(c fiber.Ctx) error
	LoginPersonal(c fiber.Ctx) error
	LoginBusiness(c fiber.Ctx) error
	ForgotPassword(c fiber.Ctx) error
	ConfirmReset(c fiber.Ctx) error
	ResetPassword(c fiber.Ctx) error
	ResendActivation(c fiber.Ctx) error
	Logout(c fiber.Ctx) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	signupFlow   businessflow.SignupFlow
	loginFlow    businessflow.LoginFlow
	recoveryFlow businessflow.AccountRecoveryFlow
	validator    *validator.Validate
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(signupFlow businessflow.SignupFlow, loginFlow businessflow.LoginFlow, recoveryFlow businessflow.AccountRecoveryFlow) *AuthHandler {
	return &AuthHandler{
		signupFlow:   signupFlow,
		loginFlow:    loginFlow,
		recoveryFlow: recoveryFlow,
		validator:    newValidator(),
	}
}

// SignupPersonal submits a personal registration for review
// @Summary Personal Registration
// @Description Register an individual account. The account stays pending until an administrator approves it.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.PersonalSignupRequest true "Personal registration data"
// @Success 201 {object} dto.APIResponse{data=dto.SignupResponse} "Registration submitted for review"
// @Failure 400 {object} dto.APIResponse "Validation error or email/NIN already registered"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/personal/signup [post]
func (h *AuthHandler) SignupPersonal(c fiber.Ctx) error {
	var req dto.PersonalSignupRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateRequest(c, h.validator, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c, "/api/v1/auth/personal/signup")
	defer cancel()

	result, err := h.signupFlow.SignupPersonal(ctx, &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err, "Signup failed", "SIGNUP_FAILED")
	}

	return SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// SignupBusiness submits a business registration for review
// @Summary Business Registration
// @Description Register a business account. The CAC number is optional.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.BusinessSignupRequest true "Business registration data"
// @Success 201 {object} dto.APIResponse{data=dto.SignupResponse} "Business registration submitted for review"
// @Failure 400 {object} dto.APIResponse "Validation error or email/CAC number already registered"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/business/signup [post]
func (h *AuthHandler) SignupBusiness(c fiber.Ctx) error {
	var req dto.BusinessSignupRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateRequest(c, h.validator, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c, "/api/v1/auth/business/signup")
	defer cancel()

	result, err := h.signupFlow.SignupBusiness(ctx, &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err, "Signup failed", "SIGNUP_FAILED")
	}

	return SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// LoginPersonal authenticates a personal account
// @Summary Personal Login
// @Description Log in with email, password and the activation code issued on approval
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Invalid credentials, code, or account not approved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/personal/login [post]
func (h *AuthHandler) LoginPersonal(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateRequest(c, h.validator, &req); !ok {
		return err
	}
	return h.login(c, models.AccountTypePersonal, &req, "/api/v1/auth/personal/login")
}

// LoginBusiness authenticates a business account
// @Summary Business Login
// @Description Log in with business email, password and the activation code issued on approval
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.BusinessLoginRequest true "Business login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Invalid credentials, code, or account not approved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/business/login [post]
func (h *AuthHandler) LoginBusiness(c fiber.Ctx) error {
	var req dto.BusinessLoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateRequest(c, h.validator, &req); !ok {
		return err
	}
	return h.login(c, models.AccountTypeBusiness, req.ToLoginRequest(), "/api/v1/auth/business/login")
}

func (h *AuthHandler) login(c fiber.Ctx, accountType models.AccountType, req *dto.LoginRequest, endpoint string) error {
	ctx, cancel := requestContext(c, endpoint)
	defer cancel()

	result, err := h.loginFlow.Login(ctx, accountType, req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err, "Login failed", "LOGIN_FAILED")
	}

	return SuccessResponse(c, fiber.StatusOK, "Login successful", result)
}

// ForgotPassword sends a reset code to an approved account
// @Summary Forgot Password
// @Description Always answers the same way whether or not the email belongs to an approved account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.APIResponse "If the email exists, a reset code has been sent"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateRequest(c, h.validator, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c, "/api/v1/auth/forgot-password")
	defer cancel()

	result, err := h.recoveryFlow.ForgotPassword(ctx, &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err, "Failed to process password reset request", "FORGOT_PASSWORD_FAILED")
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, nil)
}

// ConfirmReset checks a reset code without consuming it
// @Summary Confirm Reset Code
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.ConfirmResetRequest true "Email and reset code"
// @Success 200 {object} dto.APIResponse "Reset code verified successfully"
// @Failure 400 {object} dto.APIResponse "Invalid or expired reset code"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/confirm-reset [post]
func (h *AuthHandler) ConfirmReset(c fiber.Ctx) error {
	var req dto.ConfirmResetRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateRequest(c, h.validator, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c, "/api/v1/auth/confirm-reset")
	defer cancel()

	result, err := h.recoveryFlow.ConfirmResetCode(ctx, &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err, "Failed to verify reset code", "CONFIRM_RESET_FAILED")
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, nil)
}

// ResetPassword sets a new password using a live reset code
// @Summary Reset Password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset code and new password"
// @Success 200 {object} dto.APIResponse "Password has been reset successfully"
// @Failure 400 {object} dto.APIResponse "Passwords do not match or invalid/expired reset code"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateRequest(c, h.validator, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c, "/api/v1/auth/reset-password")
	defer cancel()

	result, err := h.recoveryFlow.ResetPassword(ctx, &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err, "Failed to reset password", "RESET_PASSWORD_FAILED")
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, nil)
}

// ResendActivation issues a fresh activation code to an approved account
// @Summary Resend Activation Code
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.ResendActivationRequest true "Account email"
// @Success 200 {object} dto.APIResponse "New activation code sent to your email"
// @Failure 404 {object} dto.APIResponse "Email not found or account not approved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/resend-activation [post]
func (h *AuthHandler) ResendActivation(c fiber.Ctx) error {
	var req dto.ResendActivationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateRequest(c, h.validator, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c, "/api/v1/auth/resend-activation")
	defer cancel()

	result, err := h.recoveryFlow.ResendActivation(ctx, &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err, "Failed to resend activation code", "RESEND_ACTIVATION_FAILED")
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, nil)
}

// Logout revokes the presented session token
// @Summary Logout
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Logged out successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	claims, ok := middleware.GetSessionClaimsFromContext(c)
	if !ok {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTH_REQUIRED", nil)
	}

	ctx, cancel := requestContextWithTimeout(c, "/api/v1/auth/logout", 10*time.Second)
	defer cancel()

	if err := h.loginFlow.Logout(ctx, claims.TokenID, claims.ExpiresAt, clientMetadata(c)); err != nil {
		return BusinessErrorResponse(c, err, "Logout failed", "LOGOUT_FAILED")
	}

	return SuccessResponse(c, fiber.StatusOK, "Logged out successfully", nil)
}
