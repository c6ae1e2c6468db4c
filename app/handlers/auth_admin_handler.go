package handlers

import (
	"github.com/amirphl/social-admin/app/dto"
	businessflow "github.com/amirphl/social-admin/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type AdminAuthHandlerInterface interface {
	InitCaptcha(c fiber.Ctx) error
	Login(c fiber.Ctx) error
}

type AdminAuthHandler struct {
	flow      businessflow.AdminAuthFlow
	validator *validator.Validate
}

func NewAdminAuthHandler(flow businessflow.AdminAuthFlow) *AdminAuthHandler {
	return &AdminAuthHandler{flow: flow, validator: newValidator()}
}

// InitCaptcha starts an admin login by issuing a rotate captcha challenge
// @Summary Admin Captcha Init
// @Tags Admin Authentication
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AdminCaptchaInitResponse} "Captcha generated"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/auth/captcha/init [get]
func (h *AdminAuthHandler) InitCaptcha(c fiber.Ctx) error {
	ctx, cancel := requestContext(c, "/api/v1/admin/auth/captcha/init")
	defer cancel()

	res, err := h.flow.InitCaptcha(ctx)
	if err != nil {
		return BusinessErrorResponse(c, err, "Failed to initialize captcha", "CAPTCHA_INIT_FAILED")
	}
	return SuccessResponse(c, fiber.StatusOK, "Captcha generated", res)
}

// Login verifies the captcha and admin credentials and returns an admin token
// @Summary Admin Login
// @Tags Admin Authentication
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Captcha answer and credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AdminLoginResponse} "Login successful"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Invalid captcha or credentials"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/auth/login [post]
func (h *AdminAuthHandler) Login(c fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateRequest(c, h.validator, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c, "/api/v1/admin/auth/login")
	defer cancel()

	res, err := h.flow.Login(ctx, &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err, "Admin login failed", "ADMIN_LOGIN_FAILED")
	}
	return SuccessResponse(c, fiber.StatusOK, "Login successful", res)
}
