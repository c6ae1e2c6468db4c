package handlers

import (
	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/app/middleware"
	businessflow "github.com/amirphl/social-admin/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type BusinessProfileHandlerInterface interface {
	GetProfile(c fiber.Ctx) error
	UpdateProfile(c fiber.Ctx) error
}

type BusinessProfileHandler struct {
	flow      businessflow.BusinessProfileFlow
	validator *validator.Validate
}

func NewBusinessProfileHandler(flow businessflow.BusinessProfileFlow) *BusinessProfileHandler {
	return &BusinessProfileHandler{flow: flow, validator: newValidator()}
}

// GetProfile returns the business profile of the authenticated account
// @Summary Get Business Profile
// @Tags Business Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.BusinessProfileDTO} "Business profile"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Business profile not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/business/profile [get]
func (h *BusinessProfileHandler) GetProfile(c fiber.Ctx) error {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTH_REQUIRED", nil)
	}

	ctx, cancel := requestContext(c, "/api/v1/auth/business/profile")
	defer cancel()

	res, err := h.flow.GetProfile(ctx, accountID)
	if err != nil {
		return BusinessErrorResponse(c, err, "Failed to get business profile", "GET_BUSINESS_PROFILE_FAILED")
	}
	return SuccessResponse(c, fiber.StatusOK, "Business profile retrieved successfully", res)
}

// UpdateProfile changes the provided business fields only
// @Summary Update Business Profile
// @Tags Business Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateBusinessProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.BusinessProfileDTO} "Business details updated successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or CAC number already registered"
// @Failure 404 {object} dto.APIResponse "Business account not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/business/update [put]
func (h *BusinessProfileHandler) UpdateProfile(c fiber.Ctx) error {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTH_REQUIRED", nil)
	}

	var req dto.UpdateBusinessProfileRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateRequest(c, h.validator, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c, "/api/v1/auth/business/update")
	defer cancel()

	res, err := h.flow.UpdateProfile(ctx, accountID, &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err, "Failed to update business details", "UPDATE_BUSINESS_FAILED")
	}
	return SuccessResponse(c, fiber.StatusOK, res.Message, res.Profile)
}
