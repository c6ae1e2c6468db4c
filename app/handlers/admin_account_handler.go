package handlers

import (
	"fmt"
	"time"

	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/app/middleware"
	businessflow "github.com/amirphl/social-admin/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminAccountHandlerInterface interface {
	ListPending(c fiber.Ctx) error
	ExportPending(c fiber.Ctx) error
	Approve(c fiber.Ctx) error
	Reject(c fiber.Ctx) error
}

// AdminAccountHandler serves the registration review endpoints
type AdminAccountHandler struct {
	flow      businessflow.AdminAccountFlow
	validator *validator.Validate
}

func NewAdminAccountHandler(flow businessflow.AdminAccountFlow) *AdminAccountHandler {
	return &AdminAccountHandler{flow: flow, validator: newValidator()}
}

// ListPending lists registrations awaiting review
// @Summary List Pending Accounts
// @Tags Admin Accounts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.ListPendingAccountsResponse} "Pending accounts"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/accounts/pending [get]
func (h *AdminAccountHandler) ListPending(c fiber.Ctx) error {
	var req dto.ListPendingAccountsRequest
	if err := c.Bind().Query(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateRequest(c, h.validator, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c, "/api/v1/admin/accounts/pending")
	defer cancel()

	res, err := h.flow.ListPending(ctx, &req)
	if err != nil {
		return BusinessErrorResponse(c, err, "Failed to list pending accounts", "LIST_PENDING_FAILED")
	}
	return SuccessResponse(c, fiber.StatusOK, "Pending accounts retrieved successfully", res)
}

// ExportPending downloads all pending registrations as an XLSX workbook
// @Summary Export Pending Accounts
// @Tags Admin Accounts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "XLSX workbook"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/accounts/pending/export [get]
func (h *AdminAccountHandler) ExportPending(c fiber.Ctx) error {
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Admin authentication required", "ADMIN_AUTH_REQUIRED", nil)
	}

	ctx, cancel := requestContextWithTimeout(c, "/api/v1/admin/accounts/pending/export", 2*time.Minute)
	defer cancel()

	export, err := h.flow.ExportPending(ctx, adminID, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err, "Failed to export pending accounts", "EXPORT_PENDING_FAILED")
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename))
	return c.Status(fiber.StatusOK).Send(export.Content)
}

// Approve approves a pending registration and emails the activation code
// @Summary Approve Account
// @Tags Admin Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApproveAccountRequest true "Account to approve"
// @Success 200 {object} dto.APIResponse "Account approved and activation code sent to user"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "User not found or already processed"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/accounts/approve [post]
func (h *AdminAccountHandler) Approve(c fiber.Ctx) error {
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Admin authentication required", "ADMIN_AUTH_REQUIRED", nil)
	}

	var req dto.ApproveAccountRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateRequest(c, h.validator, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c, "/api/v1/admin/accounts/approve")
	defer cancel()

	res, err := h.flow.Approve(ctx, adminID, &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err, "Failed to approve account", "APPROVE_ACCOUNT_FAILED")
	}
	return SuccessResponse(c, fiber.StatusOK, res.Message, nil)
}

// Reject rejects a pending registration and notifies the user
// @Summary Reject Account
// @Tags Admin Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RejectAccountRequest true "Account to reject and optional reason"
// @Success 200 {object} dto.APIResponse "Account rejected and user notified"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "User not found or already processed"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/accounts/reject [post]
func (h *AdminAccountHandler) Reject(c fiber.Ctx) error {
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Admin authentication required", "ADMIN_AUTH_REQUIRED", nil)
	}

	var req dto.RejectAccountRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateRequest(c, h.validator, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c, "/api/v1/admin/accounts/reject")
	defer cancel()

	res, err := h.flow.Reject(ctx, adminID, &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err, "Failed to reject account", "REJECT_ACCOUNT_FAILED")
	}
	return SuccessResponse(c, fiber.StatusOK, res.Message, nil)
}
