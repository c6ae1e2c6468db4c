// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/app/middleware"
	businessflow "github.com/amirphl/social-admin/business_flow"
	"github.com/amirphl/social-admin/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

func ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// statusForKind maps error kinds to HTTP status codes. Conflicts are reported as 400.
func statusForKind(kind businessflow.ErrorKind) int {
	switch kind {
	case businessflow.KindValidation, businessflow.KindConflict:
		return fiber.StatusBadRequest
	case businessflow.KindUnauthorized:
		return fiber.StatusUnauthorized
	case businessflow.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// BusinessErrorResponse writes err using its kind. Internal errors are logged
// and answered with fallbackMessage only.
func BusinessErrorResponse(c fiber.Ctx, err error, fallbackMessage, fallbackCode string) error {
	var be *businessflow.BusinessError
	if !errors.As(err, &be) || be.Kind == businessflow.KindInternal {
		log.Println(fallbackMessage, err)
		return ErrorResponse(c, fiber.StatusInternalServerError, fallbackMessage, fallbackCode, nil)
	}

	return c.Status(statusForKind(be.Kind)).JSON(dto.APIResponse{
		Success: false,
		Message: be.Message,
		Status:  be.Status,
		Error:   dto.ErrorDetail{Code: be.Code},
	})
}

func newValidator() *validator.Validate {
	v := validator.New()

	// International phone numbers: optional leading +, then 7 to 15 digits
	_ = v.RegisterValidation("phone_format", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if len(value) > 0 && value[0] == '+' {
			value = value[1:]
		}
		if len(value) < 7 || len(value) > 15 {
			return false
		}
		for _, char := range value {
			if char < '0' || char > '9' {
				return false
			}
		}
		return true
	})

	return v
}

// validateRequest runs struct validation and writes the 400 response on failure
func validateRequest(c fiber.Ctx, v *validator.Validate, req any) (bool, error) {
	err := v.Struct(req)
	if err == nil {
		return true, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false, ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", err.Error())
	}

	details := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, getValidationErrorMessage(fe))
	}
	message := "Validation failed"
	for _, fe := range validationErrors {
		if fe.Tag() == "required" {
			message = "All fields are required"
			break
		}
	}
	return false, ErrorResponse(c, fiber.StatusBadRequest, message, "VALIDATION_ERROR", details)
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "len":
		return err.Field() + " must be exactly " + err.Param() + " characters"
	case "phone_format":
		return err.Field() + " must be a phone number of 7 to 15 digits"
	case "numeric":
		return err.Field() + " must contain only numbers"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}

// requestContext bounds the business call of a request. Callers must call the cancel func.
func requestContext(c fiber.Ctx, endpoint string) (context.Context, context.CancelFunc) {
	return requestContextWithTimeout(c, endpoint, utils.RequestTimeout)
}

func requestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, requestContextKey("request_id"), c.Get(businessflow.RequestIDKey))
	ctx = context.WithValue(ctx, requestContextKey("endpoint"), endpoint)
	return ctx, cancel
}

type requestContextKey string

func clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if requestID, ok := c.Locals(middleware.LocalRequestID).(string); ok && requestID != "" {
		metadata.SetRequestID(requestID)
	} else if requestID := requestid.FromContext(c); requestID != "" {
		metadata.SetRequestID(requestID)
	} else if requestID := c.Get(businessflow.RequestIDKey); requestID != "" {
		metadata.SetRequestID(requestID)
	}
	return metadata
}
