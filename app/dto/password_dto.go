package dto

// ForgotPasswordRequest starts a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email,max=255" example:"ada@example.com"`
}

// ConfirmResetRequest checks a reset code without consuming it
type ConfirmResetRequest struct {
	Email    string `json:"email" validate:"required,email,max=255" example:"ada@example.com"`
	ResetKey string `json:"reset_key" validate:"required,len=6,numeric" example:"123456"`
}

// ResetPasswordRequest completes a password reset
type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email,max=255" example:"ada@example.com"`
	ResetKey string `json:"reset_key" validate:"required,len=6,numeric" example:"123456"`
	Password string `json:"password" validate:"required,min=8,max=72" example:"N3wSecret!"`
	Confirm  string `json:"confirm" validate:"required,max=72" example:"N3wSecret!"`
}

// ResendActivationRequest asks for a fresh activation code
type ResendActivationRequest struct {
	Email string `json:"email" validate:"required,email,max=255" example:"ada@example.com"`
}

// MessageResponse is used by operations whose only output is a confirmation message
type MessageResponse struct {
	Message string `json:"message" example:"If the email exists, a reset code has been sent"`
}
