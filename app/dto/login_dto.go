package dto

// LoginRequest is the normalized login input shared by personal and business accounts
type LoginRequest struct {
	Email          string `json:"email" validate:"required,email,max=255" example:"ada@example.com"`
	Password       string `json:"password" validate:"required,max=72" example:"Secret1!"`
	ActivationCode string `json:"activation_code" validate:"omitempty" example:"123456"`
}

// BusinessLoginRequest is the business login form as submitted by clients
type BusinessLoginRequest struct {
	BusinessEmail    string `json:"business_email" validate:"required,email,max=255" example:"hello@acme.ng"`
	BusinessPassword string `json:"business_password" validate:"required,max=72" example:"Secret1!"`
	ActivationCode   string `json:"activation_code" validate:"omitempty" example:"123456"`
}

func (r BusinessLoginRequest) ToLoginRequest() *LoginRequest {
	return &LoginRequest{
		Email:          r.BusinessEmail,
		Password:       r.BusinessPassword,
		ActivationCode: r.ActivationCode,
	}
}

// AuthUserDTO is the user profile returned on successful login
type AuthUserDTO struct {
	UserID           uint    `json:"user_id" example:"42"`
	UUID             string  `json:"uuid" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	Email            string  `json:"email" example:"ada@example.com"`
	FirstName        *string `json:"first_name,omitempty" example:"Ada"`
	LastName         *string `json:"last_name,omitempty" example:"Obi"`
	BusinessName     *string `json:"business_name,omitempty" example:"Acme Foods"`
	DisplayName      string  `json:"display_name" example:"Ada Obi"`
	IsVerified       bool    `json:"is_verified" example:"true"`
	HasVerifiedBadge bool    `json:"has_verified_badge" example:"false"`
	AccountType      string  `json:"account_type" example:"personal"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token     string      `json:"token" example:"jwt"`
	TokenType string      `json:"token_type" example:"Bearer"`
	ExpiresAt string      `json:"expires_at" example:"2024-02-14T10:30:00Z"`
	User      AuthUserDTO `json:"user"`
}

// LogoutResponse confirms that the presented session token was revoked
type LogoutResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}
