package dto

// PersonalSignupRequest represents the personal registration form
type PersonalSignupRequest struct {
	FirstName string `json:"user_firstname" validate:"required,max=100" example:"Ada"`
	LastName  string `json:"user_lastname" validate:"required,max=100" example:"Obi"`
	Gender    string `json:"user_gender" validate:"required,max=20" example:"female"`
	Phone     string `json:"user_phone" validate:"required,phone_format" example:"+2348012345678"`
	NIN       string `json:"nin_number" validate:"required,max=20,numeric" example:"12345678901"`
	Email     string `json:"user_email" validate:"required,email,max=255" example:"ada@example.com"`
	Password  string `json:"user_password" validate:"required,min=8,max=72" example:"Secret1!"`
	Address   string `json:"address" validate:"required,max=255" example:"12 Marina Road, Lagos"`
}

// BusinessSignupRequest represents the business registration form; CACNumber is optional
type BusinessSignupRequest struct {
	BusinessPhone    string  `json:"business_phone" validate:"required,phone_format" example:"+2348012345678"`
	BusinessEmail    string  `json:"business_email" validate:"required,email,max=255" example:"hello@acme.ng"`
	BusinessPassword string  `json:"business_password" validate:"required,min=8,max=72" example:"Secret1!"`
	BusinessName     string  `json:"business_name" validate:"required,max=150" example:"Acme Foods"`
	BusinessType     string  `json:"business_type" validate:"required,max=100" example:"restaurant"`
	CACNumber        *string `json:"CAC_number,omitempty" validate:"omitempty,max=30" example:"RC123456"`
	BusinessLocation string  `json:"business_location" validate:"required,max=255" example:"Lagos"`
}

// SignupResponse represents the response after a registration is submitted for review
type SignupResponse struct {
	UserID       uint    `json:"user_id" example:"42"`
	UUID         string  `json:"uuid" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	Status       string  `json:"status" example:"under_review"`
	AccountType  string  `json:"account_type" example:"personal"`
	BusinessName *string `json:"business_name,omitempty" example:"Acme Foods"`
	// EmailSent is false when the under-review notification could not be delivered
	EmailSent bool   `json:"email_sent" example:"true"`
	Message   string `json:"-"`
}
