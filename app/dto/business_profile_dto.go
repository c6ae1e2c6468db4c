package dto

// BusinessProfileDTO is the business account profile
type BusinessProfileDTO struct {
	UserID           uint    `json:"user_id" example:"42"`
	BusinessName     string  `json:"business_name" example:"Acme Foods"`
	BusinessType     *string `json:"business_type,omitempty" example:"restaurant"`
	CACNumber        *string `json:"CAC_number,omitempty" example:"RC123456"`
	BusinessLocation *string `json:"business_location,omitempty" example:"Lagos"`
	BusinessEmail    string  `json:"business_email" example:"hello@acme.ng"`
	BusinessPhone    *string `json:"business_phone,omitempty" example:"+2348012345678"`
	RegisteredAt     string  `json:"user_registered" example:"2024-01-15T10:30:00Z"`
	IsVerified       bool    `json:"is_verified" example:"true"`
	HasVerifiedBadge bool    `json:"has_verified_badge" example:"false"`
}

// UpdateBusinessProfileRequest changes only the provided fields
type UpdateBusinessProfileRequest struct {
	BusinessName     *string `json:"business_name,omitempty" validate:"omitempty,min=1,max=150"`
	BusinessType     *string `json:"business_type,omitempty" validate:"omitempty,min=1,max=100"`
	CACNumber        *string `json:"CAC_number,omitempty" validate:"omitempty,min=1,max=30"`
	BusinessLocation *string `json:"business_location,omitempty" validate:"omitempty,min=1,max=255"`
	BusinessPhone    *string `json:"business_phone,omitempty" validate:"omitempty,phone_format"`
}

// UpdateBusinessProfileResponse echoes the updated profile
type UpdateBusinessProfileResponse struct {
	Message string             `json:"message" example:"Business details updated successfully"`
	Profile BusinessProfileDTO `json:"profile"`
}
