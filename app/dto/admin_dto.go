package dto

type AdminDTO struct {
	ID        uint   `json:"id" example:"1"`
	UUID      string `json:"uuid" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	Username  string `json:"username" example:"admin"`
	IsActive  *bool  `json:"is_active" example:"true"`
	CreatedAt string `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

type AdminSessionDTO struct {
	AccessToken string `json:"access_token" example:"jwt"`
	ExpiresIn   int    `json:"expires_in" example:"86400"`
	TokenType   string `json:"token_type" example:"Bearer"`
}

type AdminCaptchaInitResponse struct {
	ChallengeID       string `json:"challenge_id"`
	MasterImageBase64 string `json:"master_image_base64"`
	ThumbImageBase64  string `json:"thumb_image_base64"`
}

type AdminLoginRequest struct {
	ChallengeID string  `json:"challenge_id" validate:"required"`
	Username    string  `json:"username" validate:"required,min=3,max=255"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	UserAngle   float64 `json:"user_angle" validate:"gte=0,lte=360"`
}

type AdminLoginResponse struct {
	Admin   AdminDTO        `json:"admin"`
	Session AdminSessionDTO `json:"session"`
}

// ApproveAccountRequest approves a pending registration
type ApproveAccountRequest struct {
	UserID uint `json:"user_id" validate:"required,gt=0" example:"42"`
}

// RejectAccountRequest rejects a pending registration with an optional reason
type RejectAccountRequest struct {
	UserID uint   `json:"user_id" validate:"required,gt=0" example:"42"`
	Reason string `json:"reason,omitempty" validate:"omitempty,max=1000" example:"NIN could not be verified"`
}

// PendingAccountDTO is one row of the pending approvals listing
type PendingAccountDTO struct {
	UserID           uint    `json:"user_id"`
	UUID             string  `json:"uuid"`
	AccountType      string  `json:"account_type"`
	Email            string  `json:"email"`
	FirstName        *string `json:"user_firstname,omitempty"`
	LastName         *string `json:"user_lastname,omitempty"`
	Phone            *string `json:"user_phone,omitempty"`
	NIN              *string `json:"nin_number,omitempty"`
	Address          *string `json:"address,omitempty"`
	BusinessName     *string `json:"business_name,omitempty"`
	BusinessType     *string `json:"business_type,omitempty"`
	CACNumber        *string `json:"CAC_number,omitempty"`
	BusinessLocation *string `json:"business_location,omitempty"`
	BusinessPhone    *string `json:"business_phone,omitempty"`
	RegisteredAt     string  `json:"user_registered"`
}

// ListPendingAccountsRequest pages through the pending approvals listing
type ListPendingAccountsRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}

type ListPendingAccountsResponse struct {
	Items    []PendingAccountDTO `json:"items"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Total    int64               `json:"total"`
}

// PendingAccountsExport is a generated spreadsheet of pending registrations
type PendingAccountsExport struct {
	Filename string
	Content  []byte
	Rows     int
}
