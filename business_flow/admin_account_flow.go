package businessflow

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/app/services"
	"github.com/amirphl/social-admin/models"
	"github.com/amirphl/social-admin/repository"
	"github.com/amirphl/social-admin/utils"
	"github.com/xuri/excelize/v2"
)

const (
	msgAccountApproved = "Account approved and activation code sent to user"
	msgAccountRejected = "Account rejected and user notified"

	defaultPendingPageSize = 20
	maxPendingPageSize     = 100
	pendingExportSheet     = "Pending Accounts"
)

// AdminAccountFlow lets administrators review pending registrations
type AdminAccountFlow interface {
	ListPending(ctx context.Context, req *dto.ListPendingAccountsRequest) (*dto.ListPendingAccountsResponse, error)
	ExportPending(ctx context.Context, adminID uint, metadata *ClientMetadata) (*dto.PendingAccountsExport, error)
	Approve(ctx context.Context, adminID uint, req *dto.ApproveAccountRequest, metadata *ClientMetadata) (*dto.MessageResponse, error)
	Reject(ctx context.Context, adminID uint, req *dto.RejectAccountRequest, metadata *ClientMetadata) (*dto.MessageResponse, error)
}

// AdminAccountFlowImpl implements the admin review business flow
type AdminAccountFlowImpl struct {
	accountRepo     repository.AccountRepository
	adminLogRepo    repository.AdminLogRepository
	transactor      repository.Transactor
	notificationSvc services.NotificationService
	ttls            CodeTTLs
	clock           utils.Clock
}

// NewAdminAccountFlow creates a new admin account flow instance
func NewAdminAccountFlow(
	accountRepo repository.AccountRepository,
	adminLogRepo repository.AdminLogRepository,
	transactor repository.Transactor,
	notificationSvc services.NotificationService,
	ttls CodeTTLs,
	clock utils.Clock,
) AdminAccountFlow {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &AdminAccountFlowImpl{
		accountRepo:     accountRepo,
		adminLogRepo:    adminLogRepo,
		transactor:      transactor,
		notificationSvc: notificationSvc,
		ttls:            ttls.withDefaults(),
		clock:           clock,
	}
}

// ListPending pages through registrations awaiting review, newest first
func (f *AdminAccountFlowImpl) ListPending(ctx context.Context, req *dto.ListPendingAccountsRequest) (*dto.ListPendingAccountsResponse, error) {
	page, pageSize := 1, defaultPendingPageSize
	if req != nil {
		if req.Page > 0 {
			page = req.Page
		}
		if req.PageSize > 0 {
			pageSize = min(req.PageSize, maxPendingPageSize)
		}
	}

	accounts, err := f.accountRepo.ListPending(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("LIST_PENDING_FAILED", "Failed to list pending accounts", err)
	}
	status := models.AccountStatusPending
	total, err := f.accountRepo.Count(ctx, models.AccountFilter{AccountStatus: &status})
	if err != nil {
		return nil, NewBusinessError("LIST_PENDING_FAILED", "Failed to list pending accounts", err)
	}

	items := make([]dto.PendingAccountDTO, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, ToPendingAccountDTO(*a))
	}

	return &dto.ListPendingAccountsResponse{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

// ExportPending renders every pending registration into an XLSX workbook
func (f *AdminAccountFlowImpl) ExportPending(ctx context.Context, adminID uint, metadata *ClientMetadata) (*dto.PendingAccountsExport, error) {
	accounts, err := f.accountRepo.ListPending(ctx, 0, 0)
	if err != nil {
		return nil, NewBusinessError("EXPORT_PENDING_FAILED", "Failed to fetch pending accounts", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	xl.SetSheetName(xl.GetSheetName(0), pendingExportSheet)
	header := []string{"user_id", "uuid", "account_type", "email", "first_name", "last_name", "phone", "nin_number", "address",
		"business_name", "business_type", "cac_number", "business_location", "business_phone", "registered_at"}
	if err := xl.SetSheetRow(pendingExportSheet, "A1", &header); err != nil {
		return nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	for i, a := range accounts {
		record := []string{
			strconv.FormatUint(uint64(a.ID), 10),
			a.UUID.String(),
			a.AccountType.String(),
			a.Email,
			utils.Deref(a.FirstName),
			utils.Deref(a.LastName),
			utils.Deref(a.Phone),
			utils.Deref(a.NIN),
			utils.Deref(a.Address),
			utils.Deref(a.BusinessName),
			utils.Deref(a.BusinessType),
			utils.Deref(a.CACNumber),
			utils.Deref(a.BusinessLocation),
			utils.Deref(a.BusinessPhone),
			a.CreatedAt.UTC().Format(time.RFC3339),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := xl.SetSheetRow(pendingExportSheet, cellRef, &record); err != nil {
			return nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	now := f.clock.Now()
	entry := f.newAdminLog(adminID, models.AdminActionExportPending, nil, fmt.Sprintf("exported %d pending accounts", len(accounts)), metadata)
	if err := f.adminLogRepo.Save(ctx, entry); err != nil {
		log.Printf("Failed to record pending export by admin %d: %v", adminID, err)
	}

	return &dto.PendingAccountsExport{
		Filename: fmt.Sprintf("pending_accounts_%s.xlsx", now.UTC().Format("20060102_150405")),
		Content:  buf.Bytes(),
		Rows:     len(accounts),
	}, nil
}

// Approve moves a pending account to approved, issues its activation code and
// notifies the user. Approving anything but a pending account is NotFound.
func (f *AdminAccountFlowImpl) Approve(ctx context.Context, adminID uint, req *dto.ApproveAccountRequest, metadata *ClientMetadata) (*dto.MessageResponse, error) {
	if req == nil || req.UserID == 0 {
		return nil, newKnownError("APPROVE_VALIDATION_FAILED", ErrAllFieldsRequired)
	}

	code, err := generateCode()
	if err != nil {
		return nil, NewBusinessError("APPROVE_ACCOUNT_FAILED", "Failed to approve account", err)
	}
	expires := f.clock.Now().Add(f.ttls.Activation)

	var account *models.Account
	err = f.transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		approved, err := f.accountRepo.Approve(txCtx, req.UserID, code, expires)
		if err != nil {
			return err
		}
		if !approved {
			return ErrAccountNotFoundOrProcessed
		}

		account, err = f.accountRepo.ByID(txCtx, req.UserID)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrAccountNotFoundOrProcessed
		}

		entry := f.newAdminLog(adminID, models.AdminActionApproveAccount, &req.UserID,
			fmt.Sprintf("approved %s account %s", account.AccountType, utils.MaskEmail(account.Email)), metadata)
		return f.adminLogRepo.Save(txCtx, entry)
	})
	if err != nil {
		if IsAccountNotFoundOrProcessed(err) {
			return nil, newKnownError("ACCOUNT_NOT_FOUND_OR_PROCESSED", ErrAccountNotFoundOrProcessed)
		}
		return nil, NewBusinessError("APPROVE_ACCOUNT_FAILED", "Failed to approve account", err)
	}

	accountDecisionsTotal.WithLabelValues("approved").Inc()

	subject := subjectAccountApproved
	if account.IsBusiness() {
		subject = subjectBusinessAccountApproved
	}
	body, err := renderEmail("approved", emailData{
		Name:     account.DisplayName(),
		Business: account.IsBusiness(),
		Code:     code,
		Validity: humanDuration(f.ttls.Activation),
	})
	if err != nil {
		log.Printf("Failed to render approval email for account %d: %v", account.ID, err)
	} else {
		sendEmail(ctx, f.notificationSvc, account.Email, subject, body)
	}

	return &dto.MessageResponse{Message: msgAccountApproved}, nil
}

// Reject moves a pending account to rejected and notifies the user with the optional reason
func (f *AdminAccountFlowImpl) Reject(ctx context.Context, adminID uint, req *dto.RejectAccountRequest, metadata *ClientMetadata) (*dto.MessageResponse, error) {
	if req == nil || req.UserID == 0 {
		return nil, newKnownError("REJECT_VALIDATION_FAILED", ErrAllFieldsRequired)
	}
	reason := strings.TrimSpace(req.Reason)

	var account *models.Account
	err := f.transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		rejected, err := f.accountRepo.Reject(txCtx, req.UserID)
		if err != nil {
			return err
		}
		if !rejected {
			return ErrAccountNotFoundOrProcessed
		}

		account, err = f.accountRepo.ByID(txCtx, req.UserID)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrAccountNotFoundOrProcessed
		}

		details := fmt.Sprintf("rejected %s account %s", account.AccountType, utils.MaskEmail(account.Email))
		if reason != "" {
			details += ": " + reason
		}
		return f.adminLogRepo.Save(txCtx, f.newAdminLog(adminID, models.AdminActionRejectAccount, &req.UserID, details, metadata))
	})
	if err != nil {
		if IsAccountNotFoundOrProcessed(err) {
			return nil, newKnownError("ACCOUNT_NOT_FOUND_OR_PROCESSED", ErrAccountNotFoundOrProcessed)
		}
		return nil, NewBusinessError("REJECT_ACCOUNT_FAILED", "Failed to reject account", err)
	}

	accountDecisionsTotal.WithLabelValues("rejected").Inc()

	body, err := renderEmail("rejected", emailData{Name: account.DisplayName(), Reason: reason})
	if err != nil {
		log.Printf("Failed to render rejection email for account %d: %v", account.ID, err)
	} else {
		sendEmail(ctx, f.notificationSvc, account.Email, subjectAccountRejected, body)
	}

	return &dto.MessageResponse{Message: msgAccountRejected}, nil
}

func (f *AdminAccountFlowImpl) newAdminLog(adminID uint, action string, target *uint, details string, metadata *ClientMetadata) *models.AdminLog {
	entry := &models.AdminLog{
		AdminID:         adminID,
		ActionType:      action,
		TargetAccountID: target,
		ActionDetails:   details,
		RequestID:       metadata.requestIDPtr(),
		CreatedAt:       f.clock.Now(),
	}
	if ip := metadata.ipAddress(); ip != "" {
		entry.IPAddress = &ip
	}
	if ua := metadata.userAgent(); ua != "" {
		entry.UserAgent = &ua
	}
	return entry
}
