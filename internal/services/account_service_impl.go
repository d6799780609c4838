package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "agenthub-gin/internal/errors"
	"agenthub-gin/internal/models"
	"agenthub-gin/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ===========================================================================
// Account Service Implementation
// Accounts chỉ sống trong relational store - không có graph mirror
// ===========================================================================

// accountServiceImpl implements AccountService
type accountServiceImpl struct {
	accountRepo   repositories.AccountRepository
	workspaceRepo repositories.WorkspaceRepository
	audit         AuditService
	logger        *zap.Logger
}

// NewAccountService tạo AccountService mới
func NewAccountService(
	accountRepo repositories.AccountRepository,
	workspaceRepo repositories.WorkspaceRepository,
	audit AuditService,
	logger *zap.Logger,
) AccountService {
	return &accountServiceImpl{
		accountRepo:   accountRepo,
		workspaceRepo: workspaceRepo,
		audit:         audit,
		logger:        logger,
	}
}

// Create tạo account mới trong workspace
func (s *accountServiceImpl) Create(ctx context.Context, input CreateAccountInput) (*models.Account, error) {
	if strings.TrimSpace(input.Type) == "" {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "account type is required")
	}

	if _, err := s.workspaceRepo.FindByID(ctx, input.WorkspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "workspace not found")
		}
		return nil, fmt.Errorf("find workspace: %w", err)
	}

	account := &models.Account{
		WorkspaceID: input.WorkspaceID,
		Type:        strings.TrimSpace(input.Type),
		ReferenceID: input.ReferenceID,
		Metadata:    input.Metadata,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		s.logger.Error("create account failed",
			zap.Error(err),
			zap.String("workspace_id", input.WorkspaceID),
		)
		return nil, fmt.Errorf("create account: %w", err)
	}

	accountID := account.ID.String()
	if err := s.audit.Log(ctx, AuditEntry{
		WorkspaceID: &input.WorkspaceID,
		Action:      ActionCreateAccount,
		EntityType:  "Account",
		EntityID:    &accountID,
		NewValue:    models.JSONMap{"type": account.Type},
		Status:      models.AuditSuccess,
	}); err != nil {
		return nil, err
	}

	return account, nil
}

// Get lấy account theo ID
func (s *accountServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "account not found")
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}

// ListByWorkspace lấy danh sách accounts trong workspace
func (s *accountServiceImpl) ListByWorkspace(ctx context.Context, workspaceID string, opts repositories.FindOptions) ([]models.Account, int64, error) {
	return s.accountRepo.FindByWorkspace(ctx, workspaceID, opts)
}

// Update cập nhật account
func (s *accountServiceImpl) Update(ctx context.Context, id uuid.UUID, input UpdateAccountInput) (*models.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "account not found")
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	oldValue := models.JSONMap{"type": account.Type}

	if input.Type != nil {
		account.Type = strings.TrimSpace(*input.Type)
	}
	if input.ReferenceID != nil {
		account.ReferenceID = input.ReferenceID
	}
	if input.Metadata != nil {
		account.Metadata = input.Metadata
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}

	accountID := account.ID.String()
	if err := s.audit.Log(ctx, AuditEntry{
		WorkspaceID: &account.WorkspaceID,
		Action:      ActionUpdateAccount,
		EntityType:  "Account",
		EntityID:    &accountID,
		OldValue:    oldValue,
		NewValue:    models.JSONMap{"type": account.Type},
		Status:      models.AuditSuccess,
	}); err != nil {
		return nil, err
	}

	return account, nil
}

// Delete xóa account
func (s *accountServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.ErrNotFound, "account not found")
		}
		return fmt.Errorf("find account: %w", err)
	}

	if err := s.accountRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	accountID := id.String()
	if err := s.audit.Log(ctx, AuditEntry{
		WorkspaceID: &account.WorkspaceID,
		Action:      ActionDeleteAccount,
		EntityType:  "Account",
		EntityID:    &accountID,
		OldValue:    models.JSONMap{"type": account.Type},
		Status:      models.AuditSuccess,
	}); err != nil {
		return err
	}

	return nil
}
