package services

import (
	"context"
	"fmt"

	"agenthub-gin/internal/models"
	"agenthub-gin/internal/repositories"

	"go.uber.org/zap"
)

// ===========================================================================
// Audit Service Implementation
// ===========================================================================

// auditServiceImpl implements AuditService
type auditServiceImpl struct {
	auditRepo repositories.AuditLogRepository
	logger    *zap.Logger
}

// NewAuditService tạo AuditService mới
func NewAuditService(
	auditRepo repositories.AuditLogRepository,
	logger *zap.Logger,
) AuditService {
	return &auditServiceImpl{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Log ghi một dòng audit
func (s *auditServiceImpl) Log(ctx context.Context, entry AuditEntry) error {
	log := &models.AuditLog{
		WorkspaceID:  entry.WorkspaceID,
		UserID:       entry.UserID,
		Action:       entry.Action,
		EntityType:   entry.EntityType,
		EntityID:     entry.EntityID,
		OldValue:     entry.OldValue,
		NewValue:     entry.NewValue,
		IPAddress:    entry.IPAddress,
		Status:       entry.Status,
		ErrorMessage: entry.ErrorMessage,
	}

	if log.Status == "" {
		log.Status = models.AuditSuccess
	}

	if err := s.auditRepo.Create(ctx, log); err != nil {
		s.logger.Error("audit append failed",
			zap.Error(err),
			zap.String("action", entry.Action),
		)
		return fmt.Errorf("append audit log: %w", err)
	}

	return nil
}

// ListByWorkspace lấy audit logs của workspace
func (s *auditServiceImpl) ListByWorkspace(ctx context.Context, workspaceID string, opts repositories.FindOptions) ([]models.AuditLog, int64, error) {
	return s.auditRepo.FindByWorkspace(ctx, workspaceID, opts)
}

// ListByUser lấy audit logs của user
func (s *auditServiceImpl) ListByUser(ctx context.Context, userID string, opts repositories.FindOptions) ([]models.AuditLog, int64, error) {
	return s.auditRepo.FindByUser(ctx, userID, opts)
}

// ListByEntity lấy lịch sử thay đổi của một entity
func (s *auditServiceImpl) ListByEntity(ctx context.Context, entityType, entityID string, limit int) ([]models.AuditLog, error) {
	return s.auditRepo.FindByEntity(ctx, entityType, entityID, limit)
}

// List lấy toàn bộ audit logs, filter substring theo action nếu có
func (s *auditServiceImpl) List(ctx context.Context, action string, opts repositories.FindOptions) ([]models.AuditLog, int64, error) {
	if action != "" {
		if opts.Filters == nil {
			opts.Filters = map[string]interface{}{}
		}
		opts.Filters["action"] = action
	}
	return s.auditRepo.List(ctx, opts)
}
