package repositories

import (
	"context"
	"strings"

	"agenthub-gin/internal/models"

	"gorm.io/gorm"
)

// ===========================================================================
// AuditLog Repository GORM Implementation
// Append-only: không có Update/Delete
// ===========================================================================

// auditLogRepo triển khai AuditLogRepository với GORM
type auditLogRepo struct {
	db *gorm.DB
}

// NewAuditLogRepository tạo instance mới của AuditLogRepository
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepo{db: db}
}

// Create ghi một dòng audit
func (r *auditLogRepo) Create(ctx context.Context, log *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindByWorkspace lấy audit logs của workspace
func (r *auditLogRepo) FindByWorkspace(ctx context.Context, workspaceID string, opts FindOptions) ([]models.AuditLog, int64, error) {
	opts.SetDefaults()

	var logs []models.AuditLog
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("workspace_id = ?", workspaceID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order(opts.GetOrderClause()).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&logs).Error

	return logs, total, err
}

// FindByUser lấy audit logs của user
func (r *auditLogRepo) FindByUser(ctx context.Context, userID string, opts FindOptions) ([]models.AuditLog, int64, error) {
	opts.SetDefaults()

	var logs []models.AuditLog
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order(opts.GetOrderClause()).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&logs).Error

	return logs, total, err
}

// FindByEntity lấy audit logs của một entity cụ thể
func (r *auditLogRepo) FindByEntity(ctx context.Context, entityType, entityID string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}

	var logs []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error

	return logs, err
}

// List lấy toàn bộ audit logs, hỗ trợ filter substring trên action
// Dùng LOWER + LIKE thay vì ILIKE để chạy được trên cả Postgres và SQLite
func (r *auditLogRepo) List(ctx context.Context, opts FindOptions) ([]models.AuditLog, int64, error) {
	opts.SetDefaults()

	var logs []models.AuditLog
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if opts.Filters != nil {
		if action, ok := opts.Filters["action"].(string); ok && action != "" {
			query = query.Where("LOWER(action) LIKE ?", "%"+strings.ToLower(action)+"%")
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order(opts.GetOrderClause()).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&logs).Error

	return logs, total, err
}
