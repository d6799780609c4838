package repositories

import (
	"context"

	"agenthub-gin/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// Role Repository GORM Implementation
// ===========================================================================

// roleRepo triển khai RoleRepository với GORM
type roleRepo struct {
	db *gorm.DB
}

// NewRoleRepository tạo instance mới của RoleRepository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

// Find tìm role assignment theo cặp (workspace, user)
func (r *roleRepo) Find(ctx context.Context, workspaceID string, userID uuid.UUID) (*models.WorkspaceUserRole, error) {
	var role models.WorkspaceUserRole
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByWorkspace lấy danh sách thành viên kèm role trong workspace
func (r *roleRepo) FindByWorkspace(ctx context.Context, workspaceID string, opts FindOptions) ([]models.WorkspaceUserRole, int64, error) {
	opts.SetDefaults()

	var roles []models.WorkspaceUserRole
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.WorkspaceUserRole{}).
		Where("workspace_id = ?", workspaceID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("User").
		Order(opts.GetOrderClause()).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&roles).Error

	return roles, total, err
}

// Create tạo role assignment mới
func (r *roleRepo) Create(ctx context.Context, role *models.WorkspaceUserRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

// Update cập nhật role assignment
func (r *roleRepo) Update(ctx context.Context, role *models.WorkspaceUserRole) error {
	return r.db.WithContext(ctx).Save(role).Error
}

// Delete xóa role assignment theo cặp (workspace, user)
func (r *roleRepo) Delete(ctx context.Context, workspaceID string, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Delete(&models.WorkspaceUserRole{}).Error
}
