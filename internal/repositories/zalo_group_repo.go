package repositories

import (
	"context"

	"agenthub-gin/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// ZaloGroup Repository GORM Implementation
// ===========================================================================

// zaloGroupRepo triển khai ZaloGroupRepository với GORM
type zaloGroupRepo struct {
	db *gorm.DB
}

// NewZaloGroupRepository tạo instance mới của ZaloGroupRepository
func NewZaloGroupRepository(db *gorm.DB) ZaloGroupRepository {
	return &zaloGroupRepo{db: db}
}

// FindByID tìm nhóm theo ID
func (r *zaloGroupRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ZaloGroup, error) {
	var group models.ZaloGroup
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// FindByThreadID tìm nhóm theo thread_id
func (r *zaloGroupRepo) FindByThreadID(ctx context.Context, threadID string) (*models.ZaloGroup, error) {
	var group models.ZaloGroup
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// FindByWorkspace lấy danh sách nhóm trong workspace
func (r *zaloGroupRepo) FindByWorkspace(ctx context.Context, workspaceID string, opts FindOptions) ([]models.ZaloGroup, int64, error) {
	opts.SetDefaults()

	var groups []models.ZaloGroup
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.ZaloGroup{}).
		Where("workspace_id = ?", workspaceID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order(opts.GetOrderClause()).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&groups).Error

	return groups, total, err
}

// Create tạo nhóm mới
func (r *zaloGroupRepo) Create(ctx context.Context, group *models.ZaloGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

// Update cập nhật nhóm
func (r *zaloGroupRepo) Update(ctx context.Context, group *models.ZaloGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

// Delete xóa nhóm
func (r *zaloGroupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ZaloGroup{}, "id = ?", id).Error
}
