package repositories

import (
	"context"

	"agenthub-gin/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// Account Repository GORM Implementation
// ===========================================================================

// accountRepo triển khai AccountRepository với GORM
type accountRepo struct {
	db *gorm.DB
}

// NewAccountRepository tạo instance mới của AccountRepository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepo{db: db}
}

// FindByID tìm account theo ID
func (r *accountRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByWorkspace lấy danh sách accounts trong workspace
func (r *accountRepo) FindByWorkspace(ctx context.Context, workspaceID string, opts FindOptions) ([]models.Account, int64, error) {
	opts.SetDefaults()

	var accounts []models.Account
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("workspace_id = ?", workspaceID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order(opts.GetOrderClause()).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&accounts).Error

	return accounts, total, err
}

// Create tạo account mới
func (r *accountRepo) Create(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// Update cập nhật account
func (r *accountRepo) Update(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// Delete xóa account
func (r *accountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Account{}, "id = ?", id).Error
}
