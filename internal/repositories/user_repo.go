package repositories

import (
	"context"

	"agenthub-gin/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// User Repository GORM Implementation
// ===========================================================================

// userRepo triển khai UserRepository với GORM
type userRepo struct {
	db *gorm.DB
}

// NewUserRepository tạo instance mới của UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

// FindByID tìm user theo ID
func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByZaloID tìm user theo zalo_id
func (r *userRepo) FindByZaloID(ctx context.Context, zaloID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("zalo_id = ?", zaloID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List lấy danh sách users với phân trang
func (r *userRepo) List(ctx context.Context, opts FindOptions) ([]models.User, int64, error) {
	opts.SetDefaults()

	var users []models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order(opts.GetOrderClause()).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&users).Error

	return users, total, err
}

// Create tạo user mới
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update cập nhật user
func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete xóa user
func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error
}
