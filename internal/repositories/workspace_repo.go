package repositories

import (
	"context"
	"strings"

	"agenthub-gin/internal/models"

	"gorm.io/gorm"
)

// ===========================================================================
// Workspace Repository GORM Implementation
// ===========================================================================

// workspaceRepo triển khai WorkspaceRepository với GORM
type workspaceRepo struct {
	db *gorm.DB
}

// NewWorkspaceRepository tạo instance mới của WorkspaceRepository
func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &workspaceRepo{db: db}
}

// FindByID tìm workspace theo ID
func (r *workspaceRepo) FindByID(ctx context.Context, id string) (*models.Workspace, error) {
	var ws models.Workspace
	if err := r.db.WithContext(ctx).First(&ws, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ws, nil
}

// List lấy danh sách workspaces với phân trang
func (r *workspaceRepo) List(ctx context.Context, opts FindOptions) ([]models.Workspace, int64, error) {
	opts.SetDefaults()

	var workspaces []models.Workspace
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Workspace{})

	if opts.Filters != nil {
		if status, ok := opts.Filters["status"]; ok {
			query = query.Where("status = ?", status)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order(opts.GetOrderClause()).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&workspaces).Error

	return workspaces, total, err
}

// Create tạo workspace mới
func (r *workspaceRepo) Create(ctx context.Context, workspace *models.Workspace) error {
	return r.db.WithContext(ctx).Create(workspace).Error
}

// Update cập nhật workspace
func (r *workspaceRepo) Update(ctx context.Context, workspace *models.Workspace) error {
	return r.db.WithContext(ctx).Save(workspace).Error
}

// DeleteCascade xóa workspace và mọi dữ liệu phụ thuộc trong một transaction
// Transaction là durability boundary: lỗi ở bất kỳ bước nào rollback toàn bộ
func (r *workspaceRepo) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workspace_id = ?", id).Delete(&models.WorkspaceUserRole{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&models.WorkspaceAgentConfig{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&models.Account{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&models.ZaloGroup{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Workspace{}, "id = ?", id).Error
	})
}

// SearchByName fuzzy search theo tên dùng pg_trgm similarity()
// Nếu trigram query lỗi (extension chưa bật), fallback sang ILIKE
func (r *workspaceRepo) SearchByName(ctx context.Context, name string, threshold float64, limit int) ([]WorkspaceSearchResult, int64, error) {
	if strings.TrimSpace(name) == "" {
		return []WorkspaceSearchResult{}, 0, nil
	}
	if limit <= 0 {
		limit = 20
	}

	var results []WorkspaceSearchResult
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, name, status, description, created_at, updated_at,
		        similarity(name, ?) AS similarity
		 FROM workspaces
		 WHERE similarity(name, ?) > ?
		 ORDER BY similarity DESC
		 LIMIT ?`,
		name, name, threshold, limit,
	).Scan(&results).Error
	if err != nil {
		return r.fallbackSearch(ctx, name, limit)
	}

	var total int64
	err = r.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM workspaces WHERE similarity(name, ?) > ?`,
		name, threshold,
	).Scan(&total).Error
	if err != nil {
		return results, int64(len(results)), nil
	}

	return results, total, nil
}

// fallbackSearch tìm bằng LIKE khi pg_trgm không khả dụng
// Điểm similarity ước lượng: match chứa = 1.0, match prefix = 0.8
func (r *workspaceRepo) fallbackSearch(ctx context.Context, name string, limit int) ([]WorkspaceSearchResult, int64, error) {
	contains := "%" + strings.ToLower(name) + "%"
	prefix := strings.ToLower(name) + "%"

	var results []WorkspaceSearchResult
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, name, status, description, created_at, updated_at,
		        CASE
		          WHEN LOWER(name) LIKE ? THEN 1.0
		          WHEN LOWER(name) LIKE ? THEN 0.8
		          ELSE 0.5
		        END AS similarity
		 FROM workspaces
		 WHERE LOWER(name) LIKE ? OR LOWER(name) LIKE ?
		 ORDER BY similarity DESC
		 LIMIT ?`,
		contains, prefix, contains, prefix, limit,
	).Scan(&results).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	err = r.db.WithContext(ctx).
		Model(&models.Workspace{}).
		Where("LOWER(name) LIKE ? OR LOWER(name) LIKE ?", contains, prefix).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	return results, total, nil
}
