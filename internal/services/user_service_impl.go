package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "agenthub-gin/internal/errors"
	"agenthub-gin/internal/graph"
	"agenthub-gin/internal/models"
	"agenthub-gin/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ===========================================================================
// User Service Implementation
// ===========================================================================

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo repositories.UserRepository
	graph    graph.Store
	audit    AuditService
	logger   *zap.Logger
}

// NewUserService tạo UserService mới
func NewUserService(
	userRepo repositories.UserRepository,
	graphStore graph.Store,
	audit AuditService,
	logger *zap.Logger,
) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		graph:    graphStore,
		audit:    audit,
		logger:   logger,
	}
}

// CreateOrGet tạo user mới hoặc trả về user đã tồn tại với cùng zalo_id
func (s *userServiceImpl) CreateOrGet(ctx context.Context, input CreateUserInput) (*models.User, bool, error) {
	zaloID := strings.TrimSpace(input.ZaloID)
	if zaloID == "" {
		return nil, false, apperrors.New(apperrors.ErrInvalidInput, "zalo_id is required")
	}

	// Check tồn tại trước - cùng zalo_id trả về record cũ, không đổi gì
	existing, err := s.userRepo.FindByZaloID(ctx, zaloID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("find user by zalo_id failed",
			zap.Error(err),
			zap.String("zalo_id", zaloID),
		)
		return nil, false, fmt.Errorf("find user by zalo_id: %w", err)
	}

	user := &models.User{
		ZaloID:   zaloID,
		FullName: strings.TrimSpace(input.FullName),
		Email:    input.Email,
		Phone:    input.Phone,
		Gender:   input.Gender,
		Status:   "active",
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("create user failed",
			zap.Error(err),
			zap.String("zalo_id", zaloID),
		)
		return nil, false, fmt.Errorf("create user: %w", err)
	}

	mirrorWrite(ctx, s.logger, "merge user", func(mctx context.Context) error {
		return s.graph.MergeUser(mctx, user.ID.String(), user.ZaloID, user.FullName)
	})

	userID := user.ID.String()
	if err := s.audit.Log(ctx, AuditEntry{
		UserID:     &userID,
		Action:     ActionCreateUser,
		EntityType: "User",
		EntityID:   &userID,
		NewValue:   models.JSONMap{"zalo_id": user.ZaloID, "full_name": user.FullName},
		Status:     models.AuditSuccess,
	}); err != nil {
		return nil, false, err
	}

	s.logger.Info("user created",
		zap.String("user_id", userID),
		zap.String("zalo_id", zaloID),
	)

	return user, true, nil
}

// Get lấy user theo ID
func (s *userServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "user not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// GetByZaloID lấy user theo zalo_id
func (s *userServiceImpl) GetByZaloID(ctx context.Context, zaloID string) (*models.User, error) {
	user, err := s.userRepo.FindByZaloID(ctx, zaloID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "user not found")
		}
		return nil, fmt.Errorf("find user by zalo_id: %w", err)
	}
	return user, nil
}

// List lấy danh sách users với phân trang
func (s *userServiceImpl) List(ctx context.Context, opts repositories.FindOptions) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, opts)
}

// Update cập nhật profile user
func (s *userServiceImpl) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "user not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	oldValue := models.JSONMap{"full_name": user.FullName, "status": user.Status}

	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Email != nil {
		user.Email = input.Email
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Gender != nil {
		user.Gender = input.Gender
	}
	if input.Status != nil {
		user.Status = *input.Status
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("update user failed",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("update user: %w", err)
	}

	mirrorWrite(ctx, s.logger, "merge user", func(mctx context.Context) error {
		return s.graph.MergeUser(mctx, user.ID.String(), user.ZaloID, user.FullName)
	})

	userID := user.ID.String()
	if err := s.audit.Log(ctx, AuditEntry{
		UserID:     &userID,
		Action:     ActionUpdateUser,
		EntityType: "User",
		EntityID:   &userID,
		OldValue:   oldValue,
		NewValue:   models.JSONMap{"full_name": user.FullName, "status": user.Status},
		Status:     models.AuditSuccess,
	}); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete xóa user
func (s *userServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.ErrNotFound, "user not found")
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		s.logger.Error("delete user failed",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("delete user: %w", err)
	}

	mirrorWrite(ctx, s.logger, "delete user", func(mctx context.Context) error {
		return s.graph.DeleteUser(mctx, id.String())
	})

	userID := id.String()
	if err := s.audit.Log(ctx, AuditEntry{
		UserID:     &userID,
		Action:     ActionDeleteUser,
		EntityType: "User",
		EntityID:   &userID,
		OldValue:   models.JSONMap{"zalo_id": user.ZaloID, "full_name": user.FullName},
		Status:     models.AuditSuccess,
	}); err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.String("user_id", userID))
	return nil
}
