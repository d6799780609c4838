package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// BaseModel là struct cơ sở cho các models dùng surrogate key
// Chứa các trường chung: ID và timestamps
// ===========================================================================

// BaseModel chứa các trường chung cho các models
type BaseModel struct {
	// ID là primary key dạng UUID, tự động generate nếu không có
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	// CreatedAt thời điểm tạo record
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	// UpdatedAt thời điểm cập nhật gần nhất
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook chạy trước khi insert record
// Tự động generate UUID nếu chưa có
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// GetID trả về ID của model
func (b *BaseModel) GetID() uuid.UUID {
	return b.ID
}
