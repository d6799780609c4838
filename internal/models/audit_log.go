package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// AuditLog (Nhật ký audit)
// Append-only: mỗi mutation ghi đúng một dòng, không bao giờ update/delete
// old_value/new_value lưu snapshot để reconstruct thay đổi
// ===========================================================================

// AuditStatus kết quả của mutation được ghi nhận
type AuditStatus string

const (
	// AuditSuccess mutation thành công
	AuditSuccess AuditStatus = "SUCCESS"

	// AuditFailed mutation thất bại
	AuditFailed AuditStatus = "FAILED"
)

// AuditLog một dòng nhật ký audit, immutable sau khi ghi
type AuditLog struct {
	// ID primary key dạng UUID
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	// WorkspaceID workspace liên quan (nullable cho thao tác toàn cục)
	WorkspaceID *string `gorm:"size:64;index" json:"workspace_id,omitempty"`

	// UserID actor hoặc user bị tác động (nullable)
	UserID *string `gorm:"size:64;index" json:"user_id,omitempty"`

	// Action tag mô tả thao tác (VD: "CREATE_WORKSPACE")
	Action string `gorm:"size:64;not null;index" json:"action"`

	// EntityType loại entity bị tác động (VD: "Workspace")
	EntityType string `gorm:"size:64;not null" json:"entity_type"`

	// EntityID id của entity bị tác động (nullable)
	EntityID *string `gorm:"size:128" json:"entity_id,omitempty"`

	// OldValue snapshot trước thay đổi (null cho create)
	OldValue JSONMap `gorm:"type:jsonb" json:"old_value,omitempty"`

	// NewValue snapshot sau thay đổi (null cho delete)
	NewValue JSONMap `gorm:"type:jsonb" json:"new_value,omitempty"`

	// IPAddress địa chỉ IP của caller (nullable)
	IPAddress *string `gorm:"size:64" json:"ip_address,omitempty"`

	// Status SUCCESS | FAILED
	Status AuditStatus `gorm:"size:20;not null" json:"status"`

	// ErrorMessage thông báo lỗi khi status = FAILED
	ErrorMessage *string `gorm:"type:text" json:"error_message,omitempty"`

	// CreatedAt thời điểm ghi - không có UpdatedAt vì log là immutable
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName trả về tên bảng trong database
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate hook generate UUID nếu chưa có
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
