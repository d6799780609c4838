package models

// ===========================================================================
// User (Người dùng Zalo)
// Identity đã được chat platform xác thực, định danh bằng zalo_id
// Hệ thống không tự tạo user khi resolve - tạo user là thao tác admin riêng
// ===========================================================================

// User đại diện cho một người dùng Zalo trong hệ thống
type User struct {
	BaseModel

	// ZaloID external identity từ chat platform, unique toàn hệ thống
	// Tạo lần hai với cùng zalo_id trả về record cũ (idempotent upsert)
	ZaloID string `gorm:"size:64;uniqueIndex;not null" json:"zalo_id"`

	// FullName tên đầy đủ
	FullName string `gorm:"size:255" json:"full_name"`

	// Email địa chỉ email (optional)
	Email *string `gorm:"size:255" json:"email,omitempty"`

	// Phone số điện thoại (optional)
	Phone *string `gorm:"size:32" json:"phone,omitempty"`

	// Gender giới tính: male | female | other (optional)
	Gender *string `gorm:"size:16" json:"gender,omitempty"`

	// Status trạng thái user
	Status string `gorm:"size:20;not null;default:active" json:"status"`
}

// TableName trả về tên bảng trong database
func (User) TableName() string {
	return "users"
}
