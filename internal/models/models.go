package models

// ===========================================================================
// Models Index
// Cung cấp danh sách tất cả models cho GORM AutoMigrate
// ===========================================================================

// AllModels trả về danh sách tất cả models
// Dùng cho database.AutoMigrate() để tự động tạo/update tables
func AllModels() []interface{} {
	return []interface{}{
		&Workspace{},            // Không gian làm việc
		&User{},                 // Người dùng Zalo
		&ZaloGroup{},            // Nhóm chat Zalo
		&Agent{},                // AI Agent toàn cục
		&WorkspaceAgentConfig{}, // Cấu hình agent theo workspace
		&Account{},              // Tài khoản liên kết
		&WorkspaceUserRole{},    // Phân quyền user trong workspace
		&AuditLog{},             // Nhật ký audit
	}
}
