package graph

import (
	"context"
	"errors"
)

// ===========================================================================
// Graph Store Interface
// Mirror dạng property-graph của dữ liệu quan hệ, phục vụ traversal queries
// KHÔNG phải source of truth - mọi write đều là advisory (best-effort)
// ===========================================================================

// ErrUnavailable graph store không được cấu hình hoặc không kết nối được
var ErrUnavailable = errors.New("graph store unavailable")

// Store interface cho graph mirror
// Mọi method write được caller gọi theo kiểu best-effort:
// lỗi được log rồi bỏ qua, không bao giờ chặn relational write
type Store interface {
	// MergeWorkspace tạo/update node Workspace
	MergeWorkspace(ctx context.Context, id, name string) error

	// DeleteWorkspace xóa node Workspace và mọi relationship (DETACH DELETE)
	DeleteWorkspace(ctx context.Context, id string) error

	// MergeUser tạo/update node User
	MergeUser(ctx context.Context, id, zaloID, fullName string) error

	// DeleteUser xóa node User và mọi relationship
	DeleteUser(ctx context.Context, id string) error

	// MergeAgent tạo/update node Agent
	MergeAgent(ctx context.Context, key, name string) error

	// DeleteAgent xóa node Agent và mọi relationship
	DeleteAgent(ctx context.Context, key string) error

	// MergeGroup tạo/update node ZaloGroup và edge BELONGS_TO tới workspace
	MergeGroup(ctx context.Context, id, threadID, name, workspaceID string) error

	// DeleteGroup xóa node ZaloGroup và mọi relationship
	DeleteGroup(ctx context.Context, id string) error

	// SetGroupAgent thay edge USES_AGENT của nhóm sang agent mới
	SetGroupAgent(ctx context.Context, groupID, agentKey string) error

	// LinkWorkspaceAgent tạo edge USES_AGENT từ workspace tới agent
	LinkWorkspaceAgent(ctx context.Context, workspaceID, agentKey string) error

	// MergeRole tạo/update edge HAS_ROLE (user -> workspace, role là property)
	MergeRole(ctx context.Context, userID, workspaceID, role string) error

	// DeleteRole xóa edge HAS_ROLE
	DeleteRole(ctx context.Context, userID, workspaceID string) error

	// HasMembership traversal kiểm chứng: nhóm thuộc workspace mà user có role
	// Chỉ dùng để phát hiện staleness, không bao giờ quyết định allow/deny
	HasMembership(ctx context.Context, threadID, userID string) (bool, error)

	// VerifyConnectivity kiểm tra kết nối tới graph store
	VerifyConnectivity(ctx context.Context) error

	// Close đóng driver
	Close(ctx context.Context) error
}
