package graph

import "context"

// ===========================================================================
// Noop Store
// Dùng khi Neo4j không được cấu hình - mọi write bị bỏ qua,
// corroboration read trả về ErrUnavailable để resolver biết mà bỏ qua
// ===========================================================================

// noopStore không làm gì cả
type noopStore struct{}

// NewNoop tạo graph store không làm gì, dùng khi mirror bị tắt và trong tests
func NewNoop() Store {
	return &noopStore{}
}

func (noopStore) MergeWorkspace(ctx context.Context, id, name string) error      { return nil }
func (noopStore) DeleteWorkspace(ctx context.Context, id string) error           { return nil }
func (noopStore) MergeUser(ctx context.Context, id, zaloID, name string) error   { return nil }
func (noopStore) DeleteUser(ctx context.Context, id string) error                { return nil }
func (noopStore) MergeAgent(ctx context.Context, key, name string) error         { return nil }
func (noopStore) DeleteAgent(ctx context.Context, key string) error              { return nil }
func (noopStore) DeleteGroup(ctx context.Context, id string) error               { return nil }
func (noopStore) SetGroupAgent(ctx context.Context, groupID, key string) error   { return nil }
func (noopStore) LinkWorkspaceAgent(ctx context.Context, wsID, key string) error { return nil }
func (noopStore) MergeRole(ctx context.Context, uID, wsID, role string) error    { return nil }
func (noopStore) DeleteRole(ctx context.Context, uID, wsID string) error         { return nil }
func (noopStore) VerifyConnectivity(ctx context.Context) error                   { return nil }
func (noopStore) Close(ctx context.Context) error                                { return nil }

func (noopStore) MergeGroup(ctx context.Context, id, threadID, name, workspaceID string) error {
	return nil
}

func (noopStore) HasMembership(ctx context.Context, threadID, userID string) (bool, error) {
	return false, ErrUnavailable
}
