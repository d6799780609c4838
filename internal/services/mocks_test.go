package services

import (
	"context"

	"agenthub-gin/internal/models"
	"agenthub-gin/internal/repositories"

	"github.com/google/uuid"
)

// ===========================================================================
// Failure-injection mocks
// Dùng để test fail-closed (relational outage) và fail-open (graph outage)
// ===========================================================================

// failingGroupRepo trả về lỗi cố định cho mọi method, đếm số lần gọi
type failingGroupRepo struct {
	err   error
	calls int
}

func (r *failingGroupRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ZaloGroup, error) {
	r.calls++
	return nil, r.err
}

func (r *failingGroupRepo) FindByThreadID(ctx context.Context, threadID string) (*models.ZaloGroup, error) {
	r.calls++
	return nil, r.err
}

func (r *failingGroupRepo) FindByWorkspace(ctx context.Context, workspaceID string, opts repositories.FindOptions) ([]models.ZaloGroup, int64, error) {
	r.calls++
	return nil, 0, r.err
}

func (r *failingGroupRepo) Create(ctx context.Context, group *models.ZaloGroup) error {
	r.calls++
	return r.err
}

func (r *failingGroupRepo) Update(ctx context.Context, group *models.ZaloGroup) error {
	r.calls++
	return r.err
}

func (r *failingGroupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.calls++
	return r.err
}

// failingUserRepo trả về lỗi cố định cho mọi method, đếm số lần gọi
type failingUserRepo struct {
	err   error
	calls int
}

func (r *failingUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.calls++
	return nil, r.err
}

func (r *failingUserRepo) FindByZaloID(ctx context.Context, zaloID string) (*models.User, error) {
	r.calls++
	return nil, r.err
}

func (r *failingUserRepo) List(ctx context.Context, opts repositories.FindOptions) ([]models.User, int64, error) {
	r.calls++
	return nil, 0, r.err
}

func (r *failingUserRepo) Create(ctx context.Context, user *models.User) error {
	r.calls++
	return r.err
}

func (r *failingUserRepo) Update(ctx context.Context, user *models.User) error {
	r.calls++
	return r.err
}

func (r *failingUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.calls++
	return r.err
}

// failingRoleRepo trả về lỗi cố định cho mọi method
type failingRoleRepo struct {
	err error
}

func (r *failingRoleRepo) Find(ctx context.Context, workspaceID string, userID uuid.UUID) (*models.WorkspaceUserRole, error) {
	return nil, r.err
}

func (r *failingRoleRepo) FindByWorkspace(ctx context.Context, workspaceID string, opts repositories.FindOptions) ([]models.WorkspaceUserRole, int64, error) {
	return nil, 0, r.err
}

func (r *failingRoleRepo) Create(ctx context.Context, role *models.WorkspaceUserRole) error {
	return r.err
}

func (r *failingRoleRepo) Update(ctx context.Context, role *models.WorkspaceUserRole) error {
	return r.err
}

func (r *failingRoleRepo) Delete(ctx context.Context, workspaceID string, userID uuid.UUID) error {
	return r.err
}

// failingConfigRepo trả về lỗi cố định cho mọi method
type failingConfigRepo struct {
	err error
}

func (r *failingConfigRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.WorkspaceAgentConfig, error) {
	return nil, r.err
}

func (r *failingConfigRepo) FindByWorkspaceAndAgent(ctx context.Context, workspaceID, agentKey string) (*models.WorkspaceAgentConfig, error) {
	return nil, r.err
}

func (r *failingConfigRepo) FindByWorkspace(ctx context.Context, workspaceID string) ([]models.WorkspaceAgentConfig, error) {
	return nil, r.err
}

func (r *failingConfigRepo) Create(ctx context.Context, config *models.WorkspaceAgentConfig) error {
	return r.err
}

func (r *failingConfigRepo) Update(ctx context.Context, config *models.WorkspaceAgentConfig) error {
	return r.err
}

// failingAuditRepo trả về lỗi cố định cho mọi method
type failingAuditRepo struct {
	err error
}

func (r *failingAuditRepo) Create(ctx context.Context, log *models.AuditLog) error {
	return r.err
}

func (r *failingAuditRepo) FindByWorkspace(ctx context.Context, workspaceID string, opts repositories.FindOptions) ([]models.AuditLog, int64, error) {
	return nil, 0, r.err
}

func (r *failingAuditRepo) FindByUser(ctx context.Context, userID string, opts repositories.FindOptions) ([]models.AuditLog, int64, error) {
	return nil, 0, r.err
}

func (r *failingAuditRepo) FindByEntity(ctx context.Context, entityType, entityID string, limit int) ([]models.AuditLog, error) {
	return nil, r.err
}

func (r *failingAuditRepo) List(ctx context.Context, opts repositories.FindOptions) ([]models.AuditLog, int64, error) {
	return nil, 0, r.err
}

// ===========================================================================
// Stub graph store
// Trả về kết quả HasMembership cấu hình được, đếm số write
// ===========================================================================

// stubGraph graph store cho test: inject kết quả corroboration và lỗi
type stubGraph struct {
	membership    bool
	membershipErr error

	writes int
}

func (g *stubGraph) record() error { g.writes++; return nil }

func (g *stubGraph) MergeWorkspace(ctx context.Context, id, name string) error { return g.record() }
func (g *stubGraph) DeleteWorkspace(ctx context.Context, id string) error      { return g.record() }
func (g *stubGraph) MergeUser(ctx context.Context, id, z, n string) error      { return g.record() }
func (g *stubGraph) DeleteUser(ctx context.Context, id string) error           { return g.record() }
func (g *stubGraph) MergeAgent(ctx context.Context, key, name string) error    { return g.record() }
func (g *stubGraph) DeleteAgent(ctx context.Context, key string) error         { return g.record() }
func (g *stubGraph) DeleteGroup(ctx context.Context, id string) error          { return g.record() }
func (g *stubGraph) SetGroupAgent(ctx context.Context, id, key string) error   { return g.record() }
func (g *stubGraph) LinkWorkspaceAgent(ctx context.Context, w, k string) error { return g.record() }
func (g *stubGraph) MergeRole(ctx context.Context, u, w, role string) error    { return g.record() }
func (g *stubGraph) DeleteRole(ctx context.Context, u, w string) error         { return g.record() }
func (g *stubGraph) VerifyConnectivity(ctx context.Context) error              { return nil }
func (g *stubGraph) Close(ctx context.Context) error                           { return nil }

func (g *stubGraph) MergeGroup(ctx context.Context, id, threadID, name, workspaceID string) error {
	return g.record()
}

func (g *stubGraph) HasMembership(ctx context.Context, threadID, userID string) (bool, error) {
	return g.membership, g.membershipErr
}
