package graph

import (
	"context"

	"agenthub-gin/internal/config"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ===========================================================================
// Neo4j Store Implementation
// Session được acquire theo từng call và release ngay (ExecuteQuery)
// ===========================================================================

// neo4jStore triển khai Store với neo4j-go-driver
type neo4jStore struct {
	driver neo4j.DriverWithContext
}

// NewNeo4jStore tạo graph store kết nối Neo4j
func NewNeo4jStore(cfg *config.Neo4jConfig) (Store, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.User, cfg.Password, ""),
		func(c *neo4j.Config) {
			c.ConnectionAcquisitionTimeout = cfg.AcquisitionTimeout
		},
	)
	if err != nil {
		return nil, err
	}
	return &neo4jStore{driver: driver}, nil
}

// run thực thi một Cypher query với params
func (s *neo4jStore) run(ctx context.Context, cypher string, params map[string]any) error {
	_, err := neo4j.ExecuteQuery(ctx, s.driver, cypher, params, neo4j.EagerResultTransformer)
	return err
}

// MergeWorkspace tạo/update node Workspace
func (s *neo4jStore) MergeWorkspace(ctx context.Context, id, name string) error {
	return s.run(ctx,
		`MERGE (w:Workspace {id: $id})
		 SET w.name = $name, w.updated_at = datetime()`,
		map[string]any{"id": id, "name": name},
	)
}

// DeleteWorkspace xóa node Workspace và mọi relationship
func (s *neo4jStore) DeleteWorkspace(ctx context.Context, id string) error {
	return s.run(ctx,
		`MATCH (w:Workspace {id: $id}) DETACH DELETE w`,
		map[string]any{"id": id},
	)
}

// MergeUser tạo/update node User
func (s *neo4jStore) MergeUser(ctx context.Context, id, zaloID, fullName string) error {
	return s.run(ctx,
		`MERGE (u:User {id: $id})
		 SET u.zalo_id = $zalo_id, u.full_name = $full_name`,
		map[string]any{"id": id, "zalo_id": zaloID, "full_name": fullName},
	)
}

// DeleteUser xóa node User và mọi relationship
func (s *neo4jStore) DeleteUser(ctx context.Context, id string) error {
	return s.run(ctx,
		`MATCH (u:User {id: $id}) DETACH DELETE u`,
		map[string]any{"id": id},
	)
}

// MergeAgent tạo/update node Agent
func (s *neo4jStore) MergeAgent(ctx context.Context, key, name string) error {
	return s.run(ctx,
		`MERGE (a:Agent {key: $key})
		 SET a.name = $name, a.type = 'ai_agent'`,
		map[string]any{"key": key, "name": name},
	)
}

// DeleteAgent xóa node Agent và mọi relationship
func (s *neo4jStore) DeleteAgent(ctx context.Context, key string) error {
	return s.run(ctx,
		`MATCH (a:Agent {key: $key}) DETACH DELETE a`,
		map[string]any{"key": key},
	)
}

// MergeGroup tạo node ZaloGroup và edge BELONGS_TO tới workspace
func (s *neo4jStore) MergeGroup(ctx context.Context, id, threadID, name, workspaceID string) error {
	return s.run(ctx,
		`MATCH (w:Workspace {id: $workspace_id})
		 MERGE (g:ZaloGroup {id: $id})
		 SET g.thread_id = $thread_id, g.name = $name
		 MERGE (g)-[:BELONGS_TO]->(w)`,
		map[string]any{
			"workspace_id": workspaceID,
			"id":           id,
			"thread_id":    threadID,
			"name":         name,
		},
	)
}

// DeleteGroup xóa node ZaloGroup và mọi relationship
func (s *neo4jStore) DeleteGroup(ctx context.Context, id string) error {
	return s.run(ctx,
		`MATCH (g:ZaloGroup {id: $id}) DETACH DELETE g`,
		map[string]any{"id": id},
	)
}

// SetGroupAgent thay edge USES_AGENT của nhóm sang agent mới
func (s *neo4jStore) SetGroupAgent(ctx context.Context, groupID, agentKey string) error {
	return s.run(ctx,
		`MATCH (g:ZaloGroup {id: $group_id})
		 OPTIONAL MATCH (g)-[r:USES_AGENT]->(:Agent)
		 DELETE r
		 WITH g
		 MATCH (a:Agent {key: $agent_key})
		 MERGE (g)-[:USES_AGENT]->(a)`,
		map[string]any{"group_id": groupID, "agent_key": agentKey},
	)
}

// LinkWorkspaceAgent tạo edge USES_AGENT từ workspace tới agent
func (s *neo4jStore) LinkWorkspaceAgent(ctx context.Context, workspaceID, agentKey string) error {
	return s.run(ctx,
		`MATCH (w:Workspace {id: $workspace_id})
		 MATCH (a:Agent {key: $agent_key})
		 MERGE (w)-[:USES_AGENT]->(a)`,
		map[string]any{"workspace_id": workspaceID, "agent_key": agentKey},
	)
}

// MergeRole tạo/update edge HAS_ROLE với role là property
func (s *neo4jStore) MergeRole(ctx context.Context, userID, workspaceID, role string) error {
	return s.run(ctx,
		`MATCH (u:User {id: $user_id})
		 MATCH (w:Workspace {id: $workspace_id})
		 MERGE (u)-[r:HAS_ROLE]->(w)
		 SET r.role = $role`,
		map[string]any{"user_id": userID, "workspace_id": workspaceID, "role": role},
	)
}

// DeleteRole xóa edge HAS_ROLE
func (s *neo4jStore) DeleteRole(ctx context.Context, userID, workspaceID string) error {
	return s.run(ctx,
		`MATCH (u:User {id: $user_id})-[r:HAS_ROLE]->(w:Workspace {id: $workspace_id})
		 DELETE r`,
		map[string]any{"user_id": userID, "workspace_id": workspaceID},
	)
}

// HasMembership traversal kiểm chứng membership qua graph
func (s *neo4jStore) HasMembership(ctx context.Context, threadID, userID string) (bool, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver,
		`MATCH (g:ZaloGroup {thread_id: $thread_id})-[:BELONGS_TO]->(w:Workspace)
		 MATCH (u:User {id: $user_id})-[r:HAS_ROLE]->(w)
		 RETURN r.role AS role LIMIT 1`,
		map[string]any{"thread_id": threadID, "user_id": userID},
		neo4j.EagerResultTransformer,
	)
	if err != nil {
		return false, err
	}
	return len(result.Records) > 0, nil
}

// VerifyConnectivity kiểm tra kết nối
func (s *neo4jStore) VerifyConnectivity(ctx context.Context) error {
	return s.driver.VerifyConnectivity(ctx)
}

// Close đóng driver
func (s *neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}
