package domain

import "time"

// AuditEvent records an administrative mutation for later inspection.
// Events are written asynchronously; per-tenant ordering is preserved.
type AuditEvent struct {
	TenantID   string    `json:"tenant_id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
