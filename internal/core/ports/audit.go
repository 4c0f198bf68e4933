package ports

import (
	"context"

	"github.com/tenantworks/saas-admin/internal/core/domain"
)

// AuditRepository appends audit events to durable storage.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}

// AuditRecorder accepts audit events for asynchronous persistence. Record
// never blocks the request path.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}
