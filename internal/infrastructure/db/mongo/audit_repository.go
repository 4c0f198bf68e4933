package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tenantworks/saas-admin/internal/core/domain"
)

const auditCollection = "audit_log"

// AuditRepository appends audit events. The collection is write-mostly; reads
// happen out of band (support tooling, not this API).
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	TenantID   string `bson:"tenant_id"`
	ActorID    string `bson:"actor_id"`
	Action     string `bson:"action"`
	Resource   string `bson:"resource"`
	ResourceID string `bson:"resource_id"`
	OccurredAt int64  `bson:"occurred_at"`
}

func (r *AuditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	doc := auditDoc{
		TenantID:   event.TenantID,
		ActorID:    event.ActorID,
		Action:     event.Action,
		Resource:   event.Resource,
		ResourceID: event.ResourceID,
		OccurredAt: event.OccurredAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
