package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/expensetracker/expense-service/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository implements ports.AuditLog on the audit_events collection.
type AuditRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection), now: time.Now}
}

// EnsureIndexes creates the lookup index on (entity, entity_id, recorded_at).
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity", Value: 1},
			{Key: "entity_id", Value: 1},
			{Key: "recorded_at", Value: -1},
		},
		Options: options.Index().SetName("entity_lookup"),
	})
	if err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}
	return nil
}

// Record persists one audit entry.
func (r *AuditRepository) Record(ctx context.Context, entry domain.AuditEntry) error {
	if _, err := r.coll.InsertOne(ctx, r.document(entry)); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) document(entry domain.AuditEntry) bson.M {
	at := entry.At
	if at.IsZero() {
		at = r.now()
	}
	doc := bson.M{
		"entity":      entry.Entity,
		"entity_id":   entry.EntityID,
		"action":      entry.Action,
		"recorded_at": at.UTC(),
	}
	if entry.Actor != "" {
		doc["actor"] = entry.Actor
	}
	return doc
}
