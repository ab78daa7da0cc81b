package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/expensetracker/expense-service/internal/core/domain"
)

func TestAuditDocument(t *testing.T) {
	fixed := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	r := &AuditRepository{now: func() time.Time { return fixed }}

	t.Run("anonymous entry gets recorded_at", func(t *testing.T) {
		doc := r.document(domain.AuditEntry{
			Entity:   domain.EntityUser,
			EntityID: 7,
			Action:   domain.AuditCreate,
		})
		assert.Equal(t, bson.M{
			"entity":      "user",
			"entity_id":   int64(7),
			"action":      "create",
			"recorded_at": fixed,
		}, doc)
	})

	t.Run("actor and time are kept", func(t *testing.T) {
		at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("X", 7200))
		doc := r.document(domain.AuditEntry{
			Entity:   domain.EntityExpense,
			EntityID: 3,
			Action:   domain.AuditDelete,
			Actor:    "ann",
			At:       at,
		})
		assert.Equal(t, "ann", doc["actor"])
		assert.Equal(t, at.UTC(), doc["recorded_at"])
	})
}

func TestConnect_RequiresURIAndDatabase(t *testing.T) {
	_, _, err := Connect(context.Background(), Config{URI: "mongodb://localhost:27017"})
	assert.Error(t, err)
}
