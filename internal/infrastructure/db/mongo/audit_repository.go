package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/daybook/journal-api/internal/core/ports"
)

const auditCollection = "audit_events"

// MongoAuditRepository persists security audit events.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	Action  string `bson:"action"`
	UserID  string `bson:"user_id,omitempty"`
	Email   string `bson:"email,omitempty"`
	Success bool   `bson:"success"`
	Reason  string `bson:"reason,omitempty"`
	At      int64  `bson:"at"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event ports.AuditEvent) error {
	doc := mongoAuditEvent{
		Action:  event.Action,
		UserID:  event.UserID,
		Email:   event.Email,
		Success: event.Success,
		Reason:  event.Reason,
		At:      event.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
