package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
	"github.com/TmanScript/umoja-swap-collection/internal/domain/repository"
)

// MongoAuditRepository implements the workflow activity trail on a
// MongoDB collection.
type MongoAuditRepository struct {
	collection *mongo.Collection
}

// NewMongoAuditRepository creates a new audit event repository.
func NewMongoAuditRepository(db *mongo.Database) repository.AuditRepository {
	collection := db.Collection("audit_events")

	// Index for the per-admin recent-events query
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "admin", Value: 1}, {Key: "at", Value: -1}},
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoAuditRepository{collection: collection}
}

// Append inserts one event, filling id and timestamp when absent.
func (r *MongoAuditRepository) Append(ctx context.Context, event *entity.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// ListRecent returns the newest events for one admin, newest first.
func (r *MongoAuditRepository) ListRecent(ctx context.Context, admin string, limit int) ([]entity.AuditEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"admin": admin}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []entity.AuditEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
