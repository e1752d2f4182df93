package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/atelier-rental-ledger/internal/domain/client"
)

const (
	// ClientCollectionName is the name of the client collection in MongoDB
	ClientCollectionName = "clients"
)

// ClientRepository implements the client.Repository interface for MongoDB
type ClientRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewClientRepository creates a new MongoDB client repository
func NewClientRepository(logger *slog.Logger, db *mongo.Database) client.Repository {
	return &ClientRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new client record
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	collection := r.db.Collection(ClientCollectionName)

	_, err := collection.InsertOne(ctx, c)
	if err != nil {
		r.logger.Error("Failed to create client",
			"client_id", c.ID.String(),
			"error", err)
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

// GetByID retrieves a client by its ID.
// Returns ErrClientNotFound if no client exists.
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	collection := r.db.Collection(ClientCollectionName)

	filter := bson.M{"id": id}
	var c client.Client
	err := collection.FindOne(ctx, filter).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, client.ErrClientNotFound{ClientID: id}
		}
		r.logger.Error("Failed to get client",
			"client_id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return &c, nil
}

// GetByPhone retrieves clients matching the phone number. The phone is not a
// unique key, so multiple records may come back; an empty slice means no match.
func (r *ClientRepository) GetByPhone(ctx context.Context, phone string) ([]*client.Client, error) {
	collection := r.db.Collection(ClientCollectionName)

	filter := bson.M{"phone": phone}
	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to get clients by phone",
			"phone", phone,
			"error", err)
		return nil, fmt.Errorf("failed to get clients by phone: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []*client.Client
	if err := cursor.All(ctx, &clients); err != nil {
		r.logger.Error("Failed to decode clients",
			"phone", phone,
			"error", err)
		return nil, fmt.Errorf("failed to decode clients: %w", err)
	}

	return clients, nil
}

// List retrieves paginated client records, newest first
func (r *ClientRepository) List(ctx context.Context, limit, offset int) ([]*client.Client, error) {
	collection := r.db.Collection(ClientCollectionName)

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to list clients", "error", err)
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []*client.Client
	if err := cursor.All(ctx, &clients); err != nil {
		r.logger.Error("Failed to decode clients", "error", err)
		return nil, fmt.Errorf("failed to decode clients: %w", err)
	}

	return clients, nil
}

// Update replaces the stored client with the given one.
// Returns ErrClientNotFound if the client doesn't exist.
func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	collection := r.db.Collection(ClientCollectionName)

	c.UpdatedAt = time.Now()
	filter := bson.M{"id": c.ID}
	result, err := collection.ReplaceOne(ctx, filter, c)
	if err != nil {
		r.logger.Error("Failed to update client",
			"client_id", c.ID.String(),
			"error", err)
		return fmt.Errorf("failed to update client: %w", err)
	}

	if result.MatchedCount == 0 {
		return client.ErrClientNotFound{ClientID: c.ID}
	}

	return nil
}

// Delete removes the client record.
// Returns ErrClientNotFound if the client doesn't exist.
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	collection := r.db.Collection(ClientCollectionName)

	result, err := collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		r.logger.Error("Failed to delete client",
			"client_id", id.String(),
			"error", err)
		return fmt.Errorf("failed to delete client: %w", err)
	}

	if result.DeletedCount == 0 {
		return client.ErrClientNotFound{ClientID: id}
	}

	return nil
}
