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

	"github.com/atelier-rental-ledger/internal/domain/item"
)

const (
	// ItemCollectionName is the name of the inventory collection in MongoDB
	ItemCollectionName = "items"
)

// ItemRepository implements the item.Repository interface for MongoDB
type ItemRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewItemRepository creates a new MongoDB item repository
func NewItemRepository(logger *slog.Logger, db *mongo.Database) item.Repository {
	return &ItemRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new inventory item
func (r *ItemRepository) Create(ctx context.Context, it *item.Item) error {
	collection := r.db.Collection(ItemCollectionName)

	_, err := collection.InsertOne(ctx, it)
	if err != nil {
		r.logger.Error("Failed to create item",
			"item_id", it.ID.String(),
			"error", err)
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// GetByID retrieves an item by its ID.
// Returns ErrItemNotFound if no item exists.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	collection := r.db.Collection(ItemCollectionName)

	filter := bson.M{"id": id}
	var it item.Item
	err := collection.FindOne(ctx, filter).Decode(&it)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, item.ErrItemNotFound{ItemID: id}
		}
		r.logger.Error("Failed to get item",
			"item_id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &it, nil
}

// GetByQRCode retrieves an item by its QR code value.
// Returns ErrItemNotFound if no item carries the code.
func (r *ItemRepository) GetByQRCode(ctx context.Context, qrCode string) (*item.Item, error) {
	collection := r.db.Collection(ItemCollectionName)

	filter := bson.M{"qr_code": qrCode}
	var it item.Item
	err := collection.FindOne(ctx, filter).Decode(&it)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, item.ErrItemNotFound{QRCode: qrCode}
		}
		r.logger.Error("Failed to get item by qr code",
			"qr_code", qrCode,
			"error", err)
		return nil, fmt.Errorf("failed to get item by qr code: %w", err)
	}

	return &it, nil
}

// List retrieves inventory items, newest first. Archived items are excluded
// unless includeArchived is set.
func (r *ItemRepository) List(ctx context.Context, includeArchived bool) ([]*item.Item, error) {
	collection := r.db.Collection(ItemCollectionName)

	filter := bson.M{}
	if !includeArchived {
		filter["archived"] = false
	}
	opts := options.Find().SetSort(bson.M{"created_at": -1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list items", "error", err)
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*item.Item
	if err := cursor.All(ctx, &items); err != nil {
		r.logger.Error("Failed to decode items", "error", err)
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}

	return items, nil
}

// Update replaces the stored item with the given one.
// Returns ErrItemNotFound if the item doesn't exist.
func (r *ItemRepository) Update(ctx context.Context, it *item.Item) error {
	collection := r.db.Collection(ItemCollectionName)

	it.UpdatedAt = time.Now()
	filter := bson.M{"id": it.ID}
	result, err := collection.ReplaceOne(ctx, filter, it)
	if err != nil {
		r.logger.Error("Failed to update item",
			"item_id", it.ID.String(),
			"error", err)
		return fmt.Errorf("failed to update item: %w", err)
	}

	if result.MatchedCount == 0 {
		return item.ErrItemNotFound{ItemID: it.ID}
	}

	return nil
}

// Archive soft-deletes the item, keeping its history available
func (r *ItemRepository) Archive(ctx context.Context, id uuid.UUID) error {
	collection := r.db.Collection(ItemCollectionName)

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"archived": true, "updated_at": time.Now()}}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.Error("Failed to archive item",
			"item_id", id.String(),
			"error", err)
		return fmt.Errorf("failed to archive item: %w", err)
	}

	if result.MatchedCount == 0 {
		return item.ErrItemNotFound{ItemID: id}
	}

	return nil
}

// Delete removes the item permanently.
// Returns ErrItemNotFound if the item doesn't exist.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	collection := r.db.Collection(ItemCollectionName)

	result, err := collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		r.logger.Error("Failed to delete item",
			"item_id", id.String(),
			"error", err)
		return fmt.Errorf("failed to delete item: %w", err)
	}

	if result.DeletedCount == 0 {
		return item.ErrItemNotFound{ItemID: id}
	}

	return nil
}

// IncrementBookingCount bumps the lifetime booking counter by one
func (r *ItemRepository) IncrementBookingCount(ctx context.Context, id uuid.UUID) error {
	return r.incrementCounter(ctx, id, "booking_count")
}

// IncrementInterestCount bumps the scan-driven interest counter by one
func (r *ItemRepository) IncrementInterestCount(ctx context.Context, id uuid.UUID) error {
	return r.incrementCounter(ctx, id, "interest_count")
}

func (r *ItemRepository) incrementCounter(ctx context.Context, id uuid.UUID, field string) error {
	collection := r.db.Collection(ItemCollectionName)

	filter := bson.M{"id": id}
	update := bson.M{
		"$inc": bson.M{field: 1},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.Error("Failed to increment item counter",
			"item_id", id.String(),
			"field", field,
			"error", err)
		return fmt.Errorf("failed to increment item %s: %w", field, err)
	}

	if result.MatchedCount == 0 {
		return item.ErrItemNotFound{ItemID: id}
	}

	return nil
}

// SetBookingCount overwrites the booking counter; used only by reconciliation
func (r *ItemRepository) SetBookingCount(ctx context.Context, id uuid.UUID, count int64) error {
	collection := r.db.Collection(ItemCollectionName)

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"booking_count": count, "updated_at": time.Now()}}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.Error("Failed to set item booking count",
			"item_id", id.String(),
			"count", count,
			"error", err)
		return fmt.Errorf("failed to set item booking count: %w", err)
	}

	if result.MatchedCount == 0 {
		return item.ErrItemNotFound{ItemID: id}
	}

	return nil
}
