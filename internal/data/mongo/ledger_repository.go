package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/atelier-rental-ledger/internal/domain/ledger"
)

const (
	// LedgerCollectionName is the name of the ledger collection in MongoDB
	LedgerCollectionName = "ledger_entries"
)

// LedgerRepository implements the ledger.Repository interface for MongoDB
type LedgerRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewLedgerRepository creates a new MongoDB ledger repository
func NewLedgerRepository(logger *slog.Logger, db *mongo.Database) ledger.Repository {
	return &LedgerRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new ledger entry
func (r *LedgerRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	collection := r.db.Collection(LedgerCollectionName)

	_, err := collection.InsertOne(ctx, entry)
	if err != nil {
		r.logger.Error("Failed to create ledger entry",
			"entry_id", entry.ID.String(),
			"error", err)
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return nil
}

// GetByID retrieves a ledger entry by its ID.
// Returns ErrEntryNotFound if no entry exists.
func (r *LedgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	collection := r.db.Collection(LedgerCollectionName)

	filter := bson.M{"id": id}
	var entry ledger.Entry
	err := collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ledger.ErrEntryNotFound{EntryID: id}
		}
		r.logger.Error("Failed to get ledger entry",
			"entry_id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return &entry, nil
}

// ListRecent retrieves the most recent ledger entries, newest first
func (r *LedgerRepository) ListRecent(ctx context.Context, limit int) ([]*ledger.Entry, error) {
	collection := r.db.Collection(LedgerCollectionName)

	opts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to list recent ledger entries", "error", err)
		return nil, fmt.Errorf("failed to list recent ledger entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*ledger.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode ledger entries", "error", err)
		return nil, fmt.Errorf("failed to decode ledger entries: %w", err)
	}

	return entries, nil
}

// ListByBooking retrieves every entry referencing the booking, either as the
// primary related booking or through a line item. Sorted newest first.
func (r *LedgerRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*ledger.Entry, error) {
	collection := r.db.Collection(LedgerCollectionName)

	filter := bson.M{
		"$or": []bson.M{
			{"booking_id": bookingID},
			{"items.booking_id": bookingID},
		},
	}
	opts := options.Find().SetSort(bson.M{"timestamp": -1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list ledger entries by booking",
			"booking_id", bookingID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to list ledger entries by booking: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*ledger.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode ledger entries",
			"booking_id", bookingID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode ledger entries: %w", err)
	}

	return entries, nil
}

// Update replaces the stored entry with the given one.
// Returns ErrEntryNotFound if the entry doesn't exist.
func (r *LedgerRepository) Update(ctx context.Context, entry *ledger.Entry) error {
	collection := r.db.Collection(LedgerCollectionName)

	filter := bson.M{"id": entry.ID}
	result, err := collection.ReplaceOne(ctx, filter, entry)
	if err != nil {
		r.logger.Error("Failed to update ledger entry",
			"entry_id", entry.ID.String(),
			"error", err)
		return fmt.Errorf("failed to update ledger entry: %w", err)
	}

	if result.MatchedCount == 0 {
		return ledger.ErrEntryNotFound{EntryID: entry.ID}
	}

	return nil
}

// Delete removes the entry.
// Returns ErrEntryNotFound if the entry doesn't exist.
func (r *LedgerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	collection := r.db.Collection(LedgerCollectionName)

	result, err := collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		r.logger.Error("Failed to delete ledger entry",
			"entry_id", id.String(),
			"error", err)
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}

	if result.DeletedCount == 0 {
		return ledger.ErrEntryNotFound{EntryID: id}
	}

	return nil
}
