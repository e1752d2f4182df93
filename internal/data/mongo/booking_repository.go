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

	"github.com/atelier-rental-ledger/internal/domain/booking"
)

const (
	// BookingCollectionName is the name of the booking collection in MongoDB
	BookingCollectionName = "bookings"
)

// BookingRepository implements the booking.Repository interface for MongoDB
type BookingRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewBookingRepository creates a new MongoDB booking repository
func NewBookingRepository(logger *slog.Logger, db *mongo.Database) booking.Repository {
	return &BookingRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new booking
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	collection := r.db.Collection(BookingCollectionName)

	_, err := collection.InsertOne(ctx, b)
	if err != nil {
		r.logger.Error("Failed to create booking",
			"booking_id", b.ID.String(),
			"error", err)
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by its ID.
// Returns ErrBookingNotFound if no booking exists.
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	collection := r.db.Collection(BookingCollectionName)

	filter := bson.M{"id": id}
	var b booking.Booking
	err := collection.FindOne(ctx, filter).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, booking.ErrBookingNotFound{BookingID: id}
		}
		r.logger.Error("Failed to get booking",
			"booking_id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &b, nil
}

// List retrieves paginated bookings sorted by event date, newest first
func (r *BookingRepository) List(ctx context.Context, limit, offset int) ([]*booking.Booking, error) {
	collection := r.db.Collection(BookingCollectionName)

	opts := options.Find().
		SetSort(bson.M{"start_date": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to list bookings", "error", err)
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

// ListActive retrieves bookings with status active, soonest event first
func (r *BookingRepository) ListActive(ctx context.Context) ([]*booking.Booking, error) {
	collection := r.db.Collection(BookingCollectionName)

	filter := bson.M{"status": booking.StatusActive}
	opts := options.Find().SetSort(bson.M{"start_date": 1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list active bookings", "error", err)
		return nil, fmt.Errorf("failed to list active bookings: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

// ListByItem retrieves every booking of the item regardless of status
func (r *BookingRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*booking.Booking, error) {
	collection := r.db.Collection(BookingCollectionName)

	filter := bson.M{"item_id": itemID}
	opts := options.Find().SetSort(bson.M{"start_date": -1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list bookings by item",
			"item_id", itemID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to list bookings by item: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

// ListOpenByItem retrieves the item's active and pending bookings, the set
// every availability check runs against
func (r *BookingRepository) ListOpenByItem(ctx context.Context, itemID uuid.UUID) ([]*booking.Booking, error) {
	collection := r.db.Collection(BookingCollectionName)

	filter := bson.M{
		"item_id": itemID,
		"status":  bson.M{"$in": []booking.Status{booking.StatusActive, booking.StatusPending}},
	}

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to list open bookings by item",
			"item_id", itemID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to list open bookings by item: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

// Update replaces the stored booking with the given one.
// Returns ErrBookingNotFound if the booking doesn't exist.
func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	collection := r.db.Collection(BookingCollectionName)

	b.UpdatedAt = time.Now()
	filter := bson.M{"id": b.ID}
	result, err := collection.ReplaceOne(ctx, filter, b)
	if err != nil {
		r.logger.Error("Failed to update booking",
			"booking_id", b.ID.String(),
			"error", err)
		return fmt.Errorf("failed to update booking: %w", err)
	}

	if result.MatchedCount == 0 {
		return booking.ErrBookingNotFound{BookingID: b.ID}
	}

	return nil
}

// Delete removes the booking.
// Returns ErrBookingNotFound if the booking doesn't exist.
func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	collection := r.db.Collection(BookingCollectionName)

	result, err := collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		r.logger.Error("Failed to delete booking",
			"booking_id", id.String(),
			"error", err)
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if result.DeletedCount == 0 {
		return booking.ErrBookingNotFound{BookingID: id}
	}

	return nil
}

// IncrementPaidAmount atomically applies a signed delta to paid_amount.
// Returns ErrBookingNotFound if the booking doesn't exist.
func (r *BookingRepository) IncrementPaidAmount(ctx context.Context, id uuid.UUID, delta int64) error {
	collection := r.db.Collection(BookingCollectionName)

	filter := bson.M{"id": id}
	update := bson.M{
		"$inc": bson.M{"paid_amount": delta},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.Error("Failed to increment booking paid amount",
			"booking_id", id.String(),
			"delta", delta,
			"error", err)
		return fmt.Errorf("failed to increment booking paid amount: %w", err)
	}

	if result.MatchedCount == 0 {
		return booking.ErrBookingNotFound{BookingID: id}
	}

	return nil
}

// CountsByItem aggregates booking totals per item for count reconciliation
func (r *BookingRepository) CountsByItem(ctx context.Context) (map[uuid.UUID]int64, error) {
	collection := r.db.Collection(BookingCollectionName)

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$item_id",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to aggregate booking counts", "error", err)
		return nil, fmt.Errorf("failed to aggregate booking counts: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ItemID uuid.UUID `bson:"_id"`
		Count  int64     `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		r.logger.Error("Failed to decode booking counts", "error", err)
		return nil, fmt.Errorf("failed to decode booking counts: %w", err)
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.ItemID] = row.Count
	}
	return counts, nil
}

func decodeBookings(ctx context.Context, cursor *mongo.Cursor) ([]*booking.Booking, error) {
	var bookings []*booking.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
