package mongo

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository behavior against a live server is covered by integration
// environments; the mongo driver's concrete types make in-process testing
// impractical, so only construction is verified here.

func TestNewRepositories(t *testing.T) {
	db := &mongo.Database{}
	logger := slog.Default()

	assert.IsType(t, &ItemRepository{}, NewItemRepository(logger, db))
	assert.IsType(t, &ClientRepository{}, NewClientRepository(logger, db))
	assert.IsType(t, &BookingRepository{}, NewBookingRepository(logger, db))
	assert.IsType(t, &LedgerRepository{}, NewLedgerRepository(logger, db))
}
