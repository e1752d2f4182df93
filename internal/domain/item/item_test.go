package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		it, err := NewItem("Black Cocktail Dress", "https://cdn.example.com/img/42.jpg", "QR-0042", 85000)
		require.NoError(t, err)

		assert.Equal(t, "Black Cocktail Dress", it.Name)
		assert.Equal(t, StatusAvailable, it.Status)
		assert.Equal(t, int64(85000), it.RentalPrice)
		assert.Zero(t, it.BookingCount)
		assert.Zero(t, it.InterestCount)
		assert.False(t, it.Archived)
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := NewItem("", "", "", 1000)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		_, err := NewItem("Dress", "", "", -1)
		assert.ErrorIs(t, err, ErrNegativePrice)
	})

	t.Run("ZeroPriceAllowed", func(t *testing.T) {
		_, err := NewItem("Sample Dress", "", "", 0)
		assert.NoError(t, err)
	})
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusAvailable, StatusRented, StatusCleaning, StatusRepair} {
		assert.True(t, ValidStatus(s), string(s))
	}
	assert.False(t, ValidStatus("sold"))
	assert.False(t, ValidStatus(""))
}
