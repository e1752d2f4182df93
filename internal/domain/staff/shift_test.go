package staff

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStaff(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		s, err := NewStaff("Noa Cohen", "noa@example.com", RoleStaff)
		require.NoError(t, err)
		assert.True(t, s.Active)
		assert.Equal(t, RoleStaff, s.Role)
	})

	t.Run("InvalidRole", func(t *testing.T) {
		_, err := NewStaff("Noa Cohen", "noa@example.com", "manager")
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := NewStaff("", "noa@example.com", RoleAdmin)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("EmptyEmail", func(t *testing.T) {
		_, err := NewStaff("Noa Cohen", "", RoleAdmin)
		assert.ErrorIs(t, err, ErrEmptyEmail)
	})
}

func TestShift_Close(t *testing.T) {
	checkIn := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	t.Run("ComputesTotalHours", func(t *testing.T) {
		shift := NewShift(uuid.New(), checkIn)
		require.True(t, shift.IsOpen())

		err := shift.Close(checkIn.Add(7*time.Hour + 30*time.Minute))
		require.NoError(t, err)

		assert.False(t, shift.IsOpen())
		assert.InDelta(t, 7.5, shift.TotalHours, 0.001)
	})

	t.Run("AlreadyClosed", func(t *testing.T) {
		shift := NewShift(uuid.New(), checkIn)
		require.NoError(t, shift.Close(checkIn.Add(time.Hour)))

		err := shift.Close(checkIn.Add(2 * time.Hour))
		assert.ErrorIs(t, err, ErrShiftAlreadyClosed)
	})

	t.Run("CheckOutBeforeCheckIn", func(t *testing.T) {
		shift := NewShift(uuid.New(), checkIn)
		err := shift.Close(checkIn.Add(-time.Minute))
		assert.ErrorIs(t, err, ErrCheckOutBeforeIn)
	})
}
