package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		c, err := NewClient("Dana Levi", "050-1234567", "dana@example.com", "Haifa")
		require.NoError(t, err)

		assert.Equal(t, "Dana Levi", c.Name)
		assert.Equal(t, "050-1234567", c.Phone)
		assert.Nil(t, c.Measurements)
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := NewClient("", "050-1234567", "", "")
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("EmptyPhone", func(t *testing.T) {
		_, err := NewClient("Dana Levi", "", "", "")
		assert.ErrorIs(t, err, ErrEmptyPhone)
	})
}
