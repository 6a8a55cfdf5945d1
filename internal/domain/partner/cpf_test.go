package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCPF(t *testing.T) {
	t.Run("accepts valid CPF", func(t *testing.T) {
		normalized, err := NormalizeCPF("11144477735")
		require.NoError(t, err)
		assert.Equal(t, "11144477735", normalized)
	})

	t.Run("strips formatting", func(t *testing.T) {
		normalized, err := NormalizeCPF("111.444.777-35")
		require.NoError(t, err)
		assert.Equal(t, "11144477735", normalized)
	})

	t.Run("rejects repeated digits", func(t *testing.T) {
		_, err := NormalizeCPF("11111111111")
		assert.ErrorIs(t, err, ErrInvalidCPF)
	})

	t.Run("rejects tampered check digit", func(t *testing.T) {
		_, err := NormalizeCPF("11144477736")
		assert.ErrorIs(t, err, ErrInvalidCPF)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := NormalizeCPF("1114447773")
		assert.ErrorIs(t, err, ErrInvalidCPF)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := NormalizeCPF("")
		assert.ErrorIs(t, err, ErrInvalidCPF)
	})
}

func TestIsValidCPF(t *testing.T) {
	assert.True(t, IsValidCPF("111.444.777-35"))
	assert.False(t, IsValidCPF("123.456.789-00"))
}
