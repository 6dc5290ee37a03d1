package domain_test

import (
	"testing"

	"github.com/DanielPopoola/payorder-sdk/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAmount_DefaultsCurrency(t *testing.T) {
	assert.Equal(t, "EUR", domain.NewAmount(100, "").Currency)
	assert.Equal(t, "USD", domain.NewAmount(100, "USD").Currency)
}

func TestAmountFromUnits(t *testing.T) {
	t.Run("converts to cents", func(t *testing.T) {
		a, err := domain.AmountFromUnits("12.34", "")
		require.NoError(t, err)
		assert.Equal(t, int64(1234), a.Value)
		assert.Equal(t, "EUR", a.Currency)
	})

	t.Run("rounds sub-cent values", func(t *testing.T) {
		a, err := domain.AmountFromUnits("0.015", "EUR")
		require.NoError(t, err)
		assert.Equal(t, int64(2), a.Value)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := domain.AmountFromUnits("ten euro", "EUR")
		assert.Error(t, err)
	})
}

func TestAmount_Units(t *testing.T) {
	a := domain.NewAmount(1999, "EUR")
	assert.Equal(t, "19.99", a.Units().StringFixed(2))
	assert.Equal(t, "19.99 EUR", a.String())
}
