package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNewProductVariant(t *testing.T) {
	productID := uuid.New()

	t.Run("creates variant with valid inputs", func(t *testing.T) {
		variant, err := NewProductVariant(productID, "SKU-001", dec("19.99"))
		require.NoError(t, err)

		assert.Equal(t, productID, variant.ProductID)
		assert.Equal(t, "SKU-001", variant.SKU)
		assert.True(t, variant.Price.Equal(dec("19.99")))
		assert.Nil(t, variant.SalePrice)
		assert.True(t, variant.IsActive)
		assert.Equal(t, 0, variant.Stock)
	})

	t.Run("fails with nil product", func(t *testing.T) {
		_, err := NewProductVariant(uuid.Nil, "SKU-001", dec("19.99"))
		require.Error(t, err)
	})

	t.Run("fails with empty SKU", func(t *testing.T) {
		_, err := NewProductVariant(productID, "  ", dec("19.99"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SKU cannot be empty")
	})

	t.Run("fails with zero price", func(t *testing.T) {
		_, err := NewProductVariant(productID, "SKU-001", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Price must be positive")
	})
}

func TestVariantPricing(t *testing.T) {
	productID := uuid.New()

	t.Run("accepts sale price below price", func(t *testing.T) {
		variant, _ := NewProductVariant(productID, "SKU-001", dec("100"))
		err := variant.SetPricing(dec("100"), decPtr("79.99"))
		require.NoError(t, err)
		require.NotNil(t, variant.SalePrice)
		assert.True(t, variant.SalePrice.Equal(dec("79.99")))
	})

	t.Run("rejects sale price equal to price", func(t *testing.T) {
		variant, _ := NewProductVariant(productID, "SKU-001", dec("100"))
		err := variant.SetPricing(dec("100"), decPtr("100"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "less than price")
	})

	t.Run("rejects sale price above price", func(t *testing.T) {
		variant, _ := NewProductVariant(productID, "SKU-001", dec("100"))
		err := variant.SetPricing(dec("100"), decPtr("120"))
		require.Error(t, err)
	})

	t.Run("clears sale price", func(t *testing.T) {
		variant, _ := NewProductVariant(productID, "SKU-001", dec("100"))
		require.NoError(t, variant.SetPricing(dec("100"), decPtr("80")))
		require.NoError(t, variant.SetPricing(dec("100"), nil))
		assert.Nil(t, variant.SalePrice)
	})

	t.Run("EffectivePrice prefers sale price", func(t *testing.T) {
		variant, _ := NewProductVariant(productID, "SKU-001", dec("100"))
		assert.True(t, variant.EffectivePrice().Equal(dec("100")))

		require.NoError(t, variant.SetPricing(dec("100"), decPtr("80")))
		assert.True(t, variant.EffectivePrice().Equal(dec("80")))
	})
}

func TestVariantStock(t *testing.T) {
	variant, _ := NewProductVariant(uuid.New(), "SKU-001", dec("10"))

	t.Run("sets stock", func(t *testing.T) {
		require.NoError(t, variant.SetStock(25))
		assert.Equal(t, 25, variant.Stock)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		err := variant.SetStock(-1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "negative")
	})
}

func TestVariantStatus(t *testing.T) {
	t.Run("deactivate then activate", func(t *testing.T) {
		variant, _ := NewProductVariant(uuid.New(), "SKU-001", dec("10"))

		require.NoError(t, variant.Deactivate())
		assert.False(t, variant.IsActive)

		require.Error(t, variant.Deactivate())

		require.NoError(t, variant.Activate())
		assert.True(t, variant.IsActive)

		require.Error(t, variant.Activate())
	})
}
