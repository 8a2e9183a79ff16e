package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCommissionTable_EffectivePercentage(t *testing.T) {
	table := NewCommissionTable(decimal.NewFromInt(50), []*Commission{
		{BarberID: 1, ServiceID: 2, Percentage: decimal.NewFromInt(60)},
	})

	assert.True(t, decimal.NewFromInt(60).Equal(table.EffectivePercentage(2)))
	assert.True(t, decimal.NewFromInt(50).Equal(table.EffectivePercentage(3)), "falls back to default")
}

func TestCommissionTable_HaircutScenario(t *testing.T) {
	table := NewCommissionTable(decimal.NewFromInt(50), nil)

	cut := table.Cut(1, decimal.RequireFromString("25.00"))

	assert.Equal(t, "12.50", RoundAmount(cut).StringFixed(2))
}

func TestRoundAmount_OnlyAtOutput(t *testing.T) {
	table := NewCommissionTable(decimal.RequireFromString("33.33"), nil)

	// three cuts of 10.00 at 33.33% are 3.333 each; rounding each would give 9.99
	total := decimal.Zero
	for i := 0; i < 3; i++ {
		total = total.Add(table.Cut(1, decimal.RequireFromString("10.00")))
	}

	assert.Equal(t, "10.00", RoundAmount(total).StringFixed(2))
}

func TestValidatePercentage(t *testing.T) {
	assert.NoError(t, ValidatePercentage(decimal.Zero))
	assert.NoError(t, ValidatePercentage(decimal.NewFromInt(100)))
	assert.ErrorIs(t, ValidatePercentage(decimal.NewFromInt(101)), ErrInvalidInput)
	assert.ErrorIs(t, ValidatePercentage(decimal.NewFromInt(-1)), ErrInvalidInput)
}

func TestProductSale_Commission(t *testing.T) {
	sale := &ProductSale{
		Quantity:          3,
		UnitPrice:         decimal.RequireFromString("12.99"),
		CommissionPercent: decimal.NewFromInt(10),
	}

	assert.Equal(t, "38.97", sale.Total().StringFixed(2))
	assert.Equal(t, "3.90", RoundAmount(sale.Commission()).StringFixed(2))
}
