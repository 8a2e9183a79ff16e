package productsales

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/productsales/models"
	"github.com/m04kA/SMC-BarberService/internal/testutil/memstore"
)

func TestProductSales(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	barber, err := store.Barbers().Create(ctx, &domain.Barber{UserID: 10, Name: "Ivan", IsActive: true})
	require.NoError(t, err)

	svc := NewService(store.ProductSales(), store.Barbers(), decimal.NewFromInt(domain.DefaultProductCommissionPercent), memstore.NopLogger{})
	admin := domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	owner := domain.Actor{UserID: 10, Role: domain.RoleBarber}

	sale, err := svc.Record(ctx, &models.RecordRequest{
		Actor: owner, BarberID: barber.ID, ProductName: "Pomade", Quantity: 3,
		UnitPrice: decimal.RequireFromString("7.99"), Date: time.Date(2026, 10, 12, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "23.97", sale.Total)
	assert.Equal(t, "10.00", sale.CommissionPercent)
	assert.False(t, sale.ValidatedByAdmin)

	_, err = svc.Record(ctx, &models.RecordRequest{
		Actor: owner, BarberID: barber.ID, ProductName: "Pomade", Quantity: 0,
		UnitPrice: decimal.NewFromInt(5), Date: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Record(ctx, &models.RecordRequest{
		Actor: domain.Actor{UserID: 11, Role: domain.RoleBarber}, BarberID: barber.ID, ProductName: "Pomade",
		Quantity: 1, UnitPrice: decimal.NewFromInt(5), Date: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Validate(ctx, sale.ID, owner)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	validated, err := svc.Validate(ctx, sale.ID, admin)
	require.NoError(t, err)
	assert.True(t, validated.ValidatedByAdmin)

	_, err = svc.Validate(ctx, sale.ID, admin)
	assert.ErrorIs(t, err, domain.ErrAlreadyValidated)

	_, err = svc.Validate(ctx, 999, admin)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := svc.List(ctx, &models.ListRequest{Actor: owner, BarberID: barber.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	list, err = svc.List(ctx, &models.ListRequest{Actor: admin, BarberID: barber.ID, UnvalidatedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
}
