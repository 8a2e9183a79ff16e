package payments

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/testutil/memstore"
)

func TestPayments(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	barber, err := store.Barbers().Create(ctx, &domain.Barber{UserID: 10, Name: "Ivan", IsActive: true})
	require.NoError(t, err)

	start := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	older, err := store.Payments().Create(ctx, &domain.Payment{
		BarberID: barber.ID, Amount: decimal.RequireFromString("12.5"), Status: domain.PaymentStatusPending,
		PeriodStart: start.AddDate(0, 0, -7), PeriodEnd: start,
	})
	require.NoError(t, err)
	newer, err := store.Payments().Create(ctx, &domain.Payment{
		BarberID: barber.ID, Amount: decimal.Zero, Status: domain.PaymentStatusPending,
		PeriodStart: start, PeriodEnd: start.AddDate(0, 0, 7),
	})
	require.NoError(t, err)

	svc := NewService(store.Payments(), store.Barbers(), memstore.NopLogger{})
	paidAt := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return paidAt }

	admin := domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	owner := domain.Actor{UserID: 10, Role: domain.RoleBarber}
	stranger := domain.Actor{UserID: 11, Role: domain.RoleBarber}

	t.Run("list newest first", func(t *testing.T) {
		list, err := svc.ListByBarber(ctx, barber.ID, owner)
		require.NoError(t, err)
		require.Equal(t, 2, list.Total)
		assert.Equal(t, newer.ID, list.Payments[0].ID)
		assert.Equal(t, "12.50", list.Payments[1].Amount)

		_, err = svc.ListByBarber(ctx, barber.ID, stranger)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("mark paid", func(t *testing.T) {
		_, err := svc.MarkPaid(ctx, older.ID, owner)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)

		paid, err := svc.MarkPaid(ctx, older.ID, admin)
		require.NoError(t, err)
		assert.Equal(t, "paid", paid.Status)
		require.NotNil(t, paid.PaymentDate)
		assert.Equal(t, paidAt, *paid.PaymentDate)

		_, err = svc.MarkPaid(ctx, older.ID, admin)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		_, err = svc.MarkPaid(ctx, 999, admin)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("get", func(t *testing.T) {
		res, err := svc.GetByID(ctx, older.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, "paid", res.Status)

		_, err = svc.GetByID(ctx, older.ID, stranger)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
