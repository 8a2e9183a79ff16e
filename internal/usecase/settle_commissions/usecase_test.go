package settle_commissions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/testutil/memstore"
)

type staticCommissions struct {
	defaultPercent decimal.Decimal
	overrides      []*domain.Commission
}

func (s staticCommissions) CommissionTable(_ context.Context, _ int64) (*domain.CommissionTable, error) {
	return domain.NewCommissionTable(s.defaultPercent, s.overrides), nil
}

type recordedMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *recordedMetrics) ObserveSettlement(outcome string, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

var (
	admin       = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	weekStart   = time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	weekEnd     = weekStart.AddDate(0, 0, 7)
	haircutID   = int64(100)
	beardTrimID = int64(101)
)

type fixture struct {
	uc      *UseCase
	store   *memstore.Store
	metrics *recordedMetrics
	barber  *domain.Barber
}

func setup(t *testing.T, overrides ...*domain.Commission) fixture {
	t.Helper()
	store := memstore.New()
	barber, err := store.Barbers().Create(context.Background(), &domain.Barber{
		UserID: 10, Name: "Ivan", IsActive: true, PaymentPeriod: domain.PaymentPeriodWeekly,
	})
	require.NoError(t, err)

	m := &recordedMetrics{}
	uc := NewUseCase(
		store.Barbers(), store.Payments(), store.CompletedServices(), store.ProductSales(),
		staticCommissions{defaultPercent: decimal.NewFromInt(50), overrides: overrides},
		store.TxManager(), m, memstore.NopLogger{},
	)
	return fixture{uc: uc, store: store, metrics: m, barber: barber}
}

func (f fixture) service(t *testing.T, serviceID int64, price string, date time.Time, validated bool) *domain.CompletedService {
	t.Helper()
	ctx := context.Background()
	cs, err := f.store.CompletedServices().Create(ctx, &domain.CompletedService{
		BarberID: f.barber.ID, ServiceID: serviceID, ClientName: "Client",
		Price: decimal.RequireFromString(price), Date: date,
	})
	require.NoError(t, err)
	if validated {
		cs, err = f.store.CompletedServices().MarkValidated(ctx, cs.ID)
		require.NoError(t, err)
	}
	return cs
}

func (f fixture) sale(t *testing.T, qty int, unitPrice string, date time.Time) *domain.ProductSale {
	t.Helper()
	ctx := context.Background()
	s, err := f.store.ProductSales().Create(ctx, &domain.ProductSale{
		BarberID: f.barber.ID, ProductName: "Pomade", Quantity: qty,
		UnitPrice: decimal.RequireFromString(unitPrice), CommissionPercent: decimal.NewFromInt(10), Date: date,
	})
	require.NoError(t, err)
	s, err = f.store.ProductSales().MarkValidated(ctx, s.ID)
	require.NoError(t, err)
	return s
}

func (f fixture) settle(skipEmpty bool, start, end time.Time) (*Response, error) {
	return f.uc.Execute(context.Background(), &Request{
		Actor: admin, BarberID: f.barber.ID, PeriodStart: start, PeriodEnd: end, SkipEmpty: skipEmpty,
	})
}

func TestExecute_HaircutAtDefaultPercent(t *testing.T) {
	f := setup(t)
	cs := f.service(t, haircutID, "25.00", weekStart.Add(34*time.Hour), true)

	res, err := f.settle(false, weekStart, weekEnd)
	require.NoError(t, err)

	assert.Equal(t, "12.50", res.Amount.StringFixed(2))
	assert.Equal(t, "pending", res.Status)
	assert.Equal(t, 1, res.ServicesCount)
	assert.False(t, res.Skipped)

	stored, err := f.store.CompletedServices().GetByID(context.Background(), cs.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PaymentID)
	assert.Equal(t, res.PaymentID, *stored.PaymentID)
	assert.Equal(t, []string{outcomeCreated}, f.metrics.outcomes)
}

func TestExecute_OverridesSalesAndSingleRounding(t *testing.T) {
	f := setup(t, &domain.Commission{BarberID: 1, ServiceID: haircutID, Percentage: decimal.NewFromInt(60)})
	day := weekStart.Add(12 * time.Hour)

	f.service(t, haircutID, "25.00", day, true) // 15.00
	for i := 0; i < 3; i++ {
		f.service(t, beardTrimID, "0.01", day, true) // 0.005 каждая
	}
	f.sale(t, 3, "7.99", day) // 23.97 * 10% = 2.397

	res, err := f.settle(false, weekStart, weekEnd)
	require.NoError(t, err)

	// 15.00 + 0.015 + 2.397 = 17.412
	assert.Equal(t, "17.41", res.Amount.StringFixed(2))
	assert.Equal(t, 4, res.ServicesCount)
	assert.Equal(t, 1, res.ProductSalesCount)
}

func TestExecute_OnlyValidatedUnpaidRowsBeforeEnd(t *testing.T) {
	f := setup(t)
	f.service(t, haircutID, "25.00", weekStart.Add(time.Hour), true)
	late := f.service(t, haircutID, "40.00", weekStart.Add(2*time.Hour), false)
	f.service(t, haircutID, "100.00", weekEnd, true) // уже следующий период

	res, err := f.settle(false, weekStart, weekEnd)
	require.NoError(t, err)
	assert.Equal(t, "12.50", res.Amount.StringFixed(2))
	assert.Equal(t, 1, res.ServicesCount)

	// Подтвержденная после расчета услуга попадает в следующий период
	_, err = f.store.CompletedServices().MarkValidated(context.Background(), late.ID)
	require.NoError(t, err)

	next, err := f.settle(false, weekEnd, weekEnd.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Equal(t, "70.00", next.Amount.StringFixed(2))
	assert.Equal(t, 2, next.ServicesCount)
}

func TestExecute_InvalidPeriods(t *testing.T) {
	f := setup(t)
	f.service(t, haircutID, "25.00", weekStart.Add(time.Hour), true)

	_, err := f.settle(false, weekEnd, weekStart)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = f.settle(false, weekStart, weekStart)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = f.settle(false, weekStart, weekEnd)
	require.NoError(t, err)

	// Пересечение с существующей выплатой
	_, err = f.settle(false, weekStart.Add(72*time.Hour), weekEnd.Add(72*time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	// Соседний период допустим
	_, err = f.settle(false, weekEnd, weekEnd.AddDate(0, 0, 7))
	assert.NoError(t, err)
}

func TestExecute_EmptyPeriod(t *testing.T) {
	f := setup(t)

	res, err := f.settle(true, weekStart, weekEnd)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Zero(t, res.PaymentID)

	payments, err := f.store.Payments().ListByBarber(context.Background(), f.barber.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)

	res, err = f.settle(false, weekStart, weekEnd)
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.True(t, res.Amount.IsZero())
	assert.NotZero(t, res.PaymentID)

	assert.Equal(t, []string{outcomeSkipped, outcomeCreated}, f.metrics.outcomes)
}

func TestExecute_Rejections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{
		Actor: domain.Actor{UserID: 10, Role: domain.RoleBarber}, BarberID: f.barber.ID,
		PeriodStart: weekStart, PeriodEnd: weekEnd,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.Execute(ctx, &Request{Actor: admin, BarberID: 999, PeriodStart: weekStart, PeriodEnd: weekEnd})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_ConcurrentSettlementsPayOnce(t *testing.T) {
	f := setup(t)
	for i := 0; i < 5; i++ {
		f.service(t, haircutID, "25.00", weekStart.Add(time.Duration(i)*time.Hour), true)
	}

	const workers = 6
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.settle(false, weekStart, weekEnd)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	created, rejected := 0, 0
	for err := range results {
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrInvalidPeriod):
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, rejected)

	payments, err := f.store.Payments().ListByBarber(context.Background(), f.barber.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "62.50", payments[0].Amount.StringFixed(2))
}

func TestCalculateAmount_RoundsOnlyTotal(t *testing.T) {
	table := domain.NewCommissionTable(decimal.NewFromInt(50), nil)
	services := []*domain.CompletedService{
		{ServiceID: 1, Price: decimal.RequireFromString("0.01")},
		{ServiceID: 1, Price: decimal.RequireFromString("0.01")},
		{ServiceID: 1, Price: decimal.RequireFromString("0.01")},
	}

	// По отдельности каждая доля 0.005 округлилась бы до 0.01, в сумме 0.015 -> 0.02
	assert.Equal(t, "0.02", calculateAmount(table, services, nil).StringFixed(2))
}

// shortClaimSales забирает строки, но сообщает, что одну перехватила другая выплата
type shortClaimSales struct {
	*memstore.ProductSales
}

func (r shortClaimSales) ClaimForPayment(ctx context.Context, ids []int64, paymentID int64) (int64, error) {
	claimed, err := r.ProductSales.ClaimForPayment(ctx, ids, paymentID)
	return claimed - 1, err
}

func TestExecute_ClaimMismatchRollsBack(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	cs := f.service(t, haircutID, "25.00", weekStart.Add(10*time.Hour), true)
	sale := f.sale(t, 2, "15.00", weekStart.Add(30*time.Hour))

	uc := NewUseCase(
		f.store.Barbers(), f.store.Payments(), f.store.CompletedServices(), shortClaimSales{f.store.ProductSales()},
		staticCommissions{defaultPercent: decimal.NewFromInt(50)},
		f.store.TxManager(), f.metrics, memstore.NopLogger{},
	)

	_, err := uc.Execute(ctx, &Request{Actor: admin, BarberID: f.barber.ID, PeriodStart: weekStart, PeriodEnd: weekEnd})
	require.ErrorIs(t, err, ErrClaimMismatch)

	payments, err := f.store.Payments().ListByBarber(ctx, f.barber.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)

	storedService, err := f.store.CompletedServices().GetByID(ctx, cs.ID)
	require.NoError(t, err)
	assert.Nil(t, storedService.PaymentID)

	storedSale, err := f.store.ProductSales().GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, storedSale.PaymentID)

	// Строки остались доступны следующему расчету
	res, err := f.settle(false, weekStart, weekEnd)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ServicesCount)
	assert.Equal(t, 1, res.ProductSalesCount)
}

// retryOnceTx повторяет транзакцию, как при ошибке сериализации на коммите
type retryOnceTx struct {
	betweenAttempts func()
}

func (r retryOnceTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	r.betweenAttempts()
	return fn(ctx)
}

func TestExecute_RetryDoesNotKeepSkippedResult(t *testing.T) {
	f := setup(t)
	m := &recordedMetrics{}
	uc := NewUseCase(
		f.store.Barbers(), f.store.Payments(), f.store.CompletedServices(), f.store.ProductSales(),
		staticCommissions{defaultPercent: decimal.NewFromInt(50)},
		retryOnceTx{betweenAttempts: func() {
			f.service(t, haircutID, "25.00", weekStart.Add(10*time.Hour), true)
		}},
		m, memstore.NopLogger{},
	)

	res, err := uc.Execute(context.Background(), &Request{
		Actor: admin, BarberID: f.barber.ID, PeriodStart: weekStart, PeriodEnd: weekEnd, SkipEmpty: true,
	})
	require.NoError(t, err)

	assert.False(t, res.Skipped)
	assert.NotZero(t, res.PaymentID)
	assert.Equal(t, "12.50", res.Amount.StringFixed(2))
	assert.Equal(t, []string{outcomeCreated}, m.outcomes)
}
