package transition_appointment

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
	"github.com/m04kA/SMC-BarberService/internal/service/completedservices"
	"github.com/m04kA/SMC-BarberService/internal/testutil/memstore"
)

// passthroughTx не сериализует транзакции, гонку разрешает только условный UPDATE
type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) IncAppointmentTransition(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[status]++
}

var (
	admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	owner = domain.Actor{UserID: 10, Role: domain.RoleBarber}
)

type fixture struct {
	uc      *UseCase
	store   *memstore.Store
	metrics *countingMetrics
	barber  *domain.Barber
	service *domain.Service
}

// setup собирает use case; при tx == nil используются транзакции хранилища с откатом
func setup(t *testing.T, tx TransactionManager) fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	if tx == nil {
		tx = store.TxManager()
	}

	barber, err := store.Barbers().Create(ctx, &domain.Barber{UserID: 10, Name: "Ivan", IsActive: true})
	require.NoError(t, err)
	service, err := store.Services().Create(ctx, &domain.Service{
		Name: "Haircut", Price: decimal.RequireFromString("25.00"), DurationMinutes: 30, IsActive: true,
	})
	require.NoError(t, err)

	recorder := completedservices.NewService(store.CompletedServices(), store.Barbers(), store.Services(), memstore.NopLogger{})
	m := &countingMetrics{counts: map[string]int{}}
	uc := NewUseCase(store.Appointments(), store.Barbers(), store.Services(), recorder, tx, m, memstore.NopLogger{})

	return fixture{uc: uc, store: store, metrics: m, barber: barber, service: service}
}

func (f fixture) appointment(t *testing.T, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()
	a, err := f.store.Appointments().Create(context.Background(), &domain.Appointment{
		ClientID: 77, ClientName: "Anna", BarberID: f.barber.ID, ServiceID: f.service.ID,
		Date: time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC), DurationMinutes: 30, Status: status,
	})
	require.NoError(t, err)
	return a
}

func (f fixture) completedFor(t *testing.T) []*domain.CompletedService {
	t.Helper()
	list, err := f.store.CompletedServices().List(context.Background(), domain.RecordFilter{BarberID: f.barber.ID})
	require.NoError(t, err)
	return list
}

func TestExecute_AllowedTransitions(t *testing.T) {
	tests := []struct {
		from, to domain.AppointmentStatus
	}{
		{domain.StatusPending, domain.StatusConfirmed},
		{domain.StatusPending, domain.StatusCompleted},
		{domain.StatusPending, domain.StatusCanceled},
		{domain.StatusConfirmed, domain.StatusCompleted},
		{domain.StatusConfirmed, domain.StatusCanceled},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			f := setup(t, nil)
			a := f.appointment(t, tt.from)

			res, err := f.uc.Execute(context.Background(), &Request{Actor: owner, AppointmentID: a.ID, TargetStatus: tt.to})
			require.NoError(t, err)
			assert.Equal(t, string(tt.to), res.Status)
			assert.Equal(t, string(tt.from), res.PreviousStatus)
			assert.Equal(t, 1, f.metrics.counts[string(tt.to)])

			if tt.to == domain.StatusCompleted {
				assert.NotNil(t, res.CompletedServiceID)
				assert.Len(t, f.completedFor(t), 1)
			} else {
				assert.Nil(t, res.CompletedServiceID)
				assert.Empty(t, f.completedFor(t))
			}
		})
	}
}

func TestExecute_CompletedServiceCopiesAppointment(t *testing.T) {
	f := setup(t, nil)
	a := f.appointment(t, domain.StatusConfirmed)

	_, err := f.uc.Execute(context.Background(), &Request{Actor: admin, AppointmentID: a.ID, TargetStatus: domain.StatusCompleted})
	require.NoError(t, err)

	list := f.completedFor(t)
	require.Len(t, list, 1)
	cs := list[0]
	assert.Equal(t, a.ID, *cs.AppointmentID)
	assert.Equal(t, a.ClientID, *cs.ClientID)
	assert.Equal(t, "Anna", cs.ClientName)
	assert.Equal(t, a.ServiceID, cs.ServiceID)
	assert.Equal(t, a.Date, cs.Date)
	assert.True(t, cs.Price.Equal(decimal.RequireFromString("25.00")))
	assert.False(t, cs.ValidatedByAdmin)
}

func TestExecute_DisallowedTransitions(t *testing.T) {
	tests := []struct {
		from, to domain.AppointmentStatus
	}{
		{domain.StatusCanceled, domain.StatusCompleted},
		{domain.StatusCanceled, domain.StatusPending},
		{domain.StatusCompleted, domain.StatusCanceled},
		{domain.StatusConfirmed, domain.StatusPending},
		{domain.StatusPending, domain.StatusPending},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			f := setup(t, nil)
			a := f.appointment(t, tt.from)

			_, err := f.uc.Execute(context.Background(), &Request{Actor: admin, AppointmentID: a.ID, TargetStatus: tt.to})
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)

			stored, err := f.store.Appointments().GetByID(context.Background(), a.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.from, stored.Status)
			assert.Empty(t, f.completedFor(t))
			assert.Empty(t, f.metrics.counts)
		})
	}
}

func TestExecute_AccessAndInput(t *testing.T) {
	f := setup(t, nil)
	a := f.appointment(t, domain.StatusPending)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{
		Actor: domain.Actor{UserID: 11, Role: domain.RoleBarber}, AppointmentID: a.ID, TargetStatus: domain.StatusConfirmed,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.Execute(ctx, &Request{
		Actor: domain.Actor{UserID: 77, Role: domain.RoleClient}, AppointmentID: a.ID, TargetStatus: domain.StatusCanceled,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.Execute(ctx, &Request{Actor: admin, AppointmentID: a.ID, TargetStatus: "done"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Execute(ctx, &Request{Actor: admin, AppointmentID: 999, TargetStatus: domain.StatusConfirmed})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_ConcurrentCompleteOneWinner(t *testing.T) {
	managers := map[string]TransactionManager{
		"serialized":       nil,
		"conditional only": passthroughTx{},
	}

	for name, tx := range managers {
		t.Run(name, func(t *testing.T) {
			f := setup(t, tx)
			a := f.appointment(t, domain.StatusConfirmed)

			const workers = 10
			var (
				wg      sync.WaitGroup
				start   = make(chan struct{})
				results = make(chan error, workers)
			)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					<-start
					_, err := f.uc.Execute(context.Background(), &Request{
						Actor: admin, AppointmentID: a.ID, TargetStatus: domain.StatusCompleted,
					})
					results <- err
				}()
			}
			close(start)
			wg.Wait()
			close(results)

			wins, losses := 0, 0
			for err := range results {
				switch {
				case err == nil:
					wins++
				case errors.Is(err, domain.ErrInvalidTransition):
					losses++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}

			assert.Equal(t, 1, wins)
			assert.Equal(t, workers-1, losses)
			assert.Len(t, f.completedFor(t), 1)
		})
	}
}

// failingRecorder сохраняет выполненную услугу и затем падает
type failingRecorder struct {
	next CompletedServiceRecorder
}

var errInsertFailed = errors.New("insert failed")

func (r failingRecorder) RecordFromAppointment(ctx context.Context, a *domain.Appointment, s *domain.Service) (*domain.CompletedService, error) {
	if _, err := r.next.RecordFromAppointment(ctx, a, s); err != nil {
		return nil, err
	}
	return nil, errInsertFailed
}

func TestExecute_RecorderFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	f := setup(t, nil)
	a := f.appointment(t, domain.StatusPending)

	recorder := completedservices.NewService(f.store.CompletedServices(), f.store.Barbers(), f.store.Services(), memstore.NopLogger{})
	uc := NewUseCase(
		f.store.Appointments(), f.store.Barbers(), f.store.Services(),
		failingRecorder{next: recorder}, f.store.TxManager(), f.metrics, memstore.NopLogger{},
	)

	_, err := uc.Execute(ctx, &Request{Actor: owner, AppointmentID: a.ID, TargetStatus: domain.StatusCompleted})
	require.ErrorIs(t, err, errInsertFailed)

	stored, err := f.store.Appointments().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Empty(t, f.completedFor(t))
	assert.Zero(t, f.metrics.counts[string(domain.StatusCompleted)])

	// После отката переход снова возможен
	res, err := f.uc.Execute(ctx, &Request{Actor: owner, AppointmentID: a.ID, TargetStatus: domain.StatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), res.Status)
	assert.Len(t, f.completedFor(t), 1)
}
