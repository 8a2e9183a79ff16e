package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/testutil/memstore"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

type fixture struct {
	uc       *UseCase
	store    *memstore.Store
	barber   *domain.Barber
	inactive *domain.Barber
	service  *domain.Service
}

func setup(t *testing.T, now time.Time) fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	barber, err := store.Barbers().Create(ctx, &domain.Barber{UserID: 10, Name: "Ivan", IsActive: true})
	require.NoError(t, err)
	inactive, err := store.Barbers().Create(ctx, &domain.Barber{UserID: 11, Name: "Petr", IsActive: false})
	require.NoError(t, err)
	service, err := store.Services().Create(ctx, &domain.Service{
		Name: "Haircut", Price: decimal.NewFromInt(25), DurationMinutes: 60, IsActive: true,
	})
	require.NoError(t, err)

	window := domain.WorkingWindow{
		OpenTime:           "09:00",
		CloseTime:          "12:00",
		GranularityMinutes: 30,
		Location:           time.UTC,
	}
	uc := NewUseCase(store.Appointments(), store.Barbers(), store.Services(), window, memstore.NopLogger{})
	uc.timeProvider = fixedTime(now)

	return fixture{uc: uc, store: store, barber: barber, inactive: inactive, service: service}
}

func (f fixture) book(t *testing.T, start time.Time, minutes int, status domain.AppointmentStatus) {
	t.Helper()
	_, err := f.store.Appointments().Create(context.Background(), &domain.Appointment{
		ClientID: 77, ClientName: "Client", BarberID: f.barber.ID, ServiceID: f.service.ID,
		Date: start, DurationMinutes: minutes, Status: status,
	})
	require.NoError(t, err)
}

func labels(slots []types.TimeString) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}

var day = time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)

func TestExecute_EmptyCalendar(t *testing.T) {
	f := setup(t, day.AddDate(0, 0, -1))

	res, err := f.uc.Execute(context.Background(), &Request{
		BarberID: f.barber.ID, Date: day, DurationMinutes: ptr.Ptr(60),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, labels(res.Slots))
}

func TestExecute_ExcludesBlockingAppointments(t *testing.T) {
	f := setup(t, day.AddDate(0, 0, -1))
	f.book(t, day.Add(10*time.Hour), 30, domain.StatusPending)
	f.book(t, day.Add(11*time.Hour+30*time.Minute), 30, domain.StatusCanceled)

	res, err := f.uc.Execute(context.Background(), &Request{
		BarberID: f.barber.ID, Date: day, ServiceID: ptr.Ptr(f.service.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, 60, res.DurationMinutes)
	// 09:00-10:00 касается записи 10:00, 10:30 начинается сразу после нее
	assert.Equal(t, []string{"09:00", "10:30", "11:00"}, labels(res.Slots))
}

func TestExecute_CompletedAppointmentsStillBlock(t *testing.T) {
	f := setup(t, day.AddDate(0, 0, -1))
	f.book(t, day.Add(9*time.Hour), 180, domain.StatusCompleted)

	res, err := f.uc.Execute(context.Background(), &Request{
		BarberID: f.barber.ID, Date: day, DurationMinutes: ptr.Ptr(30),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Slots)
}

func TestExecute_TodayRespectsCurrentTime(t *testing.T) {
	f := setup(t, day.Add(10*time.Hour+5*time.Minute))

	res, err := f.uc.Execute(context.Background(), &Request{
		BarberID: f.barber.ID, Date: day, DurationMinutes: ptr.Ptr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30", "11:00", "11:30"}, labels(res.Slots))

	f.uc.window.MinNoticeMinutes = 60
	res, err = f.uc.Execute(context.Background(), &Request{
		BarberID: f.barber.ID, Date: day, DurationMinutes: ptr.Ptr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"11:30"}, labels(res.Slots))
}

func TestExecute_EmptyResults(t *testing.T) {
	f := setup(t, day.Add(24*time.Hour))
	ctx := context.Background()

	tests := []struct {
		name string
		req  *Request
	}{
		{"past date", &Request{BarberID: f.barber.ID, Date: day, DurationMinutes: ptr.Ptr(30)}},
		{"unknown barber", &Request{BarberID: 999, Date: day.AddDate(0, 0, 2), DurationMinutes: ptr.Ptr(30)}},
		{"inactive barber", &Request{BarberID: f.inactive.ID, Date: day.AddDate(0, 0, 2), DurationMinutes: ptr.Ptr(30)}},
		{"longer than the day", &Request{BarberID: f.barber.ID, Date: day.AddDate(0, 0, 2), DurationMinutes: ptr.Ptr(240)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.uc.Execute(ctx, tt.req)
			require.NoError(t, err)
			assert.Empty(t, res.Slots)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	f := setup(t, day)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{BarberID: f.barber.ID, Date: day})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Execute(ctx, &Request{BarberID: f.barber.ID, Date: day, DurationMinutes: ptr.Ptr(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Execute(ctx, &Request{BarberID: f.barber.ID, Date: day, ServiceID: ptr.Ptr(int64(999))})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
