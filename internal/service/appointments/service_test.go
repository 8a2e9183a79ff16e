package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberService/internal/testutil/memstore"
)

type fixture struct {
	svc      *Service
	barberA  *domain.Barber
	barberB  *domain.Barber
	appt     *domain.Appointment
	dayStart time.Time
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	barberA, err := store.Barbers().Create(ctx, &domain.Barber{
		UserID: 10, Name: "Ivan", IsActive: true, CalendarVisibility: domain.CalendarVisibilityOwn,
	})
	require.NoError(t, err)
	barberB, err := store.Barbers().Create(ctx, &domain.Barber{
		UserID: 11, Name: "Petr", IsActive: true, CalendarVisibility: domain.CalendarVisibilityAll,
	})
	require.NoError(t, err)

	dayStart := time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)
	appt, err := store.Appointments().Create(ctx, &domain.Appointment{
		ClientID: 77, ClientName: "Client", BarberID: barberA.ID, ServiceID: 1,
		Date: dayStart.Add(10 * time.Hour), DurationMinutes: 30, Status: domain.StatusPending,
	})
	require.NoError(t, err)

	return fixture{
		svc:      NewService(store.Appointments(), store.Barbers(), memstore.NopLogger{}),
		barberA:  barberA,
		barberB:  barberB,
		appt:     appt,
		dayStart: dayStart,
	}
}

func TestGetByID_Access(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   domain.Actor
		wantErr error
	}{
		{"client owner", domain.Actor{UserID: 77, Role: domain.RoleClient}, nil},
		{"owning barber", domain.Actor{UserID: 10, Role: domain.RoleBarber}, nil},
		{"admin", domain.Actor{UserID: 1, Role: domain.RoleAdmin}, nil},
		{"other client", domain.Actor{UserID: 78, Role: domain.RoleClient}, domain.ErrUnauthorized},
		{"other barber", domain.Actor{UserID: 11, Role: domain.RoleBarber}, domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.svc.GetByID(ctx, f.appt.ID, tt.actor)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "pending", res.Status)
			assert.Equal(t, f.appt.Date.Add(30*time.Minute), res.EndDate)
		})
	}

	_, err := f.svc.GetByID(ctx, 999, domain.Actor{UserID: 1, Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByBarber_CalendarVisibility(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	req := &models.ListAppointmentsRequest{
		BarberID: f.barberA.ID,
		From:     f.dayStart,
		To:       f.dayStart.AddDate(0, 0, 1),
	}

	// Барбер B видит все календари
	req.Actor = domain.Actor{UserID: 11, Role: domain.RoleBarber}
	res, err := f.svc.ListByBarber(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	// Барбер A видит только свой
	req.BarberID = f.barberB.ID
	req.Actor = domain.Actor{UserID: 10, Role: domain.RoleBarber}
	_, err = f.svc.ListByBarber(ctx, req)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	req.Actor = domain.Actor{UserID: 77, Role: domain.RoleClient}
	_, err = f.svc.ListByBarber(ctx, req)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	req.To = req.From
	req.Actor = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	_, err = f.svc.ListByBarber(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
