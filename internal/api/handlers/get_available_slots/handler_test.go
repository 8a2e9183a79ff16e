package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/testutil/memstore"
	getAvailableSlots "github.com/m04kA/SMC-BarberService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func get(uc GetAvailableSlotsUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/barbers/{barberId}/available-slots", NewHandler(uc, memstore.NopLogger{}).Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_ReturnsSlots(t *testing.T) {
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:            date,
		BarberID:        4,
		DurationMinutes: 60,
		Slots:           []types.TimeString{"09:00", "09:30", "11:00"},
	}}

	w := get(uc, "/barbers/4/available-slots?date=2026-10-20&serviceId=2")
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(4), uc.got.BarberID)
	assert.Equal(t, date, uc.got.Date)
	require.NotNil(t, uc.got.ServiceID)
	assert.Equal(t, int64(2), *uc.got.ServiceID)
	assert.Nil(t, uc.got.DurationMinutes)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"09:00", "09:30", "11:00"}, body.Slots)
	assert.Equal(t, "2026-10-20", body.Date)
}

func TestHandle_EmptyListIsNotNull(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:            time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		BarberID:        4,
		DurationMinutes: 30,
	}}

	w := get(uc, "/barbers/4/available-slots?date=2026-10-20&durationMinutes=30")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slots":[]`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "missing date", target: "/barbers/4/available-slots?serviceId=2", status: http.StatusBadRequest},
		{name: "missing duration", target: "/barbers/4/available-slots?date=2026-10-20", status: http.StatusBadRequest},
		{name: "bad date", target: "/barbers/4/available-slots?date=20.10.2026&serviceId=2", status: http.StatusBadRequest},
		{name: "bad barber", target: "/barbers/x/available-slots?date=2026-10-20&serviceId=2", status: http.StatusBadRequest},
		{name: "service not found", target: "/barbers/4/available-slots?date=2026-10-20&serviceId=99",
			err: getAvailableSlots.ErrServiceNotFound, status: http.StatusNotFound},
		{name: "bad duration", target: "/barbers/4/available-slots?date=2026-10-20&durationMinutes=-5",
			err: getAvailableSlots.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", target: "/barbers/4/available-slots?date=2026-10-20&serviceId=2",
			err: getAvailableSlots.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
