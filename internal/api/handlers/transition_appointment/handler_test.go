package transition_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/testutil/memstore"
	transitionAppointment "github.com/m04kA/SMC-BarberService/internal/usecase/transition_appointment"
)

type fakeUseCase struct {
	got  *transitionAppointment.Request
	resp *transitionAppointment.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *transitionAppointment.Request) (*transitionAppointment.Response, error) {
	f.got = req
	return f.resp, f.err
}

var barber = domain.Actor{UserID: 30, Role: domain.RoleBarber}

func patch(uc TransitionAppointmentUseCase, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}/status", NewHandler(uc, memstore.NopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), barber))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle_Completed(t *testing.T) {
	csID := int64(77)
	uc := &fakeUseCase{resp: &transitionAppointment.Response{
		ID:                 12,
		BarberID:           3,
		ServiceID:          1,
		Date:               time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC),
		Status:             "completed",
		PreviousStatus:     "confirmed",
		CompletedServiceID: &csID,
		UpdatedAt:          time.Date(2026, 10, 20, 11, 0, 0, 0, time.UTC),
	}}

	w := patch(uc, "/appointments/12/status", `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(12), uc.got.AppointmentID)
	assert.Equal(t, domain.StatusCompleted, uc.got.TargetStatus)
	assert.Equal(t, barber, uc.got.Actor)

	var body TransitionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "confirmed", body.PreviousStatus)
	require.NotNil(t, body.CompletedServiceID)
	assert.Equal(t, csID, *body.CompletedServiceID)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: transitionAppointment.ErrAppointmentNotFound, status: http.StatusNotFound},
		{name: "foreign barber", err: transitionAppointment.ErrAccessDenied, status: http.StatusForbidden},
		{name: "terminal status", err: transitionAppointment.ErrInvalidTransition, status: http.StatusConflict},
		{name: "internal", err: transitionAppointment.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := patch(&fakeUseCase{err: tt.err}, "/appointments/12/status", `{"status":"completed"}`)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHandle_RejectsUnknownStatus(t *testing.T) {
	uc := &fakeUseCase{}
	w := patch(uc, "/appointments/12/status", `{"status":"done"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, uc.got)
}
