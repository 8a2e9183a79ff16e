package settle_commissions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/testutil/memstore"
	settleCommissions "github.com/m04kA/SMC-BarberService/internal/usecase/settle_commissions"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *settleCommissions.Request) (*settleCommissions.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*settleCommissions.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

var admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}

func serve(uc SettleCommissionsUseCase, actor *domain.Actor, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/barbers/{barberId}/settlements", NewHandler(uc, memstore.NopLogger{}).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle_Created(t *testing.T) {
	created := time.Date(2026, 10, 13, 9, 0, 0, 0, time.UTC)
	resp := &settleCommissions.Response{
		PaymentID:     5,
		BarberID:      7,
		Amount:        decimal.RequireFromString("12.5"),
		PeriodStart:   time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		Status:        string(domain.PaymentStatusPending),
		ServicesCount: 1,
		CreatedAt:     created,
	}
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *settleCommissions.Request) bool {
		return req.BarberID == 7 &&
			req.Actor == admin &&
			!req.SkipEmpty &&
			req.PeriodStart.Equal(time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)) &&
			req.PeriodEnd.Equal(time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC))
	})).Return(resp, nil).Once()

	w := serve(uc, &admin, "/barbers/7/settlements", `{"periodStart":"2026-10-05","periodEnd":"2026-10-12"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	uc.AssertExpectations(t)

	var body PaymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "12.50", body.Amount)
	assert.Equal(t, int64(5), body.ID)
	assert.Equal(t, "pending", body.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "barber not found", err: settleCommissions.ErrBarberNotFound, status: http.StatusNotFound},
		{name: "not admin", err: settleCommissions.ErrAccessDenied, status: http.StatusForbidden},
		{name: "overlap", err: settleCommissions.ErrPeriodOverlaps, status: http.StatusConflict},
		{name: "inverted period", err: settleCommissions.ErrInvalidPeriod, status: http.StatusConflict},
		{name: "internal", err: settleCommissions.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := serve(uc, &admin, "/barbers/7/settlements",
				`{"periodStart":"2026-10-05","periodEnd":"2026-10-12"}`)
			assert.Equal(t, tt.status, w.Code)
			uc.AssertExpectations(t)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "bad barber id", path: "/barbers/abc/settlements", body: `{"periodStart":"2026-10-05","periodEnd":"2026-10-12"}`},
		{name: "zero barber id", path: "/barbers/0/settlements", body: `{"periodStart":"2026-10-05","periodEnd":"2026-10-12"}`},
		{name: "missing end", path: "/barbers/7/settlements", body: `{"periodStart":"2026-10-05"}`},
		{name: "bad date", path: "/barbers/7/settlements", body: `{"periodStart":"05.10.2026","periodEnd":"2026-10-12"}`},
		{name: "unknown field", path: "/barbers/7/settlements", body: `{"periodStart":"2026-10-05","periodEnd":"2026-10-12","amount":"1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			w := serve(uc, &admin, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_NoActor(t *testing.T) {
	uc := &mockUseCase{}
	w := serve(uc, nil, "/barbers/7/settlements", `{"periodStart":"2026-10-05","periodEnd":"2026-10-12"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_SkipEmpty(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *settleCommissions.Request) bool {
		return req.SkipEmpty
	})).Return(&settleCommissions.Response{Skipped: true, BarberID: 7}, nil).Once()

	w := serve(uc, &admin, "/barbers/7/settlements",
		`{"periodStart":"2026-10-05","periodEnd":"2026-10-12","skipEmpty":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)

	var body SkippedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Skipped)
	assert.Equal(t, int64(7), body.BarberID)
}
