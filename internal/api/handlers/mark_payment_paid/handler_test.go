package mark_payment_paid

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/payments"
	"github.com/m04kA/SMC-BarberService/internal/service/payments/models"
	"github.com/m04kA/SMC-BarberService/internal/testutil/memstore"
)

func newRouter(store *memstore.Store) *mux.Router {
	svc := payments.NewService(store.Payments(), store.Barbers(), memstore.NopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/payments/{paymentId}/pay", NewHandler(svc, memstore.NopLogger{}).Handle).Methods(http.MethodPatch)
	return r
}

func pay(r *mux.Router, paymentID int64, actor domain.Actor) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/payments/%d/pay", paymentID), nil)
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle_MarkPaidFlow(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	p, err := store.Payments().Create(ctx, &domain.Payment{
		BarberID:    3,
		Amount:      decimal.RequireFromString("12.50"),
		PeriodStart: time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		Status:      domain.PaymentStatusPending,
	})
	require.NoError(t, err)

	router := newRouter(store)
	admin := domain.Actor{UserID: 1, Role: domain.RoleAdmin}

	// Барбер не может отметить выплату
	w := pay(router, p.ID, domain.Actor{UserID: 30, Role: domain.RoleBarber})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = pay(router, p.ID, admin)
	require.Equal(t, http.StatusOK, w.Code)

	var body models.PaymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "paid", body.Status)
	assert.Equal(t, "12.50", body.Amount)
	assert.NotNil(t, body.PaymentDate)

	// Повторная отметка - конфликт
	w = pay(router, p.ID, admin)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = pay(router, p.ID+100, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandle_RequiresActor(t *testing.T) {
	router := newRouter(memstore.New())

	req := httptest.NewRequest(http.MethodPatch, "/payments/1/pay", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
