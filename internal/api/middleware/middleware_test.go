package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/testutil/memstore"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, userID int64, role string, ttl time.Duration) string {
	t.Helper()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedRouter(t *testing.T, reached *domain.Actor) *mux.Router {
	r := mux.NewRouter()
	r.Use(Auth(testSecret, memstore.NopLogger{}))
	r.HandleFunc("/protected", func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		require.True(t, ok)
		*reached = actor
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestAuth_ValidToken(t *testing.T) {
	var actor domain.Actor
	router := protectedRouter(t, &actor)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.SigningMethodHS256, 42, "barber", time.Hour))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.Actor{UserID: 42, Role: domain.RoleBarber}, actor)
}

func TestAuth_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "basic scheme", header: "Basic dGVzdA=="},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "wrong secret", header: "Bearer " + signToken(t, "other", jwt.SigningMethodHS256, 1, "admin", time.Hour)},
		{name: "expired", header: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, 1, "admin", -time.Minute)},
		{name: "wrong algorithm", header: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS384, 1, "admin", time.Hour)},
		{name: "unknown role", header: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, 1, "root", time.Hour)},
		{name: "missing user", header: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, 0, "client", time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var actor domain.Actor
			router := protectedRouter(t, &actor)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, domain.Actor{}, actor)
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(memstore.NopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("keeps incoming id", func(t *testing.T) {
		incoming := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, incoming)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, incoming, seen)
		assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))
	})

	t.Run("generates id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})
}

type httpObservation struct {
	method, path, status string
}

type fakeHTTPMetrics struct {
	observed []httpObservation
}

func (f *fakeHTTPMetrics) ObserveHTTPRequest(method, path, status string, _ time.Duration) {
	f.observed = append(f.observed, httpObservation{method: method, path: path, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/payments/{paymentId}/pay", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/payments/17/pay", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, m.observed, 1)
	assert.Equal(t, httpObservation{method: http.MethodPatch, path: "/payments/{paymentId}/pay", status: "409"}, m.observed[0])
}
