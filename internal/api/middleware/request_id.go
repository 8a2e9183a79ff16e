package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	requestIDKey contextKey = "request_id"
)

// Logger интерфейс логгера для middleware
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RequestID берет X-Request-ID из запроса или генерирует новый,
// возвращает его в ответе и пишет строку access-лога
func RequestID(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, requestID)
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID)))

			logger.Info("%s %s - status=%d duration=%s request_id=%s",
				r.Method, r.URL.Path, rec.status, time.Since(start), requestID)
		})
	}
}

// GetRequestID возвращает ID запроса из контекста
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
