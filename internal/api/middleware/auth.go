package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "некорректный токен авторизации"
)

var (
	ErrMissingToken = errors.New("middleware: missing bearer token")
	ErrInvalidToken = errors.New("middleware: invalid token")
)

// Claims содержимое токена идентификации
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Auth проверяет заголовок Authorization: Bearer <JWT> (HS256)
// и кладет domain.Actor в контекст запроса
func Auth(secret string, logger Logger) mux.MiddlewareFunc {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := ParseActor(r.Header.Get("Authorization"), key)
			if err != nil {
				logger.Warn("%s %s - Unauthorized: %v", r.Method, r.URL.Path, err)
				if errors.Is(err, ErrMissingToken) {
					handlers.RespondUnauthorized(w, msgMissingToken)
				} else {
					handlers.RespondUnauthorized(w, msgInvalidToken)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// ParseActor разбирает значение заголовка Authorization
func ParseActor(header string, secret []byte) (domain.Actor, error) {
	if header == "" {
		return domain.Actor{}, ErrMissingToken
	}

	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(tokenStr) == "" {
		return domain.Actor{}, fmt.Errorf("%w: expected bearer scheme", ErrInvalidToken)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(tokenStr), claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return domain.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	role := domain.Role(claims.Role)
	if claims.UserID <= 0 || !role.IsValid() {
		return domain.Actor{}, fmt.Errorf("%w: bad claims user_id=%d role=%q", ErrInvalidToken, claims.UserID, claims.Role)
	}

	return domain.Actor{UserID: claims.UserID, Role: role}, nil
}

// WithActor кладет actor в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor достает actor, положенный Auth
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
