package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

const dateFormat = "2006-01-02"

// PathInt64 достает положительный int64 из переменной пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("path variable %s is missing", name)
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("path variable %s must be positive", name)
	}
	return value, nil
}

// ParseTime разбирает момент времени в формате RFC3339 или дату YYYY-MM-DD (полночь UTC)
func ParseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(dateFormat, raw)
}

// QueryTime разбирает необязательный query параметр со временем
// Пустое значение дает nil
func QueryTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	t, err := ParseTime(raw)
	if err != nil {
		return nil, fmt.Errorf("query parameter %s: %w", name, err)
	}
	return &t, nil
}

// QueryBool разбирает необязательный булев query параметр
func QueryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
