package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgUnauthorized  = "требуется авторизация"
	msgForbidden     = "доступ запрещен"

	maxBodyBytes = 1 << 20
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// RespondJSON пишет ответ в формате JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = msgForbidden
	}
	RespondError(w, http.StatusForbidden, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = msgUnauthorized
	}
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondValidationError пишет 400 с перечнем полей, не прошедших валидацию
func RespondValidationError(w http.ResponseWriter, message string, details map[string]string) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Details: details})
}

// DecodeJSON читает тело запроса в dst и проверяет теги validate
// Неизвестные поля и пустое тело считаются ошибкой
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return fmt.Errorf("decode json: %w", err)
	}

	return Validate(dst)
}

// ValidationError ошибка валидации полей запроса
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, tag := range e.Fields {
		parts = append(parts, field+":"+tag)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Validate проверяет структуру по тегам validate
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fe.Field()] = fe.Tag()
	}
	return &ValidationError{Fields: fields}
}

// RespondDecodeError отвечает 400 на ошибку DecodeJSON
// Для ошибок валидации в ответ добавляется перечень полей
func RespondDecodeError(w http.ResponseWriter, err error, message string) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		RespondValidationError(w, message, validationErr.Fields)
		return
	}
	RespondBadRequest(w, message)
}
