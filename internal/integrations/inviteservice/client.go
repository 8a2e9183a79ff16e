package inviteservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса приглашений барберов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса приглашений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Validate проверяет токен приглашения
// Недействительный токен не является ошибкой: возвращается Invite{Valid: false}
func (c *Client) Validate(ctx context.Context, token string) (*Invite, error) {
	if token == "" {
		return &Invite{Valid: false}, nil
	}

	endpoint := fmt.Sprintf("%s/internal/invites/%s", c.baseURL, url.PathEscape(token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("InviteService unavailable: %v", err)
		return nil, fmt.Errorf("%w: failed to execute request: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound, http.StatusGone:
		c.log.Info("Invite token not found or expired")
		return &Invite{Valid: false}, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var invite Invite
	if err := json.NewDecoder(resp.Body).Decode(&invite); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrInvalidResponse, err)
	}

	if invite.Valid && invite.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: valid invite without owner", ErrInvalidResponse)
	}

	return &invite, nil
}
