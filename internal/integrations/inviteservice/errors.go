package inviteservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("inviteservice client: internal error")

	// ErrUnavailable возвращается, когда сервис приглашений недоступен
	ErrUnavailable = errors.New("inviteservice client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("inviteservice client: invalid response")
)
