package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Actor           domain.Actor
	Name            string
	Price           decimal.Decimal
	DurationMinutes int
}

// UpdateServiceRequest запрос на обновление услуги
// Все поля опциональны - обновляются только переданные значения
type UpdateServiceRequest struct {
	Actor           domain.Actor
	Name            *string
	Price           *decimal.Decimal
	DurationMinutes *int
	IsActive        *bool
}

// RegisterBarberRequest запрос на регистрацию барбера по приглашению
type RegisterBarberRequest struct {
	Actor         domain.Actor
	InviteToken   string
	Name          string
	PaymentPeriod domain.PaymentPeriod // пусто = weekly
}

// UpdateBarberRequest запрос на обновление профиля барбера
type UpdateBarberRequest struct {
	Actor              domain.Actor
	Name               *string
	PaymentPeriod      *domain.PaymentPeriod
	IsActive           *bool
	CalendarVisibility *domain.CalendarVisibility
	VisibleBarberIDs   []int64
}

// SetCommissionRequest запрос на установку процента барбера для услуги
type SetCommissionRequest struct {
	Actor      domain.Actor
	BarberID   int64
	ServiceID  int64
	Percentage decimal.Decimal
}

// Response модели

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Price           string    `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []*ServiceResponse `json:"services"`
	Total    int                `json:"total"`
}

// BarberResponse профиль барбера
type BarberResponse struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"userId"`
	Name               string    `json:"name"`
	PaymentPeriod      string    `json:"paymentPeriod"`
	IsActive           bool      `json:"isActive"`
	CalendarVisibility string    `json:"calendarVisibility"`
	VisibleBarberIDs   []int64   `json:"visibleBarberIds"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// BarberListResponse список барберов
type BarberListResponse struct {
	Barbers []*BarberResponse `json:"barbers"`
	Total   int               `json:"total"`
}

// CalendarScopeResponse барберы, чьи календари видны барберу
type CalendarScopeResponse struct {
	BarberID         int64   `json:"barberId"`
	VisibleBarberIDs []int64 `json:"visibleBarberIds"`
}

// CommissionResponse процент барбера для услуги
type CommissionResponse struct {
	BarberID   int64  `json:"barberId"`
	ServiceID  int64  `json:"serviceId"`
	Percentage string `json:"percentage"`
}

// Конвертеры

// FromDomainService конвертирует доменную услугу в ответ
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Price:           s.Price.StringFixed(2),
		DurationMinutes: s.DurationMinutes,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список услуг
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	result := make([]*ServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, FromDomainService(s))
	}
	return &ServiceListResponse{Services: result, Total: len(result)}
}

// FromDomainBarber конвертирует доменного барбера в ответ
func FromDomainBarber(b *domain.Barber) *BarberResponse {
	visible := b.VisibleBarberIDs
	if visible == nil {
		visible = []int64{}
	}
	return &BarberResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		Name:               b.Name,
		PaymentPeriod:      string(b.PaymentPeriod),
		IsActive:           b.IsActive,
		CalendarVisibility: string(b.CalendarVisibility),
		VisibleBarberIDs:   visible,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBarberList конвертирует список барберов
func FromDomainBarberList(barbers []*domain.Barber) *BarberListResponse {
	result := make([]*BarberResponse, 0, len(barbers))
	for _, b := range barbers {
		result = append(result, FromDomainBarber(b))
	}
	return &BarberListResponse{Barbers: result, Total: len(result)}
}
