package transition_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Request модель запроса на смену статуса записи
type Request struct {
	Actor         domain.Actor
	AppointmentID int64
	TargetStatus  domain.AppointmentStatus
}

// Response модель ответа с обновленной записью
type Response struct {
	ID                 int64
	ClientID           int64
	ClientName         string
	BarberID           int64
	ServiceID          int64
	Date               time.Time
	DurationMinutes    int
	Status             string
	PreviousStatus     string
	Notes              *string
	CompletedServiceID *int64 // выставляется при переходе в completed
	UpdatedAt          time.Time
}
