package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BarberService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	BarberID        int64    `json:"barberId"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"`
}

// ToUseCaseRequest собирает запрос к use case из query параметров
// serviceId и durationMinutes опциональны, но хотя бы один должен прийти
func ToUseCaseRequest(barberID int64, dateStr, serviceIDStr, durationStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		BarberID: barberID,
		Date:     date,
	}

	if serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ServiceID = &serviceID
	}

	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = &duration
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}

	return &AvailableSlotsResponse{
		BarberID:        resp.BarberID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
