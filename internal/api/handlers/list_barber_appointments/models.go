package list_barber_appointments

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
// from и to обязательны, status можно передать несколько раз
func ToServiceRequest(r *http.Request, actor domain.Actor, barberID int64) (*models.ListAppointmentsRequest, error) {
	from, err := handlers.QueryTime(r, "from")
	if err != nil {
		return nil, err
	}
	to, err := handlers.QueryTime(r, "to")
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, errors.New("from and to are required")
	}

	req := &models.ListAppointmentsRequest{
		Actor:    actor,
		BarberID: barberID,
		From:     *from,
		To:       *to,
	}

	for _, raw := range r.URL.Query()["status"] {
		status := domain.AppointmentStatus(raw)
		if !status.IsValid() {
			return nil, fmt.Errorf("unknown status %q", raw)
		}
		req.Statuses = append(req.Statuses, status)
	}

	return req, nil
}
