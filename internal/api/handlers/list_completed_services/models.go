package list_completed_services

import (
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/completedservices/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
func ToServiceRequest(r *http.Request, actor domain.Actor, barberID int64) (*models.ListRequest, error) {
	from, err := handlers.QueryTime(r, "from")
	if err != nil {
		return nil, err
	}
	to, err := handlers.QueryTime(r, "to")
	if err != nil {
		return nil, err
	}
	unvalidatedOnly, err := handlers.QueryBool(r, "unvalidatedOnly")
	if err != nil {
		return nil, err
	}

	return &models.ListRequest{
		Actor:           actor,
		BarberID:        barberID,
		From:            from,
		To:              to,
		UnvalidatedOnly: unvalidatedOnly,
	}, nil
}
