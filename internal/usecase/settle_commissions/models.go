package settle_commissions

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Request модель запроса на расчет комиссии барбера за период [PeriodStart, PeriodEnd)
type Request struct {
	Actor       domain.Actor
	BarberID    int64
	PeriodStart time.Time
	PeriodEnd   time.Time
	SkipEmpty   bool    // не создавать выплату, если нечего рассчитывать
	Notes       *string // комментарий к выплате (опционально)
}

// Response модель ответа с созданной выплатой
// При Skipped = true выплата не создавалась и PaymentID = 0
type Response struct {
	Skipped           bool
	PaymentID         int64
	BarberID          int64
	Amount            decimal.Decimal // округлено до копеек
	PeriodStart       time.Time
	PeriodEnd         time.Time
	Status            string
	ServicesCount     int
	ProductSalesCount int
	Notes             *string
	CreatedAt         time.Time
}
