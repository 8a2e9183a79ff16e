package settle_commissions

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// calculateAmount суммирует долю барбера по услугам и продажам
// Округление выполняется один раз, на итоговой сумме
func calculateAmount(
	table *domain.CommissionTable,
	services []*domain.CompletedService,
	sales []*domain.ProductSale,
) decimal.Decimal {
	total := decimal.Zero

	for _, cs := range services {
		total = total.Add(table.Cut(cs.ServiceID, cs.Price))
	}

	for _, sale := range sales {
		total = total.Add(sale.Commission())
	}

	return domain.RoundAmount(total)
}

func serviceIDs(list []*domain.CompletedService) []int64 {
	ids := make([]int64, 0, len(list))
	for _, cs := range list {
		ids = append(ids, cs.ID)
	}
	return ids
}

func saleIDs(list []*domain.ProductSale) []int64 {
	ids := make([]int64, 0, len(list))
	for _, s := range list {
		ids = append(ids, s.ID)
	}
	return ids
}
