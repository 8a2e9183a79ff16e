package settle_commissions

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/barber"
)

const (
	outcomeCreated  = "created"
	outcomeSkipped  = "skipped"
	outcomeRejected = "rejected"
)

// UseCase use case для расчета комиссии барбера за период
type UseCase struct {
	barberRepo    BarberRepository
	paymentRepo   PaymentRepository
	completedRepo CompletedServiceRepository
	saleRepo      ProductSaleRepository
	commissions   CommissionProvider
	txManager     TransactionManager
	metrics       Metrics
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	barberRepo BarberRepository,
	paymentRepo PaymentRepository,
	completedRepo CompletedServiceRepository,
	saleRepo ProductSaleRepository,
	commissions CommissionProvider,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		barberRepo:    barberRepo,
		paymentRepo:   paymentRepo,
		completedRepo: completedRepo,
		saleRepo:      saleRepo,
		commissions:   commissions,
		txManager:     txManager,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute рассчитывает комиссию и создает выплату в статусе pending
//
// В расчет попадают подтвержденные и еще не оплаченные услуги и продажи с датой раньше конца периода,
// в том числе подтвержденные после расчета своих периодов. Период не может пересекаться с существующей выплатой.
// Все шаги выполняются в одной сериализуемой транзакции: строки забираются условием payment_id IS NULL,
// и если забрано меньше, чем выбрано, транзакция откатывается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Settle: barber=%d, period=%s to %s, skipEmpty=%t, user=%d",
		req.BarberID, req.PeriodStart.Format(domain.DateFormat), req.PeriodEnd.Format(domain.DateFormat),
		req.SkipEmpty, req.Actor.UserID)

	// 1. Только администратор
	if !req.Actor.IsAdmin() {
		uc.logger.Warn("Settle: user=%d is not an admin", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Проверяем границы периода
	period, err := domain.NewPeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		uc.logger.Warn("Settle: %v", err)
		uc.metrics.ObserveSettlement(outcomeRejected, 0)
		return nil, fmt.Errorf("%w: %w", ErrInvalidPeriod, err)
	}

	var (
		payment *domain.Payment
		skipped bool
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Транзакция может повторяться: результат прошлой попытки не переносим
		payment, skipped = nil, false

		// 2.1. Блокируем барбера (FOR UPDATE), чтобы расчеты одного барбера шли по очереди
		if _, err := uc.barberRepo.GetByID(txCtx, req.BarberID); err != nil {
			if errors.Is(err, barberRepo.ErrBarberNotFound) {
				uc.logger.Warn("Settle: barber id=%d not found", req.BarberID)
				return ErrBarberNotFound
			}
			uc.logger.Error("Settle: failed to get barber id=%d: %v", req.BarberID, err)
			return fmt.Errorf("%w: failed to get barber: %w", ErrInternal, err)
		}

		// 2.2. Период не пересекается с существующими выплатами
		overlaps, err := uc.paymentRepo.ExistsOverlapping(txCtx, req.BarberID, period)
		if err != nil {
			uc.logger.Error("Settle: failed to check overlapping payments: %v", err)
			return fmt.Errorf("%w: failed to check overlapping payments: %w", ErrInternal, err)
		}
		if overlaps {
			uc.logger.Warn("Settle: period overlaps an existing payment for barber id=%d", req.BarberID)
			return ErrPeriodOverlaps
		}

		// 2.3. Выбираем неоплаченные подтвержденные строки (FOR UPDATE)
		services, err := uc.completedRepo.ListUnsettled(txCtx, req.BarberID, period.End)
		if err != nil {
			uc.logger.Error("Settle: failed to list completed services: %v", err)
			return fmt.Errorf("%w: failed to list completed services: %w", ErrInternal, err)
		}
		sales, err := uc.saleRepo.ListUnsettled(txCtx, req.BarberID, period.End)
		if err != nil {
			uc.logger.Error("Settle: failed to list product sales: %v", err)
			return fmt.Errorf("%w: failed to list product sales: %w", ErrInternal, err)
		}

		if len(services) == 0 && len(sales) == 0 && req.SkipEmpty {
			uc.logger.Info("Settle: nothing to settle for barber id=%d, skipping", req.BarberID)
			skipped = true
			return nil
		}

		// 2.4. Считаем сумму
		table, err := uc.commissions.CommissionTable(txCtx, req.BarberID)
		if err != nil {
			uc.logger.Error("Settle: failed to load commission table: %v", err)
			return fmt.Errorf("%w: failed to load commission table: %w", ErrInternal, err)
		}
		amount := calculateAmount(table, services, sales)

		// 2.5. Создаем выплату
		payment, err = uc.paymentRepo.Create(txCtx, &domain.Payment{
			BarberID:          req.BarberID,
			Amount:            amount,
			PeriodStart:       period.Start,
			PeriodEnd:         period.End,
			Status:            domain.PaymentStatusPending,
			Notes:             req.Notes,
			ServicesCount:     len(services),
			ProductSalesCount: len(sales),
		})
		if err != nil {
			uc.logger.Error("Settle: failed to create payment: %v", err)
			return fmt.Errorf("%w: failed to create payment: %w", ErrInternal, err)
		}

		// 2.6. Забираем строки за выплатой
		if err := uc.claim(txCtx, "completed services", serviceIDs(services), payment.ID, uc.completedRepo.ClaimForPayment); err != nil {
			return err
		}
		if err := uc.claim(txCtx, "product sales", saleIDs(sales), payment.ID, uc.saleRepo.ClaimForPayment); err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			uc.metrics.ObserveSettlement(outcomeRejected, 0)
		}
		return nil, err
	}

	if skipped {
		uc.metrics.ObserveSettlement(outcomeSkipped, 0)
		return &Response{
			Skipped:     true,
			BarberID:    req.BarberID,
			Amount:      decimal.Zero,
			PeriodStart: period.Start,
			PeriodEnd:   period.End,
		}, nil
	}

	amount, _ := payment.Amount.Float64()
	uc.metrics.ObserveSettlement(outcomeCreated, amount)
	uc.logger.Info("Settle: created payment id=%d for barber=%d, amount=%s, services=%d, sales=%d",
		payment.ID, payment.BarberID, payment.Amount.StringFixed(2), payment.ServicesCount, payment.ProductSalesCount)

	return &Response{
		PaymentID:         payment.ID,
		BarberID:          payment.BarberID,
		Amount:            payment.Amount,
		PeriodStart:       payment.PeriodStart,
		PeriodEnd:         payment.PeriodEnd,
		Status:            string(payment.Status),
		ServicesCount:     payment.ServicesCount,
		ProductSalesCount: payment.ProductSalesCount,
		Notes:             payment.Notes,
		CreatedAt:         payment.CreatedAt,
	}, nil
}

// claim проставляет payment_id и проверяет, что забраны все выбранные строки
func (uc *UseCase) claim(
	ctx context.Context,
	what string,
	ids []int64,
	paymentID int64,
	claimFn func(ctx context.Context, ids []int64, paymentID int64) (int64, error),
) error {
	if len(ids) == 0 {
		return nil
	}

	claimed, err := claimFn(ctx, ids, paymentID)
	if err != nil {
		uc.logger.Error("Settle: failed to claim %s: %v", what, err)
		return fmt.Errorf("%w: failed to claim %s: %w", ErrInternal, what, err)
	}
	if claimed != int64(len(ids)) {
		uc.logger.Error("Settle: claimed %d of %d %s for payment id=%d", claimed, len(ids), what, paymentID)
		return fmt.Errorf("%w: %s: claimed %d of %d", ErrClaimMismatch, what, claimed, len(ids))
	}
	return nil
}
