package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/barber"
	paymentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-BarberService/internal/service/payments/models"
)

// Service сервис выплат
type Service struct {
	paymentRepo PaymentRepository
	barberRepo  BarberRepository
	logger      Logger
	now         func() time.Time
}

// NewService создает новый экземпляр сервиса выплат
func NewService(paymentRepo PaymentRepository, barberRepo BarberRepository, logger Logger) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		barberRepo:  barberRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// GetByID получает выплату; доступно администратору и барберу-получателю
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.PaymentResponse, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("GetByID: payment id=%d not found", id)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("GetByID: repository error for payment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	if err := s.checkAccess(ctx, "GetByID", payment.BarberID, actor); err != nil {
		return nil, err
	}

	return models.FromDomainPayment(payment), nil
}

// ListByBarber получает выплаты барбера, новые периоды первыми
func (s *Service) ListByBarber(ctx context.Context, barberID int64, actor domain.Actor) (*models.PaymentListResponse, error) {
	s.logger.Info("ListByBarber: barber=%d by user=%d", barberID, actor.UserID)

	if err := s.checkAccess(ctx, "ListByBarber", barberID, actor); err != nil {
		return nil, err
	}

	list, err := s.paymentRepo.ListByBarber(ctx, barberID)
	if err != nil {
		s.logger.Error("ListByBarber: repository error for barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: ListByBarber - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainPaymentList(list), nil
}

// MarkPaid переводит выплату из pending в paid (только администратор)
// Любой другой исходный статус возвращает ErrAlreadyPaid
func (s *Service) MarkPaid(ctx context.Context, id int64, actor domain.Actor) (*models.PaymentResponse, error) {
	s.logger.Info("MarkPaid: payment id=%d by user=%d", id, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("MarkPaid: user=%d is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	paid, err := s.paymentRepo.MarkPaid(ctx, id, s.now())
	if err == nil {
		s.logger.Info("MarkPaid: payment id=%d marked as paid, amount=%s", id, paid.Amount.StringFixed(2))
		return models.FromDomainPayment(paid), nil
	}
	if !errors.Is(err, paymentRepo.ErrNotUpdated) {
		s.logger.Error("MarkPaid: repository error for payment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: MarkPaid - repository error: %w", ErrInternal, err)
	}

	if _, err := s.paymentRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("MarkPaid: payment id=%d not found", id)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("MarkPaid: repository error for payment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: MarkPaid - repository error: %w", ErrInternal, err)
	}

	s.logger.Warn("MarkPaid: payment id=%d is not pending", id)
	return nil, ErrAlreadyPaid
}

// checkAccess проверяет, что пользователь - администратор или барбер-получатель
func (s *Service) checkAccess(ctx context.Context, op string, barberID int64, actor domain.Actor) error {
	barber, err := s.barberRepo.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("%s: barber id=%d not found", op, barberID)
			return ErrBarberNotFound
		}
		s.logger.Error("%s: repository error for barber id=%d: %v", op, barberID, err)
		return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	if !actor.CanActForBarber(barber) {
		s.logger.Warn("%s: access denied for user=%d to barber id=%d", op, actor.UserID, barberID)
		return ErrAccessDenied
	}
	return nil
}
