package productsales

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/barber"
	saleRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/productsale"
	"github.com/m04kA/SMC-BarberService/internal/service/productsales/models"
)

// Service сервис учета продаж товаров
type Service struct {
	saleRepo       ProductSaleRepository
	barberRepo     BarberRepository
	productPercent decimal.Decimal
	logger         Logger
}

// NewService создает новый экземпляр сервиса продаж
// productPercent - процент барбера, фиксируемый в каждой новой продаже
func NewService(
	saleRepo ProductSaleRepository,
	barberRepo BarberRepository,
	productPercent decimal.Decimal,
	logger Logger,
) *Service {
	return &Service{
		saleRepo:       saleRepo,
		barberRepo:     barberRepo,
		productPercent: productPercent,
		logger:         logger,
	}
}

// Record записывает продажу товара
func (s *Service) Record(ctx context.Context, req *models.RecordRequest) (*models.ProductSaleResponse, error) {
	s.logger.Info("Record: barber=%d, product=%q, qty=%d, unitPrice=%s by user=%d",
		req.BarberID, req.ProductName, req.Quantity, req.UnitPrice.String(), req.Actor.UserID)

	name := strings.TrimSpace(req.ProductName)
	if name == "" || len(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: product name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must not be negative", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	barber, err := s.getBarber(ctx, "Record", req.BarberID)
	if err != nil {
		return nil, err
	}
	if !req.Actor.CanActForBarber(barber) {
		s.logger.Warn("Record: user=%d cannot record for barber id=%d", req.Actor.UserID, req.BarberID)
		return nil, ErrAccessDenied
	}

	created, err := s.saleRepo.Create(ctx, &domain.ProductSale{
		BarberID:          req.BarberID,
		ProductName:       name,
		Quantity:          req.Quantity,
		UnitPrice:         req.UnitPrice,
		CommissionPercent: s.productPercent,
		Date:              req.Date,
	})
	if err != nil {
		s.logger.Error("Record: repository error: %v", err)
		return nil, fmt.Errorf("%w: Record - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Record: created product sale id=%d", created.ID)
	return models.FromDomainProductSale(created), nil
}

// Validate подтверждает продажу (только администратор)
func (s *Service) Validate(ctx context.Context, id int64, actor domain.Actor) (*models.ProductSaleResponse, error) {
	s.logger.Info("Validate: product sale id=%d by user=%d", id, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("Validate: user=%d is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	validated, err := s.saleRepo.MarkValidated(ctx, id)
	if err == nil {
		return models.FromDomainProductSale(validated), nil
	}
	if !errors.Is(err, saleRepo.ErrNotUpdated) {
		s.logger.Error("Validate: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Validate - repository error: %w", ErrInternal, err)
	}

	if _, err := s.saleRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, saleRepo.ErrProductSaleNotFound) {
			s.logger.Warn("Validate: product sale id=%d not found", id)
			return nil, ErrProductSaleNotFound
		}
		s.logger.Error("Validate: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Validate - repository error: %w", ErrInternal, err)
	}

	s.logger.Warn("Validate: product sale id=%d already validated", id)
	return nil, ErrAlreadyValidated
}

// List получает продажи барбера
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ProductSaleListResponse, error) {
	if req.From != nil && req.To != nil && !req.To.After(*req.From) {
		return nil, fmt.Errorf("%w: 'to' must be after 'from'", ErrInvalidInput)
	}

	barber, err := s.getBarber(ctx, "List", req.BarberID)
	if err != nil {
		return nil, err
	}
	if !req.Actor.CanActForBarber(barber) {
		return nil, ErrAccessDenied
	}

	list, err := s.saleRepo.List(ctx, domain.RecordFilter{
		BarberID:        req.BarberID,
		From:            req.From,
		To:              req.To,
		UnvalidatedOnly: req.UnvalidatedOnly,
	})
	if err != nil {
		s.logger.Error("List: repository error for barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainProductSaleList(list), nil
}

func (s *Service) getBarber(ctx context.Context, op string, id int64) (*domain.Barber, error) {
	barber, err := s.barberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("%s: barber id=%d not found", op, id)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("%s: repository error for barber id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return barber, nil
}
