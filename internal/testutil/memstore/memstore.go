// Package memstore содержит in-memory реализации репозиториев для тестов сервисов и юзкейсов.
// Ошибки совпадают с ошибками PostgreSQL-репозиториев, условные обновления атомарны.
package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberService/internal/infra/storage/barber"
	"github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberService/internal/infra/storage/completedservice"
	"github.com/m04kA/SMC-BarberService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-BarberService/internal/infra/storage/productsale"
)

// Store общее хранилище всех таблиц
type Store struct {
	mu     sync.Mutex
	nextID int64
	now    func() time.Time

	services     map[int64]*domain.Service
	barbers      map[int64]*domain.Barber
	commissions  map[[2]int64]*domain.Commission
	appointments map[int64]*domain.Appointment
	completed    map[int64]*domain.CompletedService
	sales        map[int64]*domain.ProductSale
	payments     map[int64]*domain.Payment
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		now:          time.Now,
		services:     make(map[int64]*domain.Service),
		barbers:      make(map[int64]*domain.Barber),
		commissions:  make(map[[2]int64]*domain.Commission),
		appointments: make(map[int64]*domain.Appointment),
		completed:    make(map[int64]*domain.CompletedService),
		sales:        make(map[int64]*domain.ProductSale),
		payments:     make(map[int64]*domain.Payment),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// TxManager выполняет функцию под глобальной блокировкой транзакций.
// Если функция вернула ошибку, таблицы хранилища откатываются к состоянию до ее запуска.
// Без хранилища (нулевое значение) откат не выполняется.
// Все записи, которые должны откатываться, идут через один и тот же TxManager.
type TxManager struct {
	mu    sync.Mutex
	store *Store
}

// TxManager создает менеджер транзакций с откатом по этому хранилищу
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

func (t *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.run(ctx, fn)
}

func (t *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.run(ctx, fn)
}

func (t *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if t.store == nil {
		return fn(ctx)
	}

	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// tables копия всех таблиц; идентификаторы, как и sequence в PostgreSQL, не откатываются
type tables struct {
	services     map[int64]*domain.Service
	barbers      map[int64]*domain.Barber
	commissions  map[[2]int64]*domain.Commission
	appointments map[int64]*domain.Appointment
	completed    map[int64]*domain.CompletedService
	sales        map[int64]*domain.ProductSale
	payments     map[int64]*domain.Payment
}

func (s *Store) snapshot() tables {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tables{
		services:     cloneTable(s.services),
		barbers:      cloneTable(s.barbers),
		commissions:  cloneTable(s.commissions),
		appointments: cloneTable(s.appointments),
		completed:    cloneTable(s.completed),
		sales:        cloneTable(s.sales),
		payments:     cloneTable(s.payments),
	}
}

func (s *Store) restore(t tables) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = t.services
	s.barbers = t.barbers
	s.commissions = t.commissions
	s.appointments = t.appointments
	s.completed = t.completed
	s.sales = t.sales
	s.payments = t.payments
}

// cloneTable копирует строки, чтобы изменения на месте не попадали в снимок
func cloneTable[K comparable, V any](m map[K]*V) map[K]*V {
	out := make(map[K]*V, len(m))
	for k, v := range m {
		c := *v
		out[k] = &c
	}
	return out
}

// ============================================================
// Услуги
// ============================================================

type Services struct{ s *Store }

func (s *Store) Services() *Services { return &Services{s} }

func (r *Services) Create(_ context.Context, service *domain.Service) (*domain.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *service
	c.ID = r.s.id()
	c.CreatedAt, c.UpdatedAt = r.s.now(), r.s.now()
	r.s.services[c.ID] = &c
	out := c
	return &out, nil
}

func (r *Services) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	out := *v
	return &out, nil
}

func (r *Services) List(_ context.Context, activeOnly bool) ([]*domain.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.Service, 0)
	for _, id := range sortedKeys(r.s.services) {
		v := *r.s.services[id]
		if activeOnly && !v.IsActive {
			continue
		}
		result = append(result, &v)
	}
	return result, nil
}

func (r *Services) Update(_ context.Context, id int64, update domain.ServiceUpdate) (*domain.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	if update.Name != nil {
		v.Name = *update.Name
	}
	if update.Price != nil {
		v.Price = *update.Price
	}
	if update.DurationMinutes != nil {
		v.DurationMinutes = *update.DurationMinutes
	}
	if update.IsActive != nil {
		v.IsActive = *update.IsActive
	}
	v.UpdatedAt = r.s.now()
	out := *v
	return &out, nil
}

// ============================================================
// Барберы
// ============================================================

type Barbers struct{ s *Store }

func (s *Store) Barbers() *Barbers { return &Barbers{s} }

func (r *Barbers) Create(_ context.Context, b *domain.Barber) (*domain.Barber, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.barbers {
		if existing.UserID == b.UserID {
			return nil, barber.ErrBarberAlreadyExists
		}
	}
	c := *b
	c.ID = r.s.id()
	c.CreatedAt, c.UpdatedAt = r.s.now(), r.s.now()
	r.s.barbers[c.ID] = &c
	out := c
	return &out, nil
}

func (r *Barbers) GetByID(_ context.Context, id int64) (*domain.Barber, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.barbers[id]
	if !ok {
		return nil, barber.ErrBarberNotFound
	}
	out := *v
	return &out, nil
}

func (r *Barbers) GetByUserID(_ context.Context, userID int64) (*domain.Barber, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.barbers {
		if v.UserID == userID {
			out := *v
			return &out, nil
		}
	}
	return nil, barber.ErrBarberNotFound
}

func (r *Barbers) List(_ context.Context, activeOnly bool) ([]*domain.Barber, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.Barber, 0)
	for _, id := range sortedKeys(r.s.barbers) {
		v := *r.s.barbers[id]
		if activeOnly && !v.IsActive {
			continue
		}
		result = append(result, &v)
	}
	return result, nil
}

func (r *Barbers) Update(_ context.Context, id int64, update domain.BarberUpdate) (*domain.Barber, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.barbers[id]
	if !ok {
		return nil, barber.ErrBarberNotFound
	}
	if update.Name != nil {
		v.Name = *update.Name
	}
	if update.PaymentPeriod != nil {
		v.PaymentPeriod = *update.PaymentPeriod
	}
	if update.IsActive != nil {
		v.IsActive = *update.IsActive
	}
	if update.CalendarVisibility != nil {
		v.CalendarVisibility = *update.CalendarVisibility
		v.VisibleBarberIDs = slices.Clone(update.VisibleBarberIDs)
	}
	v.UpdatedAt = r.s.now()
	out := *v
	return &out, nil
}

// ============================================================
// Комиссии
// ============================================================

type Commissions struct{ s *Store }

func (s *Store) Commissions() *Commissions { return &Commissions{s} }

func (r *Commissions) Upsert(_ context.Context, c *domain.Commission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *c
	r.s.commissions[[2]int64{c.BarberID, c.ServiceID}] = &v
	return nil
}

func (r *Commissions) GetByBarber(_ context.Context, barberID int64) ([]*domain.Commission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.Commission, 0)
	for key, v := range r.s.commissions {
		if key[0] == barberID {
			c := *v
			result = append(result, &c)
		}
	}
	return result, nil
}

// ============================================================
// Записи
// ============================================================

type Appointments struct{ s *Store }

func (s *Store) Appointments() *Appointments { return &Appointments{s} }

func (r *Appointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *a
	c.ID = r.s.id()
	c.CreatedAt, c.UpdatedAt = r.s.now(), r.s.now()
	r.s.appointments[c.ID] = &c
	out := c
	return &out, nil
}

func (r *Appointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	out := *v
	return &out, nil
}

func (r *Appointments) GetByFilter(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.Appointment, 0)
	for _, id := range sortedKeys(r.s.appointments) {
		v := *r.s.appointments[id]
		if v.BarberID != filter.BarberID ||
			(filter.From != nil && v.Date.Before(*filter.From)) ||
			(filter.To != nil && !v.Date.Before(*filter.To)) ||
			(len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, v.Status)) {
			continue
		}
		result = append(result, &v)
	}
	slices.SortStableFunc(result, func(a, b *domain.Appointment) int { return a.Date.Compare(b.Date) })
	return result, nil
}

func (r *Appointments) UpdateStatusIf(_ context.Context, id int64, from, to domain.AppointmentStatus) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.appointments[id]
	if !ok || v.Status != from {
		return nil, appointment.ErrStatusConflict
	}
	v.Status = to
	v.UpdatedAt = r.s.now()
	out := *v
	return &out, nil
}

// ============================================================
// Выполненные услуги
// ============================================================

type CompletedServices struct{ s *Store }

func (s *Store) CompletedServices() *CompletedServices { return &CompletedServices{s} }

func (r *CompletedServices) Create(_ context.Context, cs *domain.CompletedService) (*domain.CompletedService, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cs.AppointmentID != nil {
		for _, existing := range r.s.completed {
			if existing.AppointmentID != nil && *existing.AppointmentID == *cs.AppointmentID {
				return nil, completedservice.ErrAlreadyRecorded
			}
		}
	}
	c := *cs
	c.ID = r.s.id()
	c.CreatedAt = r.s.now()
	r.s.completed[c.ID] = &c
	out := c
	return &out, nil
}

func (r *CompletedServices) GetByID(_ context.Context, id int64) (*domain.CompletedService, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.completed[id]
	if !ok {
		return nil, completedservice.ErrCompletedServiceNotFound
	}
	out := *v
	return &out, nil
}

func (r *CompletedServices) List(_ context.Context, filter domain.RecordFilter) ([]*domain.CompletedService, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.CompletedService, 0)
	for _, id := range sortedKeys(r.s.completed) {
		v := *r.s.completed[id]
		if v.BarberID != filter.BarberID || !inRange(v.Date, filter.From, filter.To) ||
			(filter.UnvalidatedOnly && v.ValidatedByAdmin) {
			continue
		}
		result = append(result, &v)
	}
	return result, nil
}

func (r *CompletedServices) ListUnsettled(_ context.Context, barberID int64, before time.Time) ([]*domain.CompletedService, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.CompletedService, 0)
	for _, id := range sortedKeys(r.s.completed) {
		v := *r.s.completed[id]
		if v.BarberID == barberID && v.ValidatedByAdmin && v.PaymentID == nil && v.Date.Before(before) {
			result = append(result, &v)
		}
	}
	return result, nil
}

func (r *CompletedServices) MarkValidated(_ context.Context, id int64) (*domain.CompletedService, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.completed[id]
	if !ok || v.ValidatedByAdmin {
		return nil, completedservice.ErrNotUpdated
	}
	now := r.s.now()
	v.ValidatedByAdmin = true
	v.ValidatedAt = &now
	out := *v
	return &out, nil
}

func (r *CompletedServices) ClaimForPayment(_ context.Context, ids []int64, paymentID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var claimed int64
	for _, id := range ids {
		if v, ok := r.s.completed[id]; ok && v.PaymentID == nil {
			pid := paymentID
			v.PaymentID = &pid
			claimed++
		}
	}
	return claimed, nil
}

// ============================================================
// Продажи товаров
// ============================================================

type ProductSales struct{ s *Store }

func (s *Store) ProductSales() *ProductSales { return &ProductSales{s} }

func (r *ProductSales) Create(_ context.Context, sale *domain.ProductSale) (*domain.ProductSale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *sale
	c.ID = r.s.id()
	c.CreatedAt = r.s.now()
	r.s.sales[c.ID] = &c
	out := c
	return &out, nil
}

func (r *ProductSales) GetByID(_ context.Context, id int64) (*domain.ProductSale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.sales[id]
	if !ok {
		return nil, productsale.ErrProductSaleNotFound
	}
	out := *v
	return &out, nil
}

func (r *ProductSales) List(_ context.Context, filter domain.RecordFilter) ([]*domain.ProductSale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.ProductSale, 0)
	for _, id := range sortedKeys(r.s.sales) {
		v := *r.s.sales[id]
		if v.BarberID != filter.BarberID || !inRange(v.Date, filter.From, filter.To) ||
			(filter.UnvalidatedOnly && v.ValidatedByAdmin) {
			continue
		}
		result = append(result, &v)
	}
	return result, nil
}

func (r *ProductSales) ListUnsettled(_ context.Context, barberID int64, before time.Time) ([]*domain.ProductSale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.ProductSale, 0)
	for _, id := range sortedKeys(r.s.sales) {
		v := *r.s.sales[id]
		if v.BarberID == barberID && v.ValidatedByAdmin && v.PaymentID == nil && v.Date.Before(before) {
			result = append(result, &v)
		}
	}
	return result, nil
}

func (r *ProductSales) MarkValidated(_ context.Context, id int64) (*domain.ProductSale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.sales[id]
	if !ok || v.ValidatedByAdmin {
		return nil, productsale.ErrNotUpdated
	}
	now := r.s.now()
	v.ValidatedByAdmin = true
	v.ValidatedAt = &now
	out := *v
	return &out, nil
}

func (r *ProductSales) ClaimForPayment(_ context.Context, ids []int64, paymentID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var claimed int64
	for _, id := range ids {
		if v, ok := r.s.sales[id]; ok && v.PaymentID == nil {
			pid := paymentID
			v.PaymentID = &pid
			claimed++
		}
	}
	return claimed, nil
}

// ============================================================
// Выплаты
// ============================================================

type Payments struct{ s *Store }

func (s *Store) Payments() *Payments { return &Payments{s} }

func (r *Payments) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *p
	c.ID = r.s.id()
	c.CreatedAt = r.s.now()
	r.s.payments[c.ID] = &c
	out := c
	return &out, nil
}

func (r *Payments) GetByID(_ context.Context, id int64) (*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.payments[id]
	if !ok {
		return nil, payment.ErrPaymentNotFound
	}
	out := *v
	return &out, nil
}

func (r *Payments) ListByBarber(_ context.Context, barberID int64) ([]*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.Payment, 0)
	for _, id := range sortedKeys(r.s.payments) {
		v := *r.s.payments[id]
		if v.BarberID == barberID {
			result = append(result, &v)
		}
	}
	slices.SortStableFunc(result, func(a, b *domain.Payment) int { return b.PeriodStart.Compare(a.PeriodStart) })
	return result, nil
}

func (r *Payments) ExistsOverlapping(_ context.Context, barberID int64, period domain.Period) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.payments {
		if v.BarberID == barberID && v.Period().Overlaps(period) {
			return true, nil
		}
	}
	return false, nil
}

func (r *Payments) MarkPaid(_ context.Context, id int64, paidAt time.Time) (*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.payments[id]
	if !ok || v.Status != domain.PaymentStatusPending {
		return nil, payment.ErrNotUpdated
	}
	v.Status = domain.PaymentStatusPaid
	v.PaymentDate = &paidAt
	out := *v
	return &out, nil
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	return to == nil || t.Before(*to)
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// NopLogger логгер, который ничего не пишет
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
