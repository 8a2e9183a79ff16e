package autosettle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	settleCommissions "github.com/m04kA/SMC-BarberService/internal/usecase/settle_commissions"
)

const runTimeout = 5 * time.Minute

// Summary итог одного прогона
type Summary struct {
	Created int
	Skipped int
	Failed  int
}

// Job по расписанию рассчитывает выплаты активных барберов
// за последний закрытый период их платежного цикла
type Job struct {
	barberRepo BarberRepository
	settle     SettleUseCase
	location   *time.Location
	now        func() time.Time
	logger     Logger
	cron       *cron.Cron
}

// NewJob создает job; location задает границы дней и недель
func NewJob(barberRepo BarberRepository, settle SettleUseCase, location *time.Location, logger Logger) *Job {
	if location == nil {
		location = time.UTC
	}
	return &Job{
		barberRepo: barberRepo,
		settle:     settle,
		location:   location,
		now:        time.Now,
		logger:     logger,
	}
}

// Start регистрирует прогон по cron выражению и запускает планировщик
func (j *Job) Start(schedule string) error {
	c := cron.New(cron.WithLocation(j.location))
	if _, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		j.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("autosettle: invalid schedule %q: %w", schedule, err)
	}

	j.cron = c
	c.Start()
	j.logger.Info("AutoSettle: scheduler started with schedule %q", schedule)
	return nil
}

// Stop останавливает планировщик и ждет завершения текущего прогона
func (j *Job) Stop() {
	if j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
	j.logger.Info("AutoSettle: scheduler stopped")
}

// RunOnce рассчитывает выплаты всех активных барберов
// Уже рассчитанный период и пустой период не считаются ошибкой
func (j *Job) RunOnce(ctx context.Context) Summary {
	var summary Summary

	barbers, err := j.barberRepo.List(ctx, true)
	if err != nil {
		j.logger.Error("AutoSettle: failed to list barbers: %v", err)
		return summary
	}

	now := j.now().In(j.location)
	for _, barber := range barbers {
		period := domain.LastClosedPeriod(barber.PaymentPeriod, now)

		result, err := j.settle.Execute(ctx, &settleCommissions.Request{
			Actor:       domain.SystemActor,
			BarberID:    barber.ID,
			PeriodStart: period.Start,
			PeriodEnd:   period.End,
			SkipEmpty:   true,
		})

		switch {
		case err == nil && result.Skipped:
			summary.Skipped++
		case err == nil:
			summary.Created++
			j.logger.Info("AutoSettle: payment id=%d created for barber id=%d, amount=%s",
				result.PaymentID, barber.ID, result.Amount.StringFixed(2))
		case errors.Is(err, domain.ErrInvalidPeriod):
			summary.Skipped++
			j.logger.Info("AutoSettle: barber id=%d period %s..%s already settled",
				barber.ID, period.Start.Format(domain.DateFormat), period.End.Format(domain.DateFormat))
		default:
			summary.Failed++
			j.logger.Error("AutoSettle: failed to settle barber id=%d: %v", barber.ID, err)
		}
	}

	j.logger.Info("AutoSettle: run finished, created=%d, skipped=%d, failed=%d",
		summary.Created, summary.Skipped, summary.Failed)
	return summary
}
