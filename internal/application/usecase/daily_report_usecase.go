package usecase

import (
	"context"
	"time"

	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/diillson/aws-cost-watch/internal/domain/repository"
	"github.com/diillson/aws-cost-watch/internal/domain/service"
	"github.com/diillson/aws-cost-watch/internal/shared/types"
	"github.com/shopspring/decimal"
)

// DailyReportUseCase runs the daily collect, persist, evaluate and notify flow.
type DailyReportUseCase struct {
	billing   repository.BillingRepository
	artifacts repository.ArtifactRepository
	notifier  repository.NotificationRepository
	renderer  repository.ReportRenderer
	accounts  repository.AccountRepository
	console   types.ConsoleInterface
	now       func() time.Time
}

// NewDailyReportUseCase cria o caso de uso. notifier nil desativa os alertas.
func NewDailyReportUseCase(
	billing repository.BillingRepository,
	artifacts repository.ArtifactRepository,
	notifier repository.NotificationRepository,
	renderer repository.ReportRenderer,
	console types.ConsoleInterface,
) *DailyReportUseCase {
	return &DailyReportUseCase{
		billing:   billing,
		artifacts: artifacts,
		notifier:  notifier,
		renderer:  renderer,
		console:   console,
		now:       time.Now,
	}
}

// WithAccountRepository habilita a identificação da conta no resultado.
func (uc *DailyReportUseCase) WithAccountRepository(accounts repository.AccountRepository) *DailyReportUseCase {
	uc.accounts = accounts
	return uc
}

// Run processa o dia anterior (UTC). O erro retornado, quando não nil, é
// sempre um *types.PipelineError e o RunOutcome vem preenchido mesmo assim.
func (uc *DailyReportUseCase) Run(ctx context.Context, threshold decimal.Decimal) (entity.RunOutcome, error) {
	run := newPipelineRun(entity.FlowDaily, uc.console)

	today := startOfDay(uc.now())
	window := entity.NewDailyWindow(today.AddDate(0, 0, -1), today)
	if err := window.Validate(); err != nil {
		return run.outcome, run.fail(types.ErrConfiguration, "window", err)
	}
	if threshold.IsNegative() {
		return run.outcome, run.fail(types.ErrConfiguration, "threshold", errNegativeThreshold)
	}

	resolveAccount(ctx, uc.accounts, run)

	run.enter(entity.StateFetch)
	resp, err := uc.billing.GetDailyCostByService(ctx, window)
	if err != nil {
		pe := run.fail(types.ErrUpstreamQuery, "get cost and usage", err)
		reportFailure(ctx, uc.notifier, run, service.SubjectDailyError, pe)
		return run.outcome, pe
	}

	result := service.Aggregate(resp, window)
	run.outcome.TotalCost = result.TotalCost
	uc.console.LogInfo("Collected %d service costs for %s, total %s", result.RecordCount, window, service.Dollars(result.TotalCost))

	run.enter(entity.StatePersist)
	if err := persist(ctx, uc.artifacts, run, "daily", func() (entity.ReportArtifact, error) {
		return uc.renderer.RenderDailyJSON(resp)
	}); err != nil {
		reportFailure(ctx, uc.notifier, run, service.SubjectDailyError, err)
		return run.outcome, err
	}

	run.enter(entity.StateEvaluate)
	alert := service.EvaluateThreshold(result, threshold)
	if alert == nil {
		uc.console.LogInfo("Daily cost %s is within threshold %s", service.Dollars(result.TotalCost), service.Dollars(threshold))
		return run.done(), nil
	}
	run.outcome.ThresholdExceeded = true

	if uc.notifier == nil {
		uc.console.LogWarning("Daily cost %s exceeds threshold %s but no notification sink is configured", service.Dollars(result.TotalCost), service.Dollars(threshold))
		return run.done(), nil
	}

	run.enter(entity.StateNotify)
	if err := uc.notifier.Publish(ctx, service.AlertSubject(*alert), service.Format(*alert)); err != nil {
		run.notificationFailed("publish alert", err)
		return run.done(), nil
	}
	run.outcome.AlertSent = true
	run.outcome.MessagesSent = 1

	return run.done(), nil
}
