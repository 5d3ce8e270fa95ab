package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/diillson/aws-cost-watch/internal/domain/repository"
	"github.com/diillson/aws-cost-watch/internal/domain/service"
	"github.com/diillson/aws-cost-watch/internal/shared/types"
)

// WeeklyOptions controla o relatório periódico.
type WeeklyOptions struct {
	Days      int
	Prefix    string
	WriteHTML bool
	WritePDF  bool
}

// WeeklyReportUseCase runs the periodic export flow.
type WeeklyReportUseCase struct {
	billing   repository.BillingRepository
	artifacts repository.ArtifactRepository
	notifier  repository.NotificationRepository
	renderer  repository.ReportRenderer
	accounts  repository.AccountRepository
	console   types.ConsoleInterface
	now       func() time.Time
}

// NewWeeklyReportUseCase cria o caso de uso. notifier nil desativa o resumo.
func NewWeeklyReportUseCase(
	billing repository.BillingRepository,
	artifacts repository.ArtifactRepository,
	notifier repository.NotificationRepository,
	renderer repository.ReportRenderer,
	console types.ConsoleInterface,
) *WeeklyReportUseCase {
	return &WeeklyReportUseCase{
		billing:   billing,
		artifacts: artifacts,
		notifier:  notifier,
		renderer:  renderer,
		console:   console,
		now:       time.Now,
	}
}

// WithAccountRepository habilita a identificação da conta no resultado.
func (uc *WeeklyReportUseCase) WithAccountRepository(accounts repository.AccountRepository) *WeeklyReportUseCase {
	uc.accounts = accounts
	return uc
}

// Run exporta os últimos opts.Days dias até hoje (inclusive). A chave do CSV
// depende da semana ISO de hoje, então execuções na mesma semana sobrescrevem
// o mesmo arquivo.
func (uc *WeeklyReportUseCase) Run(ctx context.Context, opts WeeklyOptions) (entity.RunOutcome, error) {
	outcome, _, err := uc.RunWithResult(ctx, opts)
	return outcome, err
}

// RunWithResult é o Run que também devolve a agregação da janela, nil quando
// o FETCH não chegou a completar. A CLI usa a agregação para as tabelas.
func (uc *WeeklyReportUseCase) RunWithResult(ctx context.Context, opts WeeklyOptions) (entity.RunOutcome, *entity.AggregationResult, error) {
	run := newPipelineRun(entity.FlowWeekly, uc.console)

	if opts.Days <= 0 {
		return run.outcome, nil, run.fail(types.ErrConfiguration, "window", fmt.Errorf("days must be positive, got %d", opts.Days))
	}

	today := startOfDay(uc.now())
	window := entity.NewDailyWindow(today.AddDate(0, 0, -opts.Days), today.AddDate(0, 0, 1))
	if err := window.Validate(); err != nil {
		return run.outcome, nil, run.fail(types.ErrConfiguration, "window", err)
	}

	resolveAccount(ctx, uc.accounts, run)

	run.enter(entity.StateFetch)
	resp, err := uc.billing.GetDailyCostByService(ctx, window)
	if err != nil {
		pe := run.fail(types.ErrUpstreamQuery, "get cost and usage", err)
		reportFailure(ctx, uc.notifier, run, service.SubjectWeeklyError, pe)
		return run.outcome, nil, pe
	}

	result := service.Aggregate(resp, window)
	run.outcome.TotalCost = result.TotalCost

	run.enter(entity.StatePersist)
	steps := []struct {
		name    string
		enabled bool
		render  func() (entity.ReportArtifact, error)
	}{
		{"weekly CSV", true, func() (entity.ReportArtifact, error) {
			return uc.renderer.RenderWeeklyCSV(resp, opts.Prefix, today)
		}},
		{"dashboard", opts.WriteHTML, func() (entity.ReportArtifact, error) {
			return uc.renderer.RenderDashboardHTML(result)
		}},
		{"weekly PDF", opts.WritePDF, func() (entity.ReportArtifact, error) {
			return uc.renderer.RenderWeeklyPDF(result, opts.Prefix, today)
		}},
	}
	for _, step := range steps {
		if !step.enabled {
			continue
		}
		if err := persist(ctx, uc.artifacts, run, step.name, step.render); err != nil {
			reportFailure(ctx, uc.notifier, run, service.SubjectWeeklyError, err)
			return run.outcome, &result, err
		}
	}

	if uc.notifier == nil {
		return run.done(), &result, nil
	}

	run.enter(entity.StateNotify)
	summary := entity.WeeklySummaryEvent{
		TopServices: service.TopServices(result, entity.MaxTopServices),
		WindowStart: window.Start,
		WindowEnd:   window.End,
	}
	if err := uc.notifier.Publish(ctx, service.SubjectWeeklySummary, service.Format(summary)); err != nil {
		run.notificationFailed("publish weekly summary", err)
		return run.done(), &result, nil
	}
	run.outcome.MessagesSent = 1

	return run.done(), &result, nil
}
