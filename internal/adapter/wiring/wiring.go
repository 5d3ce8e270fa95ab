// Package wiring builds the use cases from a validated configuration,
// choosing the storage and transport adapters it names.
package wiring

import (
	"context"
	"errors"

	"github.com/diillson/aws-cost-watch/internal/adapter/driven/aws"
	"github.com/diillson/aws-cost-watch/internal/adapter/driven/export"
	"github.com/diillson/aws-cost-watch/internal/adapter/driven/nats"
	"github.com/diillson/aws-cost-watch/internal/adapter/driven/storage"
	"github.com/diillson/aws-cost-watch/internal/adapter/driven/telegram"
	"github.com/diillson/aws-cost-watch/internal/application/usecase"
	"github.com/diillson/aws-cost-watch/internal/domain/repository"
	"github.com/diillson/aws-cost-watch/internal/shared/types"
)

// Reports agrupa os casos de uso dos relatórios diário e semanal.
type Reports struct {
	Daily  *usecase.DailyReportUseCase
	Weekly *usecase.WeeklyReportUseCase

	closers []func() error
}

// Close libera conexões abertas pelos adapters (NATS).
func (r *Reports) Close() {
	for _, c := range r.closers {
		_ = c()
	}
}

// BuildReports monta os repositórios e os casos de uso de relatório.
func BuildReports(ctx context.Context, cfg *types.Config, console types.ConsoleInterface) (*Reports, error) {
	if err := cfg.Validate(); err != nil {
		return nil, types.NewPipelineError(types.ErrConfiguration, "validate config", err)
	}

	awsCfg, err := aws.NewConfigProvider(cfg.Profile, cfg.Region).Config(ctx)
	if err != nil {
		return nil, types.NewPipelineError(types.ErrConfiguration, "aws config", err)
	}

	var artifacts repository.ArtifactRepository
	switch cfg.Storage {
	case types.StorageLocal:
		artifacts, err = storage.NewLocalRepository(cfg.OutputDir)
	default:
		artifacts, err = aws.NewArtifactRepositoryFromConfig(awsCfg, cfg.ReportBucket)
	}
	if err != nil {
		return nil, types.NewPipelineError(types.ErrConfiguration, "artifact storage", err)
	}

	reports := &Reports{}

	var notifier repository.NotificationRepository
	if cfg.NotificationsEnabled() {
		switch cfg.Transport {
		case types.TransportNATS:
			publisher, err := nats.Connect(cfg.NATSURL, cfg.NATSSubject)
			if err != nil {
				// sem transporte o relatório ainda é gerado; só os alertas se perdem
				console.LogWarning("Notifications disabled: %s", err)
			} else {
				notifier = publisher
				reports.closers = append(reports.closers, publisher.Close)
			}
		default:
			notifier = aws.NewNotificationRepositoryFromConfig(awsCfg, cfg.SNSTopicARN)
		}
	} else {
		console.LogInfo("No notification sink configured; alerts are disabled")
	}

	billing := aws.NewBillingRepositoryFromConfig(awsCfg)
	accounts := aws.NewAccountRepositoryFromConfig(awsCfg)
	renderer := export.NewReportRenderer(cfg.DailyReportKey, cfg.DashboardKey)

	reports.Daily = usecase.NewDailyReportUseCase(billing, artifacts, notifier, renderer, console).
		WithAccountRepository(accounts)
	reports.Weekly = usecase.NewWeeklyReportUseCase(billing, artifacts, notifier, renderer, console).
		WithAccountRepository(accounts)

	return reports, nil
}

// WeeklyOptions converte a configuração nas opções do relatório semanal.
func WeeklyOptions(cfg *types.Config) usecase.WeeklyOptions {
	return usecase.WeeklyOptions{
		Days:      cfg.Days,
		Prefix:    cfg.ReportPrefix,
		WriteHTML: cfg.WriteHTML,
		WritePDF:  cfg.WritePDF,
	}
}

// BuildRelay monta o relay para o Telegram. Sem credenciais o relay apenas
// registra aviso para cada mensagem.
func BuildRelay(cfg *types.Config, console types.ConsoleInterface) *usecase.RelayUseCase {
	if !cfg.ChatEnabled() {
		return usecase.NewRelayUseCase(nil, console)
	}
	return usecase.NewRelayUseCase(telegram.NewClient(cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChatID), console)
}

// ConnectConsumer abre a assinatura NATS usada pelo relay em modo listen.
func ConnectConsumer(cfg *types.Config) (*nats.Publisher, error) {
	if cfg.NATSURL == "" {
		return nil, errors.New("relay listen needs a NATS URL (nats_url or COST_WATCH_NATS_URL)")
	}
	return nats.Connect(cfg.NATSURL, cfg.NATSSubject)
}
