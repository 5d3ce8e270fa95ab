// Package lambda expõe os fluxos como handlers do AWS Lambda.
package lambda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/diillson/aws-cost-watch/internal/application/usecase"
	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Nomes de função aceitos por Start.
const (
	FunctionDaily  = "daily"
	FunctionWeekly = "weekly"
	FunctionRelay  = "relay"
)

// Response é o formato {statusCode, body} devolvido pelas funções.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// DailyRunner e as demais interfaces permitem testar os handlers sem AWS.
type DailyRunner interface {
	Run(ctx context.Context, threshold decimal.Decimal) (entity.RunOutcome, error)
}

type WeeklyRunner interface {
	Run(ctx context.Context, opts usecase.WeeklyOptions) (entity.RunOutcome, error)
}

type RelayHandler interface {
	Handle(ctx context.Context, payload []byte) (entity.RunOutcome, error)
}

// Handlers adapta os casos de uso para o runtime do Lambda. Nenhum handler
// devolve erro ao runtime: falhas viram statusCode 500.
type Handlers struct {
	Daily         DailyRunner
	Weekly        WeeklyRunner
	Relay         RelayHandler
	Threshold     decimal.Decimal
	WeeklyOptions usecase.WeeklyOptions
}

type dailyBody struct {
	TotalCost         json.Number `json:"total_cost"`
	AlertSent         bool        `json:"alert_sent"`
	ThresholdExceeded bool        `json:"threshold_exceeded"`
	ReportKey         string      `json:"report_key"`
	NotificationError string      `json:"notification_error,omitempty"`
}

type weeklyBody struct {
	ReportKey    string      `json:"s3_key"`
	ArtifactKeys []string    `json:"artifact_keys"`
	TotalCost    json.Number `json:"total_cost"`
	SummarySent  bool        `json:"summary_sent"`
}

type relayBody struct {
	Status       string `json:"status"`
	MessagesSent int    `json:"messages_sent"`
}

type errorBody struct {
	Error string `json:"error"`
}

// HandleDaily roda o relatório diário. O evento de entrada é ignorado.
func (h *Handlers) HandleDaily(ctx context.Context, _ json.RawMessage) (Response, error) {
	outcome, err := h.Daily.Run(ctx, h.Threshold)
	if err != nil {
		return failure(err), nil
	}
	return success(dailyBody{
		TotalCost:         json.Number(outcome.TotalCost.String()),
		AlertSent:         outcome.AlertSent,
		ThresholdExceeded: outcome.ThresholdExceeded,
		ReportKey:         outcome.ArtifactKey,
		NotificationError: outcome.NotificationError,
	}), nil
}

// HandleWeekly roda o relatório semanal. O evento de entrada é ignorado.
func (h *Handlers) HandleWeekly(ctx context.Context, _ json.RawMessage) (Response, error) {
	outcome, err := h.Weekly.Run(ctx, h.WeeklyOptions)
	if err != nil {
		return failure(err), nil
	}
	return success(weeklyBody{
		ReportKey:    outcome.ArtifactKey,
		ArtifactKeys: outcome.ArtifactKeys,
		TotalCost:    json.Number(outcome.TotalCost.String()),
		SummarySent:  outcome.MessagesSent > 0,
	}), nil
}

// HandleRelay repassa um evento SNS (ou de teste) para o chat.
func (h *Handlers) HandleRelay(ctx context.Context, event json.RawMessage) (Response, error) {
	outcome, err := h.Relay.Handle(ctx, event)
	if err != nil {
		return failure(err), nil
	}
	return success(relayBody{Status: "ok", MessagesSent: outcome.MessagesSent}), nil
}

// Start inicia o runtime do Lambda com o handler da função informada.
func (h *Handlers) Start(function string) error {
	switch function {
	case FunctionDaily:
		awslambda.Start(h.HandleDaily)
	case FunctionWeekly:
		awslambda.Start(h.HandleWeekly)
	case FunctionRelay:
		awslambda.Start(h.HandleRelay)
	default:
		return fmt.Errorf("unknown lambda function %q (expected daily, weekly or relay)", function)
	}
	return nil
}

func success(body any) Response {
	data, err := json.Marshal(body)
	if err != nil {
		return failure(err)
	}
	return Response{StatusCode: http.StatusOK, Body: string(data)}
}

func failure(err error) Response {
	data, _ := json.Marshal(errorBody{Error: err.Error()})
	return Response{StatusCode: http.StatusInternalServerError, Body: string(data)}
}
