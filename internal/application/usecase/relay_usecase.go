package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/diillson/aws-cost-watch/internal/domain/repository"
	"github.com/diillson/aws-cost-watch/internal/domain/service"
	"github.com/diillson/aws-cost-watch/internal/shared/types"
)

// TestNotificationText é enviado quando o evento não tem Records.
const TestNotificationText = "Test notification from AWS Cost Calculator"

// RelayUseCase forwards transport notifications to the chat channel.
type RelayUseCase struct {
	chat    repository.ChatRepository
	console types.ConsoleInterface
}

// NewRelayUseCase cria o relay. chat nil faz o relay apenas registrar aviso.
func NewRelayUseCase(chat repository.ChatRepository, console types.ConsoleInterface) *RelayUseCase {
	return &RelayUseCase{chat: chat, console: console}
}

type relayPayload struct {
	Records []json.RawMessage `json:"Records"`
	Message *string           `json:"message"`
}

// Handle processa um evento bruto de invocação (normalmente um evento SNS).
// Cada registro vira uma mensagem; o primeiro erro de envio interrompe o
// processamento e gera uma mensagem de erro best-effort.
func (uc *RelayUseCase) Handle(ctx context.Context, payload []byte) (entity.RunOutcome, error) {
	run := newPipelineRun(entity.FlowRelay, uc.console)

	var texts []string
	var parsed relayPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		uc.console.LogWarning("Relay payload is not a JSON object: %s", err)
		texts = append(texts, service.Format(entity.UnknownEvent{Raw: payload}))
	} else if len(parsed.Records) == 0 {
		text := TestNotificationText
		if parsed.Message != nil {
			text = *parsed.Message
		}
		texts = append(texts, text)
	} else {
		for _, record := range parsed.Records {
			texts = append(texts, service.Format(DecodeRecord(record)))
		}
	}

	return uc.send(ctx, run, texts)
}

// Forward envia um único evento já decodificado, usado pelo consumidor NATS.
func (uc *RelayUseCase) Forward(ctx context.Context, ev entity.NotificationEvent) (entity.RunOutcome, error) {
	run := newPipelineRun(entity.FlowRelay, uc.console)
	return uc.send(ctx, run, []string{service.Format(ev)})
}

func (uc *RelayUseCase) send(ctx context.Context, run *pipelineRun, texts []string) (entity.RunOutcome, error) {
	run.enter(entity.StateNotify)

	if uc.chat == nil {
		uc.console.LogWarning("Telegram credentials not configured; %d message(s) dropped", len(texts))
		return run.done(), nil
	}

	for _, text := range texts {
		err := uc.chat.SendMessage(ctx, text, repository.ParseModeMarkdown)
		if errors.Is(err, types.ErrChatNotConfigured) {
			uc.console.LogWarning("Telegram credentials not configured; %d message(s) dropped", len(texts)-run.outcome.MessagesSent)
			return run.done(), nil
		}
		if err != nil {
			pe := run.fail(types.ErrNotificationDispatch, "send chat message", err)
			if errErr := uc.chat.SendMessage(ctx, fmt.Sprintf("⚠️ Error: %v", err), ""); errErr != nil {
				uc.console.LogWarning("Could not deliver error message: %s", errErr)
			}
			return run.outcome, pe
		}
		run.outcome.MessagesSent++
	}

	uc.console.LogInfo("Relayed %d message(s)", run.outcome.MessagesSent)
	return run.done(), nil
}

// DecodeRecord converte um registro de evento em RelayedEvent quando ele
// tem o objeto Sns, ou em UnknownEvent caso contrário.
func DecodeRecord(record json.RawMessage) entity.NotificationEvent {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(record, &fields); err != nil {
		return entity.UnknownEvent{Raw: record}
	}
	snsRaw, ok := fields["Sns"]
	if !ok || !isJSONObject(snsRaw) {
		return entity.UnknownEvent{Raw: record}
	}

	var sns events.SNSEntity
	if err := json.Unmarshal(snsRaw, &sns); err == nil {
		if sns.Subject == "" && sns.Message == "" {
			return entity.UnknownEvent{Raw: record}
		}
		ev := entity.RelayedEvent{Subject: sns.Subject, Message: sns.Message}
		if !sns.Timestamp.IsZero() {
			ev.Timestamp = sns.Timestamp.UTC().Format(entity.EventTimestampLayout)
		}
		return ev
	}

	// Timestamp fora do formato RFC 3339: lê os campos como texto.
	var loose struct {
		Subject   string `json:"Subject"`
		Message   string `json:"Message"`
		Timestamp string `json:"Timestamp"`
	}
	if err := json.Unmarshal(snsRaw, &loose); err != nil || (loose.Subject == "" && loose.Message == "") {
		return entity.UnknownEvent{Raw: record}
	}
	return entity.RelayedEvent{Subject: loose.Subject, Message: loose.Message, Timestamp: loose.Timestamp}
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
