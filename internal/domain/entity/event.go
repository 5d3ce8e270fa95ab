package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// MaxTopServices limita a lista de serviços em alertas e resumos.
const MaxTopServices = 5

// EventTimestampLayout formata o horário de eventos repassados (UTC, ms).
const EventTimestampLayout = "2006-01-02T15:04:05.000Z"

// NotificationEvent is implemented by every event the formatter can render.
type NotificationEvent interface {
	notificationEvent()
}

// AlertEvent is a transient cost-spike event. It only exists for the
// duration of a single dispatch and is never persisted.
type AlertEvent struct {
	TotalCost   decimal.Decimal `json:"total_cost"`
	Threshold   decimal.Decimal `json:"threshold"`
	TopServices []ServiceCost   `json:"top_services"`
	WindowStart time.Time       `json:"window_start"`
}

// WeeklySummaryEvent é o resumo opcional do relatório periódico.
type WeeklySummaryEvent struct {
	TopServices []ServiceCost `json:"top_services"`
	WindowStart time.Time     `json:"window_start"`
	WindowEnd   time.Time     `json:"window_end"`
}

// RelayedEvent is an upstream notification being forwarded to chat.
type RelayedEvent struct {
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

// UnknownEvent carrega um registro que não foi reconhecido pelo relay.
type UnknownEvent struct {
	Raw json.RawMessage `json:"raw"`
}

func (AlertEvent) notificationEvent()         {}
func (WeeklySummaryEvent) notificationEvent() {}
func (RelayedEvent) notificationEvent()       {}
func (UnknownEvent) notificationEvent()       {}
