package entity

import "github.com/shopspring/decimal"

// Content types dos artefatos gravados.
const (
	ContentTypeJSON = "application/json"
	ContentTypeCSV  = "text/csv"
	ContentTypeHTML = "text/html"
	ContentTypePDF  = "application/pdf"
)

// ReportArtifact is a rendered report ready to be written to storage.
// Writing the same key again replaces the previous content.
type ReportArtifact struct {
	Key         string `json:"key"`
	Body        []byte `json:"-"`
	ContentType string `json:"content_type"`
}

// Flow identifica o fluxo que produziu um RunOutcome.
type Flow string

const (
	FlowDaily  Flow = "daily"
	FlowWeekly Flow = "weekly"
	FlowRelay  Flow = "relay"
)

// PipelineState is a step of the per-invocation state machine.
type PipelineState string

const (
	StateFetch    PipelineState = "FETCH"
	StatePersist  PipelineState = "PERSIST"
	StateEvaluate PipelineState = "EVALUATE"
	StateNotify   PipelineState = "NOTIFY"
	StateDone     PipelineState = "DONE"
	StateFailed   PipelineState = "FAILED"
)

// RunOutcome é o resultado estruturado de uma invocação. Sempre é
// preenchido, mesmo quando a execução falha.
type RunOutcome struct {
	Flow              Flow            `json:"flow"`
	Success           bool            `json:"success"`
	State             PipelineState   `json:"state"`
	AccountID         string          `json:"account_id,omitempty"`
	ArtifactKey       string          `json:"artifact_key,omitempty"`
	ArtifactKeys      []string        `json:"artifact_keys,omitempty"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	ThresholdExceeded bool            `json:"threshold_exceeded"`
	AlertSent         bool            `json:"alert_sent"`
	MessagesSent      int             `json:"messages_sent,omitempty"`
	NotificationError string          `json:"notification_error,omitempty"`
	Error             string          `json:"error,omitempty"`
}
