package types

import (
	"errors"
	"fmt"
)

var (
	ErrMissingBucket      = errors.New("report bucket is not configured. Set REPORT_BUCKET or --bucket")
	ErrUnsupportedStorage = errors.New("unsupported storage backend")
	ErrChatNotConfigured  = errors.New("telegram credentials not configured")
)

// ErrorKind classifica as falhas de uma execução do pipeline.
type ErrorKind string

const (
	// ErrUpstreamQuery: a consulta de billing falhou. Fatal.
	ErrUpstreamQuery ErrorKind = "UpstreamQueryError"
	// ErrPersistence: a gravação de um artefato falhou. Fatal.
	ErrPersistence ErrorKind = "PersistenceError"
	// ErrNotificationDispatch: envio best-effort falhou. Nunca é fatal.
	ErrNotificationDispatch ErrorKind = "NotificationDispatchError"
	// ErrConfiguration: configuração inválida para a execução. Fatal.
	ErrConfiguration ErrorKind = "ConfigurationError"
)

// PipelineError is the typed error returned by the pipeline entry points.
type PipelineError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// NewPipelineError cria um PipelineError.
func NewPipelineError(kind ErrorKind, op string, err error) *PipelineError {
	return &PipelineError{Kind: kind, Op: op, Err: err}
}

func (e *PipelineError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Fatal reports whether the error fails the invocation.
func (e *PipelineError) Fatal() bool {
	return e.Kind != ErrNotificationDispatch
}

// IsKind verifica se err (ou algum erro encadeado) é um PipelineError do tipo kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}
