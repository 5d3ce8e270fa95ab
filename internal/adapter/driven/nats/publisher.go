// Package nats publishes cost notifications on a NATS subject and consumes
// them for the chat relay.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/diillson/aws-cost-watch/internal/domain/repository"
	"github.com/nats-io/nats.go"
)

// Envelope is the JSON body published for every notification.
type Envelope struct {
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// RelayedEvent converte o envelope no evento repassado ao chat.
func (e Envelope) RelayedEvent() entity.RelayedEvent {
	return entity.RelayedEvent{Subject: e.Subject, Message: e.Message, Timestamp: e.Timestamp}
}

type conn interface {
	Publish(subj string, data []byte) error
	FlushWithContext(ctx context.Context) error
	ChanSubscribe(subj string, ch chan *nats.Msg) (*nats.Subscription, error)
	Close()
}

// Publisher implementa o NotificationRepository sobre NATS core.
type Publisher struct {
	nc      conn
	subject string
	now     func() time.Time
}

// Connect abre a conexão com o servidor NATS.
func Connect(url, subject string) (*Publisher, error) {
	nc, err := nats.Connect(url, nats.Name("aws-cost-watch"))
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return newPublisher(nc, subject), nil
}

func newPublisher(nc conn, subject string) *Publisher {
	return &Publisher{nc: nc, subject: subject, now: time.Now}
}

var _ repository.NotificationRepository = (*Publisher)(nil)

// Publish envia o envelope e espera o flush para o servidor.
func (p *Publisher) Publish(ctx context.Context, subject, message string) error {
	data, err := json.Marshal(Envelope{
		Subject:   subject,
		Message:   message,
		Timestamp: p.now().UTC().Format(entity.EventTimestampLayout),
	})
	if err != nil {
		return fmt.Errorf("nats marshal: %w", err)
	}

	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("nats publish %s: %w", p.subject, err)
	}
	if err := p.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("nats flush %s: %w", p.subject, err)
	}
	return nil
}

// Consume entrega cada envelope recebido a handler até o ctx ser cancelado.
// Mensagens que não são JSON válido chegam como UnknownEvent.
func (p *Publisher) Consume(ctx context.Context, handler func(context.Context, entity.NotificationEvent) error) error {
	ch := make(chan *nats.Msg, 64)
	sub, err := p.nc.ChanSubscribe(p.subject, ch)
	if err != nil {
		return fmt.Errorf("nats subscribe %s: %w", p.subject, err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-ch:
			if err := handler(ctx, DecodeEnvelope(msg.Data)); err != nil {
				return err
			}
		}
	}
}

// DecodeEnvelope interpreta o corpo de uma mensagem publicada.
func DecodeEnvelope(data []byte) entity.NotificationEvent {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil || (env.Subject == "" && env.Message == "") {
		return entity.UnknownEvent{Raw: json.RawMessage(append([]byte(nil), data...))}
	}
	return env.RelayedEvent()
}

// Close encerra a conexão.
func (p *Publisher) Close() error {
	p.nc.Close()
	return nil
}
