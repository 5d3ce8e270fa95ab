package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/diillson/aws-cost-watch/internal/domain/repository"
)

// SNS limits subjects to 100 characters.
const maxSubjectLength = 100

// SNSAPI is the subset of the SNS client used for publishing.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// NotificationRepositoryImpl publica mensagens em um tópico SNS.
type NotificationRepositoryImpl struct {
	client   SNSAPI
	topicARN string
}

// NewNotificationRepository cria o publicador para o tópico informado.
func NewNotificationRepository(client SNSAPI, topicARN string) repository.NotificationRepository {
	return &NotificationRepositoryImpl{client: client, topicARN: topicARN}
}

// NewNotificationRepositoryFromConfig cria o cliente SNS a partir da aws.Config.
func NewNotificationRepositoryFromConfig(cfg aws.Config, topicARN string) repository.NotificationRepository {
	return NewNotificationRepository(sns.NewFromConfig(cfg), topicARN)
}

// Publish envia a mensagem ao tópico. Nenhuma confirmação de entrega é lida.
func (r *NotificationRepositoryImpl) Publish(ctx context.Context, subject, message string) error {
	_, err := r.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(r.topicARN),
		Subject:  aws.String(truncateSubject(subject)),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", r.topicARN, err)
	}
	return nil
}

func truncateSubject(subject string) string {
	runes := []rune(subject)
	if len(runes) <= maxSubjectLength {
		return subject
	}
	return string(runes[:maxSubjectLength])
}
