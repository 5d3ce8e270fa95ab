package repository

import "context"

// NotificationRepository publishes a message to the notification transport.
// Delivery is fire-and-forget.
type NotificationRepository interface {
	Publish(ctx context.Context, subject, message string) error
}

// ParseModeMarkdown é o parse mode usado nas mensagens repassadas ao chat.
const ParseModeMarkdown = "Markdown"

// ChatRepository entrega texto ao canal de chat final.
type ChatRepository interface {
	SendMessage(ctx context.Context, text, parseMode string) error
}
