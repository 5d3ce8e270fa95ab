package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/diillson/aws-cost-watch/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snsEvent = `{
  "Records": [
    {
      "EventSource": "aws:sns",
      "EventVersion": "1.0",
      "Sns": {
        "Type": "Notification",
        "MessageId": "95df01b4-ee98-5cb9-9903-4c221d41eb5e",
        "TopicArn": "arn:aws:sns:us-east-1:123456789012:cost-alerts",
        "Subject": "AWS Cost Alert: $15.70",
        "Message": "Total Cost: $15.70",
        "Timestamp": "2026-10-15T06:30:00.000Z"
      }
    }
  ]
}`

func TestRelayHandle_SNSRecord(t *testing.T) {
	chat := &fakeChat{}
	outcome, err := NewRelayUseCase(chat, &fakeConsole{}).Handle(context.Background(), []byte(snsEvent))
	require.NoError(t, err)

	assert.True(t, outcome.Success)
	assert.Equal(t, entity.FlowRelay, outcome.Flow)
	assert.Equal(t, 1, outcome.MessagesSent)
	assert.Equal(t, []string{"*AWS Cost Alert: $15.70*\n\nTotal Cost: $15.70\n\n_Time: 2026-10-15T06:30:00.000Z_"}, chat.texts)
	assert.Equal(t, []string{"Markdown"}, chat.modes)
}

func TestRelayHandle_NoRecords(t *testing.T) {
	chat := &fakeChat{}
	uc := NewRelayUseCase(chat, &fakeConsole{})

	_, err := uc.Handle(context.Background(), []byte(`{}`))
	require.NoError(t, err)
	_, err = uc.Handle(context.Background(), []byte(`{"message":"hello from the console"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{TestNotificationText, "hello from the console"}, chat.texts)
}

func TestRelayHandle_EmptyRecordsSendsTestNotification(t *testing.T) {
	chat := &fakeChat{}
	outcome, err := NewRelayUseCase(chat, &fakeConsole{}).Handle(context.Background(), []byte(`{"Records":[]}`))
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.MessagesSent)
	assert.Equal(t, []string{TestNotificationText}, chat.texts)
}

func TestRelayHandle_UnknownRecord(t *testing.T) {
	chat := &fakeChat{}
	_, err := NewRelayUseCase(chat, &fakeConsole{}).Handle(context.Background(), []byte(`{"Records":[{"eventSource":"aws:s3"}]}`))
	require.NoError(t, err)

	require.Len(t, chat.texts, 1)
	assert.Equal(t, "Unknown event:\n```\n{\n  \"eventSource\": \"aws:s3\"\n}\n```", chat.texts[0])
}

func TestRelayHandle_MalformedSnsIsDumped(t *testing.T) {
	for _, record := range []string{
		`{"Sns":null}`,
		`{"Sns":"text"}`,
		`{"Sns":[1,2]}`,
		`{"Sns":{}}`,
		`{"Sns":{"Timestamp":"yesterday"}}`,
	} {
		t.Run(record, func(t *testing.T) {
			assert.Equal(t, entity.UnknownEvent{Raw: []byte(record)}, DecodeRecord([]byte(record)))
		})
	}

	chat := &fakeChat{}
	_, err := NewRelayUseCase(chat, &fakeConsole{}).Handle(context.Background(), []byte(`{"Records":[{"Sns":null}]}`))
	require.NoError(t, err)
	require.Len(t, chat.texts, 1)
	assert.Equal(t, "Unknown event:\n```\n{\n  \"Sns\": null\n}\n```", chat.texts[0])
}

func TestRelayHandle_MissingSubjectAndTimestamp(t *testing.T) {
	chat := &fakeChat{}
	_, err := NewRelayUseCase(chat, &fakeConsole{}).Handle(context.Background(), []byte(`{"Records":[{"Sns":{"Message":"body"}}]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"*AWS Notification*\n\nbody\n\n"}, chat.texts)
}

func TestRelayHandle_NonRFC3339Timestamp(t *testing.T) {
	ev := DecodeRecord([]byte(`{"Sns":{"Subject":"s","Message":"m","Timestamp":"yesterday"}}`))
	assert.Equal(t, entity.RelayedEvent{Subject: "s", Message: "m", Timestamp: "yesterday"}, ev)
}

func TestRelayHandle_InvalidJSON(t *testing.T) {
	chat := &fakeChat{}
	outcome, err := NewRelayUseCase(chat, &fakeConsole{}).Handle(context.Background(), []byte(`not json`))
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	require.Len(t, chat.texts, 1)
	assert.Contains(t, chat.texts[0], "Unknown event:")
	assert.Contains(t, chat.texts[0], "not json")
}

func TestRelayHandle_SendFailureStopsAndReports(t *testing.T) {
	chat := &fakeChat{errs: []error{errors.New("telegram API 400: can't parse entities")}}
	payload := `{"Records":[{"Sns":{"Message":"a"}},{"Sns":{"Message":"b"}}]}`

	outcome, err := NewRelayUseCase(chat, &fakeConsole{}).Handle(context.Background(), []byte(payload))
	require.Error(t, err)

	assert.True(t, types.IsKind(err, types.ErrNotificationDispatch))
	assert.False(t, outcome.Success)
	assert.Equal(t, entity.StateFailed, outcome.State)
	assert.Equal(t, 0, outcome.MessagesSent)
	require.Len(t, chat.texts, 2)
	assert.Equal(t, "⚠️ Error: telegram API 400: can't parse entities", chat.texts[1])
	assert.Equal(t, "", chat.modes[1])
}

func TestRelayHandle_ChatNotConfigured(t *testing.T) {
	console := &fakeConsole{}

	outcome, err := NewRelayUseCase(nil, console).Handle(context.Background(), []byte(snsEvent))
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, 0, outcome.MessagesSent)

	chat := &fakeChat{errs: []error{types.ErrChatNotConfigured}}
	outcome, err = NewRelayUseCase(chat, console).Handle(context.Background(), []byte(snsEvent))
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Len(t, console.warnings, 2)
}

func TestRelayForward(t *testing.T) {
	chat := &fakeChat{}
	outcome, err := NewRelayUseCase(chat, &fakeConsole{}).Forward(context.Background(), entity.RelayedEvent{
		Subject: "Weekly Cost Summary",
		Message: "Weekly cost summary (top services):",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.MessagesSent)
	assert.Equal(t, []string{"*Weekly Cost Summary*\n\nWeekly cost summary (top services):\n\n"}, chat.texts)
}
