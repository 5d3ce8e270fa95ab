package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/diillson/aws-cost-watch/internal/domain/repository"
	"github.com/diillson/aws-cost-watch/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage_NotConfigured(t *testing.T) {
	for _, c := range []*Client{NewClient("", "", "123"), NewClient("", "token", "")} {
		err := c.SendMessage(context.Background(), "hi", repository.ParseModeMarkdown)
		assert.ErrorIs(t, err, types.ErrChatNotConfigured)
	}
}

func TestSendMessage_PostsForm(t *testing.T) {
	var gotPath, gotContentType string
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"chat_id":    r.PostForm.Get("chat_id"),
			"text":       r.PostForm.Get("text"),
			"parse_mode": r.PostForm.Get("parse_mode"),
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "123:abc", "-100200")
	err := c.SendMessage(context.Background(), "*AWS Cost Alert*\n\nbody & more", repository.ParseModeMarkdown)
	require.NoError(t, err)

	assert.Equal(t, "/bot123:abc/sendMessage", gotPath)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, map[string]string{
		"chat_id":    "-100200",
		"text":       "*AWS Cost Alert*\n\nbody & more",
		"parse_mode": "Markdown",
	}, gotForm)
}

func TestSendMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: can't parse entities"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "t", "c").SendMessage(context.Background(), "*broken", repository.ParseModeMarkdown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't parse entities")
}

func TestSendMessage_OKFalseWith200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "t", "c").SendMessage(context.Background(), "x", "")
	assert.ErrorContains(t, err, "chat not found")
}

func TestSendMessage_ErrorDoesNotLeakToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := NewClient(srv.URL, "secret-token", "c").SendMessage(ctx, "x", "")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-token")
}
