// Package telegram envia mensagens pelo Bot API do Telegram.
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/diillson/aws-cost-watch/internal/domain/repository"
	"github.com/diillson/aws-cost-watch/internal/shared/types"
)

const (
	// DefaultAPIURL é o endpoint público do Bot API.
	DefaultAPIURL = "https://api.telegram.org"

	requestTimeout = 10 * time.Second
)

// Client implementa o ChatRepository para um único chat.
type Client struct {
	apiURL     string
	token      string
	chatID     string
	httpClient *http.Client
}

// NewClient cria o cliente. apiURL vazio usa DefaultAPIURL.
func NewClient(apiURL, token, chatID string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		token:      token,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

var _ repository.ChatRepository = (*Client)(nil)

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage chama sendMessage com o texto e o parse mode informados.
func (c *Client) SendMessage(ctx context.Context, text, parseMode string) error {
	if c.token == "" || c.chatID == "" {
		return types.ErrChatNotConfigured
	}

	form := url.Values{}
	form.Set("chat_id", c.chatID)
	form.Set("text", text)
	if parseMode != "" {
		form.Set("parse_mode", parseMode)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.apiURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// a URL contém o token; não repassar o erro de url.Error inteiro
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return fmt.Errorf("telegram send: %w", uerr.Err)
		}
		return fmt.Errorf("telegram send: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var parsed apiResponse
	_ = json.Unmarshal(body, &parsed)

	if resp.StatusCode >= 400 || !parsed.OK {
		description := parsed.Description
		if description == "" {
			description = strings.TrimSpace(string(body))
		}
		return fmt.Errorf("telegram API %d: %s", resp.StatusCode, description)
	}

	return nil
}
