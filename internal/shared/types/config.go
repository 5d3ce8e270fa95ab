package types

import "fmt"

// Storage backends aceitos em Config.Storage.
const (
	StorageS3    = "s3"
	StorageLocal = "local"
)

// Notification transports aceitos em Config.Transport.
const (
	TransportSNS  = "sns"
	TransportNATS = "nats"
)

// Config represents the application configuration that can be loaded from a
// file and overridden by environment variables.
type Config struct {
	Profile string `json:"profile" yaml:"profile" toml:"profile"`
	Region  string `json:"region" yaml:"region" toml:"region"`

	Storage      string `json:"storage" yaml:"storage" toml:"storage"`
	ReportBucket string `json:"report_bucket" yaml:"report_bucket" toml:"report_bucket"`
	OutputDir    string `json:"output_dir" yaml:"output_dir" toml:"output_dir"`

	DailyThreshold float64 `json:"daily_threshold" yaml:"daily_threshold" toml:"daily_threshold"`
	DailyReportKey string  `json:"daily_report_key" yaml:"daily_report_key" toml:"daily_report_key"`
	Days           int     `json:"days" yaml:"days" toml:"days"`
	ReportPrefix   string  `json:"report_prefix" yaml:"report_prefix" toml:"report_prefix"`
	DashboardKey   string  `json:"dashboard_key" yaml:"dashboard_key" toml:"dashboard_key"`
	WriteHTML      bool    `json:"write_html" yaml:"write_html" toml:"write_html"`
	WritePDF       bool    `json:"write_pdf" yaml:"write_pdf" toml:"write_pdf"`

	Transport   string `json:"transport" yaml:"transport" toml:"transport"`
	SNSTopicARN string `json:"sns_topic_arn" yaml:"sns_topic_arn" toml:"sns_topic_arn"`
	NATSURL     string `json:"nats_url" yaml:"nats_url" toml:"nats_url"`
	NATSSubject string `json:"nats_subject" yaml:"nats_subject" toml:"nats_subject"`

	TelegramBotToken string `json:"telegram_bot_token" yaml:"telegram_bot_token" toml:"telegram_bot_token"`
	TelegramChatID   string `json:"telegram_chat_id" yaml:"telegram_chat_id" toml:"telegram_chat_id"`
	TelegramAPIURL   string `json:"telegram_api_url" yaml:"telegram_api_url" toml:"telegram_api_url"`
}

// DefaultConfig retorna a configuração padrão usada quando nada é informado.
func DefaultConfig() *Config {
	return &Config{
		Storage:        StorageS3,
		DailyThreshold: 10,
		DailyReportKey: "reports/daily/daily.json",
		Days:           30,
		ReportPrefix:   "reports/weekly/",
		DashboardKey:   "dashboard/index.html",
		Transport:      TransportSNS,
		NATSSubject:    "cost.notifications",
		TelegramAPIURL: "https://api.telegram.org",
	}
}

// NotificationsEnabled reports whether a notification sink is configured.
// An absent sink disables alerting without being an error.
func (c *Config) NotificationsEnabled() bool {
	switch c.Transport {
	case TransportNATS:
		return c.NATSURL != ""
	default:
		return c.SNSTopicARN != ""
	}
}

// ChatEnabled indica se o relay para o Telegram tem credenciais.
func (c *Config) ChatEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

// Validate checks the settings every flow depends on.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageS3:
		if c.ReportBucket == "" {
			return ErrMissingBucket
		}
	case StorageLocal:
		if c.OutputDir == "" {
			return fmt.Errorf("%w: local storage needs an output directory", ErrUnsupportedStorage)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedStorage, c.Storage)
	}

	if c.DailyThreshold < 0 {
		return fmt.Errorf("daily threshold must not be negative, got %v", c.DailyThreshold)
	}
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive, got %d", c.Days)
	}

	switch c.Transport {
	case TransportSNS, TransportNATS:
	default:
		return fmt.Errorf("unsupported notification transport %q", c.Transport)
	}
	return nil
}
