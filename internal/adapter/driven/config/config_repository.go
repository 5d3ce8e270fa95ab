package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/diillson/aws-cost-watch/internal/domain/repository"
	"github.com/diillson/aws-cost-watch/internal/shared/types"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Variáveis de ambiente lidas pelo LoadEnv. Os nomes sem prefixo são os
// mesmos usados no deploy das funções Lambda.
const (
	EnvReportBucket     = "REPORT_BUCKET"
	EnvSNSTopicARN      = "SNS_TOPIC_ARN"
	EnvDailyThreshold   = "DAILY_THRESHOLD"
	EnvDays             = "DAYS"
	EnvReportPrefix     = "REPORT_PREFIX"
	EnvWriteHTML        = "WRITE_HTML"
	EnvWritePDF         = "WRITE_PDF"
	EnvTelegramBotToken = "telegram_bot_token"
	EnvTelegramChatID   = "telegram_chat_id"

	EnvProfile        = "COST_WATCH_PROFILE"
	EnvRegion         = "COST_WATCH_REGION"
	EnvStorage        = "COST_WATCH_STORAGE"
	EnvOutputDir      = "COST_WATCH_OUTPUT_DIR"
	EnvDailyReportKey = "COST_WATCH_DAILY_REPORT_KEY"
	EnvDashboardKey   = "COST_WATCH_DASHBOARD_KEY"
	EnvTransport      = "COST_WATCH_TRANSPORT"
	EnvNATSURL        = "COST_WATCH_NATS_URL"
	EnvNATSSubject    = "COST_WATCH_NATS_SUBJECT"
	EnvTelegramAPIURL = "COST_WATCH_TELEGRAM_API_URL"
)

// defaultDotEnv é carregado quando nenhum arquivo .env é informado.
const defaultDotEnv = ".env"

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
// Campos ausentes no arquivo mantêm os valores de types.DefaultConfig.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := filepath.Ext(filePath)
	fileExtension = strings.ToLower(fileExtension)

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	// Lê o arquivo
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := types.DefaultConfig()

	switch fileExtension {
	case ".toml":
		tree, err := toml.LoadBytes(fileData)
		if err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
		// as tags toml e json têm os mesmos nomes
		asJSON, err := json.Marshal(tree.ToMap())
		if err != nil {
			return nil, fmt.Errorf("error converting TOML file: %w", err)
		}
		if err := json.Unmarshal(asJSON, config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	return config, nil
}

// LoadDotEnv carrega variáveis de um arquivo .env sem sobrescrever as que já
// existem no ambiente. Sem caminho, tenta ./.env e ignora se não existir.
func (r *ConfigRepositoryImpl) LoadDotEnv(filePath string) error {
	explicit := filePath != ""
	if !explicit {
		filePath = defaultDotEnv
	}

	if err := godotenv.Load(filePath); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading env file %s: %w", filePath, err)
	}
	return nil
}

// LoadEnv aplica as variáveis de ambiente sobre cfg. Variáveis vazias são
// ignoradas; valores numéricos ou booleanos inválidos retornam erro.
func (r *ConfigRepositoryImpl) LoadEnv(cfg *types.Config) error {
	stringVars := map[string]*string{
		EnvReportBucket:     &cfg.ReportBucket,
		EnvSNSTopicARN:      &cfg.SNSTopicARN,
		EnvReportPrefix:     &cfg.ReportPrefix,
		EnvTelegramBotToken: &cfg.TelegramBotToken,
		EnvTelegramChatID:   &cfg.TelegramChatID,
		EnvProfile:          &cfg.Profile,
		EnvRegion:           &cfg.Region,
		EnvStorage:          &cfg.Storage,
		EnvOutputDir:        &cfg.OutputDir,
		EnvDailyReportKey:   &cfg.DailyReportKey,
		EnvDashboardKey:     &cfg.DashboardKey,
		EnvTransport:        &cfg.Transport,
		EnvNATSURL:          &cfg.NATSURL,
		EnvNATSSubject:      &cfg.NATSSubject,
		EnvTelegramAPIURL:   &cfg.TelegramAPIURL,
	}
	for name, target := range stringVars {
		if value, ok := lookupEnv(name); ok {
			*target = value
		}
	}

	if value, ok := lookupEnv(EnvDailyThreshold); ok {
		threshold, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvDailyThreshold, value, err)
		}
		cfg.DailyThreshold = threshold
	}

	if value, ok := lookupEnv(EnvDays); ok {
		days, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvDays, value, err)
		}
		cfg.Days = days
	}

	boolVars := map[string]*bool{
		EnvWriteHTML: &cfg.WriteHTML,
		EnvWritePDF:  &cfg.WritePDF,
	}
	for name, target := range boolVars {
		if value, ok := lookupEnv(name); ok {
			enabled, err := parseFlag(value)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", name, value, err)
			}
			*target = enabled
		}
	}

	return nil
}

func lookupEnv(name string) (string, bool) {
	value, ok := os.LookupEnv(name)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

// parseFlag aceita os formatos do strconv e também yes/no, on/off.
func parseFlag(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(value)
}
