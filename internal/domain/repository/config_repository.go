package repository

import (
	"github.com/diillson/aws-cost-watch/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	LoadDotEnv(filePath string) error
	LoadEnv(cfg *types.Config) error
}
