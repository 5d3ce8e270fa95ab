package aws

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// costExplorerRegion é a única região com endpoint do Cost Explorer.
const costExplorerRegion = "us-east-1"

// ConfigProvider carrega e mantém em cache a aws.Config de um profile.
type ConfigProvider struct {
	profile string
	region  string

	mu  sync.Mutex
	cfg *aws.Config
}

// NewConfigProvider cria um ConfigProvider. Profile e região vazios usam a
// cadeia padrão de credenciais do SDK.
func NewConfigProvider(profile, region string) *ConfigProvider {
	return &ConfigProvider{profile: profile, region: region}
}

// Config retorna a configuração carregada, carregando-a na primeira chamada.
func (p *ConfigProvider) Config(ctx context.Context) (aws.Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cfg != nil {
		return *p.cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if p.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(p.profile))
	}
	if p.region != "" {
		opts = append(opts, config.WithRegion(p.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", p.profile, err)
	}

	p.cfg = &cfg
	return cfg, nil
}
